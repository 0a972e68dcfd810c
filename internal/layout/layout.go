package layout

import (
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"log/slog"

	"github.com/juju/errors"

	binpkg "github.com/geosolutions-it/go-tiffcodec/internal/binary"
	"github.com/geosolutions-it/go-tiffcodec/internal/codec"
	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Decoder decodes one compressed block into contiguous rows.
type Decoder interface {
	Decode(src []byte, blk codec.Block) ([]byte, error)
}

// BlockIndex locates compressed blocks in the stream, as recorded by the
// StripOffsets/TileOffsets and StripByteCounts/TileByteCounts tags.
type BlockIndex interface {
	BlockOffset(i int) int64
	BlockByteCount(i int) int64
}

// State is the progress of an engine through a read.
type State int

// Engine states
const (
	Idle State = iota
	Iterating
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Iterating:
		return "iterating"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configures Execute.
type Options struct {
	Logger   *slog.Logger          // Receives each warning; nil discards
	Progress func(done, total int) // Called after every block
	Abort    func() bool           // Polled before every block
	Strict   bool                  // Treat truncated or corrupt blocks as fatal
}

// Warning records a recoverable problem with one block.
type Warning struct {
	Block int
	Tile  image.Point
	Plane int
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("block %d (tile %d,%d plane %d): %v", w.Block, w.Tile.X, w.Tile.Y, w.Plane, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Result summarizes a read.
type Result struct {
	Region   image.Rectangle // Destination pixels written
	Blocks   int             // Blocks decoded
	Warnings []Warning
}

// Engine reads regions of one image. It is not safe for concurrent use.
type Engine struct {
	geom    meta.BlockGeometry
	layout  meta.SampleLayout
	order   binary.ByteOrder
	decoder Decoder
	index   BlockIndex
	reader  *binpkg.Reader

	sampleSize int   // Destination bytes per sample; 0 if bands differ
	offsets    []int // Bit offset of each band within a chunky pixel
	state      State
}

// New creates an engine for an image. The layout must be normalized.
func New(
	geom meta.BlockGeometry,
	layout meta.SampleLayout,
	decoder Decoder,
	index BlockIndex,
	reader *binpkg.Reader,
) (*Engine, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if len(layout.BitsPerSample) != layout.SamplesPerPixel {
		return nil, fmt.Errorf("%w: layout is not normalized", meta.ErrInvalidLayout)
	}

	e := &Engine{
		geom:    geom,
		layout:  layout,
		order:   reader.ByteOrder(),
		decoder: decoder,
		index:   index,
		reader:  reader,
		offsets: make([]int, layout.SamplesPerPixel),
	}

	e.sampleSize = sampleBytes(layout.BitsPerSample[0])
	for i, b := range layout.BitsPerSample {
		if sampleBytes(b) != e.sampleSize {
			e.sampleSize = 0
		}
		e.offsets[i] = layout.SampleOffset(i)
	}
	return e, nil
}

// State returns the engine state.
func (e *Engine) State() State {
	return e.state
}

// SampleBytes returns the destination bytes per sample, or 0 when the bands
// have different byte widths and cannot share a destination buffer.
func (e *Engine) SampleBytes() int {
	return e.sampleSize
}

// Read plans and executes a read in one call.
func (e *Engine) Read(ctx context.Context, req Request, dst *Destination, opts Options) (*Result, error) {
	plan, err := e.Plan(req, dst)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, plan, dst, opts)
}

// Execute decodes the blocks of plan into dst. On a fatal error the returned
// result describes the blocks completed before it.
func (e *Engine) Execute(ctx context.Context, plan *Plan, dst *Destination, opts Options) (*Result, error) {
	e.state = Iterating
	defer func() { e.state = Done }()

	res := &Result{}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	warn := func(t Task, err error) {
		w := Warning{Block: t.Index, Tile: t.Tile, Plane: t.Plane, Err: err}
		res.Warnings = append(res.Warnings, w)
		logger.Warn("tiff block", "block", t.Index, "tile", t.Tile, "plane", t.Plane, "err", err)
	}

	for i, t := range plan.Tasks {
		if err := ctx.Err(); err != nil {
			return res, errors.Annotatef(err, "read stopped before block %d", t.Index)
		}
		if opts.Abort != nil && opts.Abort() {
			return res, errors.Annotatef(meta.ErrAborted, "read stopped before block %d", t.Index)
		}

		raw, err := e.decodeBlock(t, opts.Strict, warn)
		if err != nil {
			return res, err
		}
		if raw != nil {
			e.copyBlock(raw, t, plan, dst)
			res.Blocks++
			res.Region = res.Region.Union(t.Dest)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(plan.Tasks))
		}
	}

	return res, nil
}

// decodeBlock reads and decodes one block. It returns nil data for a block
// with no bytes in the stream.
func (e *Engine) decodeBlock(t Task, strict bool, warn func(Task, error)) ([]byte, error) {
	declared := e.index.BlockByteCount(t.Index)
	r := e.reader.At(e.index.BlockOffset(t.Index))

	n := r.Clamp(declared)
	if n < declared {
		err := fmt.Errorf("%w: byte count %d clamped to %d", meta.ErrTruncated, declared, n)
		if strict {
			return nil, errors.Annotatef(err, "block %d", t.Index)
		}
		warn(t, err)
	}
	if n == 0 {
		if declared == 0 {
			err := fmt.Errorf("%w: empty block", meta.ErrTruncated)
			if strict {
				return nil, errors.Annotatef(err, "block %d", t.Index)
			}
			warn(t, err)
		}
		return nil, nil
	}

	data, err := r.ReadClamped(n)
	if err != nil {
		return nil, errors.Annotatef(err, "reading block %d", t.Index)
	}

	blk := codec.Block{
		Width:    t.Bounds.Dx(),
		Rows:     t.Bounds.Dy(),
		RowBytes: e.layout.RowBytes(t.Plane, t.Bounds.Dx()),
	}
	raw, err := e.decoder.Decode(data, blk)
	if err != nil {
		if strict || !meta.Recoverable(err) {
			return nil, errors.Annotatef(err, "decoding block %d", t.Index)
		}
		warn(t, err)
	}
	return raw, nil
}

// copyBlock distributes the samples of a decoded block into dst. Rows
// missing from a partial block leave the destination untouched.
func (e *Engine) copyBlock(raw []byte, t Task, plan *Plan, dst *Destination) {
	bpp := e.layout.BitsPerPixel(t.Plane)
	rowBytes := e.layout.RowBytes(t.Plane, t.Bounds.Dx())
	stride := dst.stride(e.sampleSize)
	pixel := dst.Bands * e.sampleSize

	for dy := t.Dest.Min.Y; dy < t.Dest.Max.Y; dy++ {
		rowStart := (plan.ys.toSource(dy) - t.Bounds.Min.Y) * rowBytes
		if rowStart >= len(raw) {
			break
		}
		line := raw[rowStart:min(rowStart+rowBytes, len(raw))]
		out := dst.Pix[dy*stride:]

		for dx := t.Dest.Min.X; dx < t.Dest.Max.X; dx++ {
			col := plan.xs.toSource(dx) - t.Bounds.Min.X
			for _, b := range t.Bands {
				bitOff := col * bpp
				if !e.layout.IsPlanar() {
					bitOff += e.offsets[b.Source]
				}
				e.copySample(out[dx*pixel+b.Dest*e.sampleSize:], line, bitOff, e.layout.BitsPerSample[b.Source])
			}
		}
	}
}

package tiff

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/juju/errors"

	"github.com/geosolutions-it/go-tiffcodec/internal/binary"
	"github.com/geosolutions-it/go-tiffcodec/internal/codec"
	"github.com/geosolutions-it/go-tiffcodec/internal/layout"
	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Page is one decodable TIFF image. A Page is not safe for concurrent use.
type Page struct {
	dir      Directory
	geom     BlockGeometry
	samples  SampleLayout
	pipeline *codec.Pipeline
	engine   *layout.Engine
	reader   *binary.Reader
	opts     *options

	file   *os.File // Set by OpenFile
	closed bool
}

// Open prepares the image described by dir for decoding from src, a stream of
// size bytes. The geometry, sample layout and codec configuration are
// validated and the decoder is selected here, so configuration errors surface
// before any block is read.
func Open(src io.ReaderAt, size int64, dir Directory, opts ...Option) (*Page, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	geom := dir.BlockGeometry()
	if err := geom.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	samples, err := dir.SampleLayout().Normalize()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if need := geom.BlocksPerPlane() * samples.Planes(); dir.BlockCount() < need {
		return nil, errors.Annotatef(meta.ErrInvalidLayout,
			"%d blocks listed, %dx%d grid of %d planes needs %d",
			dir.BlockCount(), geom.Across(), geom.Down(), samples.Planes(), need)
	}

	desc := dir.CodecDescriptor()
	pipeline, err := codec.Select(desc, samples, dir.Photometric())
	if err != nil {
		return nil, errors.Annotatef(err, "selecting decoder")
	}

	reader := binary.NewReader(src, binary.Config{ByteOrder: desc.Order(), Size: size})
	engine, err := layout.New(geom, samples, pipeline, dir, reader)
	if err != nil {
		return nil, errors.Trace(err)
	}

	o.logger.Debug("opened tiff page",
		"width", geom.ImageWidth, "height", geom.ImageHeight,
		"tiled", geom.Tiled, "compression", pipeline.Compression(),
		"predictor", pipeline.Predictor(), "photometric", uint16(pipeline.Photometric()),
		"samples", samples.SamplesPerPixel)

	return &Page{
		dir:      dir,
		geom:     geom,
		samples:  samples,
		pipeline: pipeline,
		engine:   engine,
		reader:   reader,
		opts:     o,
	}, nil
}

// OpenFile opens the file at path and prepares the image described by dir.
// The file stays open until Close.
func OpenFile(path string, dir Directory, opts ...Option) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening file")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Annotatef(err, "stat file")
	}

	p, err := Open(f, info.Size(), dir, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.file = f
	return p, nil
}

// Close releases the file opened by OpenFile. Further reads fail with
// ErrClosed.
func (p *Page) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// Geometry returns the block grid of the image.
func (p *Page) Geometry() BlockGeometry {
	return p.geom
}

// SampleLayout returns the normalized sample layout.
func (p *Page) SampleLayout() SampleLayout {
	return p.samples
}

// Photometric returns the photometric interpretation recorded for the image.
// Samples are decoded as stored, without color conversion.
func (p *Page) Photometric() Photometric {
	return p.pipeline.Photometric()
}

// Compression returns the compression of the image blocks.
func (p *Page) Compression() Compression {
	return p.pipeline.Compression()
}

// SampleBytes returns the bytes each sample occupies in a region
// Destination, or 0 if the bands cannot share one buffer.
func (p *Page) SampleBytes() int {
	return p.engine.SampleBytes()
}

// Blocks returns the number of blocks in the image, over all planes.
func (p *Page) Blocks() int {
	return p.geom.BlocksPerPlane() * p.samples.Planes()
}

// Block returns the decoded shape of block index.
func (p *Page) Block(index int) (Block, error) {
	if index < 0 || index >= p.Blocks() {
		return Block{}, errors.Annotatef(ErrBlockIndex, "block %d of %d", index, p.Blocks())
	}
	plane, b := index/p.geom.BlocksPerPlane(), p.blockBounds(index)
	return Block{
		Width:    b.Dx(),
		Rows:     b.Dy(),
		RowBytes: p.samples.RowBytes(plane, b.Dx()),
	}, nil
}

func (p *Page) blockBounds(index int) image.Rectangle {
	i := index % p.geom.BlocksPerPlane()
	return p.geom.Bounds(i%p.geom.Across(), i/p.geom.Across())
}

// ReadRegion decodes the blocks covering req.Source into dst. Recoverable
// problems are reported in the result warnings. On a fatal error the result
// describes the blocks already written to dst.
func (p *Page) ReadRegion(ctx context.Context, req Request, dst *Destination) (*Result, error) {
	if p.closed {
		return nil, ErrClosed
	}

	res, err := p.engine.Read(ctx, req, dst, layout.Options{
		Logger:   p.opts.logger,
		Progress: p.opts.progress,
		Abort:    p.opts.abort,
		Strict:   p.opts.strict,
	})
	if err != nil {
		return res, errors.Annotatef(err, "reading region %v", req.Source)
	}
	return res, nil
}

// ReadBlock decodes block index into dst, whose rows are stride bytes apart.
// Zero stride means the natural row size. dst must hold the whole block.
func (p *Page) ReadBlock(index int, dst []byte, stride int) ([]Warning, error) {
	if p.closed {
		return nil, ErrClosed
	}
	blk, err := p.Block(index)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = blk.RowBytes
	}

	var warnings []Warning
	warn := func(err error) error {
		if p.opts.strict {
			return errors.Annotatef(err, "block %d", index)
		}
		w := Warning{
			Block: index,
			Tile:  p.blockBounds(index).Min,
			Plane: index / p.geom.BlocksPerPlane(),
			Err:   err,
		}
		w.Tile.X /= p.geom.BlockWidth
		w.Tile.Y /= p.geom.BlockHeight
		warnings = append(warnings, w)
		p.opts.logger.Warn("tiff block", "block", index, "err", err)
		return nil
	}

	declared := p.dir.BlockByteCount(index)
	r := p.reader.At(p.dir.BlockOffset(index))
	n := r.Clamp(declared)
	if n < declared {
		if err := warn(fmt.Errorf("%w: byte count %d clamped to %d", meta.ErrTruncated, declared, n)); err != nil {
			return nil, err
		}
	}
	if n == 0 {
		if declared == 0 {
			if err := warn(fmt.Errorf("%w: empty block", meta.ErrTruncated)); err != nil {
				return nil, err
			}
		}
		return warnings, nil
	}

	data, err := r.ReadClamped(n)
	if err != nil {
		return warnings, errors.Annotatef(err, "reading block %d", index)
	}
	if _, err := p.pipeline.DecodeInto(dst, stride, data, blk); err != nil {
		if !meta.Recoverable(err) {
			return warnings, errors.Annotatef(err, "decoding block %d", index)
		}
		if err := warn(err); err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

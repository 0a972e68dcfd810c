package layout

import (
	"fmt"
	"image"

	"github.com/geosolutions-it/go-tiffcodec/internal/meta"
)

// Task is the work for one compressed block.
type Task struct {
	Plane  int             // Band plane; always 0 for chunky data
	Tile   image.Point     // Grid column and row of the block
	Index  int             // Block index in the offset/byte-count arrays
	Bounds image.Rectangle // Block pixels (tiles unclipped, strips clipped)
	Source image.Rectangle // Source pixels that reach the destination
	Dest   image.Rectangle // Destination pixels filled by this block
	Bands  []bandMap       // Bands copied from this block
}

// Plan is the ordered list of blocks a read touches.
type Plan struct {
	Tasks  []Task
	Tiles  image.Rectangle // Grid index range covering the request
	Region image.Rectangle // Union of all destination rectangles

	xs, ys axis
}

// Plan computes which blocks intersect the request and where their pixels
// land in dst. Blocks whose intersection is empty, or whose pixels are all
// skipped by subsampling or clipped by the destination, are left out.
func (e *Engine) Plan(req Request, dst *Destination) (*Plan, error) {
	if e.sampleSize == 0 {
		return nil, fmt.Errorf("%w: bands of %v bits need different sample sizes",
			meta.ErrInvalidLayout, e.layout.BitsPerSample)
	}
	sx, sy, err := req.subsampling()
	if err != nil {
		return nil, err
	}
	bands, err := req.bands(e.layout.SamplesPerPixel, dst.Bands)
	if err != nil {
		return nil, err
	}
	if err := dst.validate(e.sampleSize); err != nil {
		return nil, err
	}

	p := &Plan{
		xs: axis{origin: req.Source.Min.X, sub: sx, offset: req.DestOffset.X},
		ys: axis{origin: req.Source.Min.Y, sub: sy, offset: req.DestOffset.Y},
	}

	src := req.Source.Intersect(e.geom.Image())
	if src.Empty() {
		return p, nil
	}

	g := e.geom
	p.Tiles = image.Rect(
		src.Min.X/g.BlockWidth, src.Min.Y/g.BlockHeight,
		(src.Max.X-1)/g.BlockWidth+1, (src.Max.Y-1)/g.BlockHeight+1,
	)

	for _, plane := range e.planes(bands) {
		for ty := p.Tiles.Min.Y; ty < p.Tiles.Max.Y; ty++ {
			for tx := p.Tiles.Min.X; tx < p.Tiles.Max.X; tx++ {
				t, ok := p.task(g, src, dst.Bounds(), tx, ty)
				if !ok {
					continue
				}
				t.Plane = plane.index
				t.Index = g.Index(plane.index, tx, ty)
				t.Bands = plane.bands
				p.Tasks = append(p.Tasks, t)
				p.Region = p.Region.Union(t.Dest)
			}
		}
	}
	return p, nil
}

// task maps block (tx, ty) onto the destination.
func (p *Plan) task(g meta.BlockGeometry, src, dstBounds image.Rectangle, tx, ty int) (Task, bool) {
	bounds := g.Bounds(tx, ty)
	isect := bounds.Intersect(src)
	if isect.Empty() {
		return Task{}, false
	}

	dx0, dx1 := p.xs.span(isect.Min.X, isect.Max.X)
	dy0, dy1 := p.ys.span(isect.Min.Y, isect.Max.Y)
	dest := image.Rect(dx0, dy0, dx1, dy1).Intersect(dstBounds)
	if dest.Empty() {
		return Task{}, false
	}

	return Task{
		Tile:   image.Pt(tx, ty),
		Bounds: bounds,
		Source: image.Rect(
			p.xs.toSource(dest.Min.X), p.ys.toSource(dest.Min.Y),
			p.xs.toSource(dest.Max.X-1)+1, p.ys.toSource(dest.Max.Y-1)+1,
		),
		Dest: dest,
	}, true
}

type plane struct {
	index int
	bands []bandMap
}

// planes groups the band mapping by stored plane: one plane holding every
// band for chunky data, one plane per requested band for planar data.
func (e *Engine) planes(bands []bandMap) []plane {
	if !e.layout.IsPlanar() {
		return []plane{{index: 0, bands: bands}}
	}

	var out []plane
	seen := map[int]int{}
	for _, b := range bands {
		if i, ok := seen[b.Source]; ok {
			out[i].bands = append(out[i].bands, b)
			continue
		}
		seen[b.Source] = len(out)
		out = append(out, plane{index: b.Source, bands: []bandMap{b}})
	}
	return out
}

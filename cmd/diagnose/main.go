// Diagnostic tool for decoding raw TIFF strip and tile data
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/geosolutions-it/go-tiffcodec/tiff"
)

func main() {
	var (
		compression = flag.Uint("compression", 1, "TIFF compression ID")
		pred        = flag.Uint("predictor", 1, "TIFF predictor ID")
		width       = flag.Int("width", 0, "image width")
		height      = flag.Int("height", 0, "image height")
		tileWidth   = flag.Int("tile-width", 0, "tile width; 0 reads strips")
		tileHeight  = flag.Int("tile-height", 0, "tile height, or rows per strip")
		bits        = flag.String("bps", "8", "bits per sample, comma separated")
		spp         = flag.Int("spp", 1, "samples per pixel")
		format      = flag.Uint("format", 1, "sample format")
		planar      = flag.Bool("planar", false, "bands stored as separate planes")
		order       = flag.String("order", "MM", "byte order, II or MM")
		fill        = flag.Uint("fill", 1, "fill order")
		offsets     = flag.String("offsets", "0", "block offsets, comma separated")
		counts      = flag.String("counts", "", "block byte counts, comma separated; default is the file size")
		block       = flag.Int("block", -1, "decode only this block")
		strict      = flag.Bool("strict", false, "fail on truncated or corrupt blocks")
		verbose     = flag.Bool("v", false, "log block warnings")
	)
	flag.Parse()

	if flag.NArg() != 1 || *width <= 0 || *height <= 0 {
		fmt.Println("Usage: diagnose -width W -height H [flags] <file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	info, err := os.Stat(filename)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	dir := &tiff.StaticDirectory{
		Geometry: tiff.BlockGeometry{
			ImageWidth:  *width,
			ImageHeight: *height,
			BlockWidth:  *width,
			BlockHeight: *height,
		},
		Samples: tiff.SampleLayout{
			SamplesPerPixel: *spp,
			SampleFormat:    []tiff.SampleFormat{tiff.SampleFormat(*format)},
			Planar:          tiff.PlanarChunky,
		},
		Codec: tiff.CodecDescriptor{
			Compression: tiff.Compression(*compression),
			Predictor:   tiff.Predictor(*pred),
			ByteOrder:   binary.BigEndian,
			FillOrder:   tiff.FillOrder(*fill),
		},
		Interpretation: tiff.PhotometricMinIsBlack,
	}
	if *tileWidth > 0 {
		dir.Geometry.Tiled = true
		dir.Geometry.BlockWidth = *tileWidth
	}
	if *tileHeight > 0 {
		dir.Geometry.BlockHeight = *tileHeight
	}
	if *planar {
		dir.Samples.Planar = tiff.PlanarSeparate
	}
	if strings.EqualFold(*order, "II") {
		dir.Codec.ByteOrder = binary.LittleEndian
	}

	if dir.Samples.BitsPerSample, err = parseInts(*bits); err != nil {
		fmt.Printf("ERROR: -bps: %v\n", err)
		os.Exit(1)
	}
	if dir.Offsets, err = parseInt64s(*offsets); err != nil {
		fmt.Printf("ERROR: -offsets: %v\n", err)
		os.Exit(1)
	}
	dir.ByteCounts = []int64{info.Size()}
	if *counts != "" {
		if dir.ByteCounts, err = parseInt64s(*counts); err != nil {
			fmt.Printf("ERROR: -counts: %v\n", err)
			os.Exit(1)
		}
	}

	opts := []tiff.Option{}
	if *strict {
		opts = append(opts, tiff.WithStrict())
	}
	if *verbose {
		opts = append(opts, tiff.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}

	fmt.Printf("=== Decoding %s ===\n\n", filename)

	p, err := tiff.OpenFile(filename, dir, opts...)
	if err != nil {
		fmt.Printf("ERROR: Failed to open page: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	g := p.Geometry()
	fmt.Printf("Image: %dx%d, %d samples of %v bits\n", g.ImageWidth, g.ImageHeight,
		p.SampleLayout().SamplesPerPixel, p.SampleLayout().BitsPerSample)
	fmt.Printf("Blocks: %d (%dx%d grid, tiled=%v)\n", p.Blocks(), g.Across(), g.Down(), g.Tiled)
	fmt.Printf("Compression: %s\n\n", p.Compression())

	if *block >= 0 {
		decodeBlock(p, *block)
		return
	}
	decodeImage(p)
}

func decodeBlock(p *tiff.Page, index int) {
	blk, err := p.Block(index)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Block %d: %d pixels x %d rows, %d bytes per row\n", index, blk.Width, blk.Rows, blk.RowBytes)

	buf := make([]byte, blk.Size())
	warnings, err := p.ReadBlock(index, buf, 0)
	printWarnings(warnings)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	printPrefix(buf)
}

func decodeImage(p *tiff.Page) {
	size := p.SampleBytes()
	if size == 0 {
		fmt.Println("ERROR: bands differ in sample size; use -block")
		os.Exit(1)
	}

	g := p.Geometry()
	bands := p.SampleLayout().SamplesPerPixel
	dst := &tiff.Destination{
		Pix:    make([]byte, g.ImageWidth*g.ImageHeight*bands*size),
		Width:  g.ImageWidth,
		Height: g.ImageHeight,
		Bands:  bands,
	}

	res, err := p.ReadRegion(context.Background(), tiff.Request{Source: g.Image()}, dst)
	if res != nil {
		fmt.Printf("Decoded %d blocks into %v\n", res.Blocks, res.Region)
		printWarnings(res.Warnings)
	}
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	if res.Region != image.Rect(0, 0, g.ImageWidth, g.ImageHeight) {
		fmt.Println("  [INCOMPLETE - some pixels were not written]")
	}
	printPrefix(dst.Pix)
}

func printWarnings(warnings []tiff.Warning) {
	for _, w := range warnings {
		fmt.Printf("  WARNING: %v\n", w)
	}
}

func printPrefix(buf []byte) {
	n := min(len(buf), 32)
	fmt.Printf("First %d of %d bytes: % x\n", n, len(buf), buf[:n])
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInt64s(s string) ([]int64, error) {
	var out []int64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

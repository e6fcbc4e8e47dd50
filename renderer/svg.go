// Package renderer rasterizes SVG icons for menu renderers that only draw bitmaps.
package renderer

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterizer renders SVG icons to PNG files in a single output directory.
// Non SVG icons are passed through unchanged.
type Rasterizer struct {
	fs        afero.Fs
	outputDir string
	size      int

	// source path -> rendered path, for this run only
	done map[string]string
}

// NewRasterizer creates a Rasterizer writing size x size PNGs to outputDir.
func NewRasterizer(fs afero.Fs, outputDir string, size int) *Rasterizer {
	return &Rasterizer{
		fs:        fs,
		outputDir: outputDir,
		size:      size,
		done:      make(map[string]string),
	}
}

// Convert returns the path of a PNG rendering of iconPath.
func (r *Rasterizer) Convert(iconPath string) (string, error) {
	if !strings.EqualFold(filepath.Ext(iconPath), ".svg") {
		return iconPath, nil
	}
	if out, ok := r.done[iconPath]; ok {
		return out, nil
	}

	img, err := r.RenderSVG(iconPath)
	if err != nil {
		return "", err
	}

	out := filepath.Join(r.outputDir, pngName(iconPath))
	if err := r.SavePNG(img, out); err != nil {
		return "", err
	}

	r.done[iconPath] = out
	return out, nil
}

// pngName is the base name plus a checksum of the full source path, so
// icons sharing a base name do not overwrite each other.
func pngName(iconPath string) string {
	name := strings.TrimSuffix(filepath.Base(iconPath), filepath.Ext(iconPath))
	return fmt.Sprintf("%s-%08x.png", name, crc32.ChecksumIEEE([]byte(iconPath)))
}

// RenderSVG renders an SVG file at the rasterizer's size.
func (r *Rasterizer) RenderSVG(svgPath string) (image.Image, error) {
	svgFile, err := r.fs.Open(svgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SVG file: %w", err)
	}
	defer svgFile.Close()

	icon, err := oksvg.ReadIconStream(svgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(r.size), float64(r.size))

	img := image.NewRGBA(image.Rect(0, 0, r.size, r.size))
	scanner := rasterx.NewScannerGV(r.size, r.size, img, img.Bounds())
	raster := rasterx.NewDasher(r.size, r.size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// SavePNG writes img to outputPath, creating parent directories.
func (r *Rasterizer) SavePNG(img image.Image, outputPath string) error {
	if err := r.fs.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := r.fs.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}

// Package render draws a log-amplitude grid and its detected peaks to a PNG.
// Presentation only; nothing here affects fingerprint output.
package render

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/eligwz/spectrogram"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"
)

// SavePNG writes the grid as a grayscale image, one pixel per cell, with the
// detected peaks overlaid in red. Time runs along x, frequency along y with
// bin 0 at the bottom. Negative log amplitudes render as black.
func SavePNG(grid [][]float64, peaks []fingerprint.Peak, path string) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return errors.New("empty grid")
	}

	nFreq := len(grid)
	nTime := len(grid[0])
	img := spectrogram.NewImage128(image.Rect(0, 0, nTime, nFreq))

	maxAmp := 0.0
	for _, row := range grid {
		for _, v := range row {
			if v > maxAmp {
				maxAmp = v
			}
		}
	}
	if maxAmp <= 0 {
		maxAmp = 1
	}

	for f := 0; f < nFreq; f++ {
		y := nFreq - 1 - f
		for t := 0; t < nTime; t++ {
			v := grid[f][t]
			if v < 0 {
				v = 0
			}
			shade := uint8(math.Round(255 * v / maxAmp))
			img.Set(t, y, color.Gray{Y: shade})
		}
	}

	peakColor := spectrogram.ParseColor("ff0000")
	for _, p := range peaks {
		img.Set(p.TimeIdx, nFreq-1-p.FreqIdx, peakColor)
	}

	return spectrogram.SavePng(img, path)
}

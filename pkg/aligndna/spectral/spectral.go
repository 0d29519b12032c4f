// Package spectral provides the default spectral-transform provider for the
// fingerprint core: a Hann-windowed short-time FFT producing a one-sided
// linear magnitude grid.
package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/window"
)

// Magnitude computes a magnitude spectrogram indexed
// [frequency bin][time frame] with windowSize/2+1 bins per frame. The hop is
// windowSize minus the overlap, frames that would run past the end of the
// input are dropped, and inputs shorter than one window yield a grid with
// zero frames. It satisfies the fingerprint.SpectrumFunc contract; the
// sampleRate argument is part of that contract but does not influence the
// grid values.
func Magnitude(samples []float64, sampleRate, windowSize int, overlapRatio float64) [][]float64 {
	hop := windowSize - int(float64(windowSize)*overlapRatio)
	if hop <= 0 {
		hop = 1
	}

	nBins := windowSize/2 + 1
	nFrames := 0
	if len(samples) >= windowSize {
		nFrames = (len(samples)-windowSize)/hop + 1
	}

	grid := make([][]float64, nBins)
	for f := range grid {
		grid[f] = make([]float64, nFrames)
	}

	win := window.NewValues(window.Hann, windowSize)
	frame := make([]float64, windowSize)
	for idx := 0; idx < nFrames; idx++ {
		start := idx * hop
		copy(frame, samples[start:start+windowSize])
		win.Transform(frame)

		spectrum := fft.FFTReal(frame)
		for f := 0; f < nBins; f++ {
			grid[f][idx] = cmplx.Abs(spectrum[f])
		}
	}
	return grid
}

// Package fingerprint turns audio samples into compact, collision-tolerant
// fingerprints: a spectral magnitude grid is log-scaled, salient peaks are
// picked under a morphological neighborhood constraint, and nearby peak
// triples are hashed into a map from truncated digest to anchor frame
// offsets. The pipeline is a pure function of its inputs and configuration;
// calls are independent and safe to run concurrently from the caller side.
package fingerprint

import "errors"

// SpectrumFunc supplies a linear-amplitude magnitude grid indexed
// [frequency bin][time frame] for the given samples. It is the only coupling
// between the fingerprint core and a spectral transform implementation; the
// spectral package provides the default.
type SpectrumFunc func(samples []float64, sampleRate, windowSize int, overlapRatio float64) [][]float64

// FromSamples runs the full pipeline: spectral transform, log normalization,
// peak extraction and hash generation. The returned map is owned by the
// caller; the intermediate grid is released as soon as peaks are extracted.
func FromSamples(samples []float64, cfg Config, spectrum SpectrumFunc) (Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if spectrum == nil {
		return nil, errors.New("nil spectrum provider")
	}

	grid := spectrum(samples, cfg.SampleRate, cfg.WindowSize, cfg.OverlapRatio)
	if err := LogScale(grid); err != nil {
		return nil, err
	}
	peaks := ExtractPeaks(grid, cfg)
	grid = nil

	return GenerateHashes(peaks, cfg), nil
}

// FromGrid fingerprints an already-computed linear-amplitude magnitude grid.
// The grid is log-scaled in place and should not be reused afterwards.
func FromGrid(grid [][]float64, cfg Config) (Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := LogScale(grid); err != nil {
		return nil, err
	}
	return GenerateHashes(ExtractPeaks(grid, cfg), cfg), nil
}

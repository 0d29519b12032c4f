package fingerprint

import (
	"errors"
	"fmt"
)

// Defaults the alignment pipeline was calibrated with. Raising AmpMin or
// PeakNeighborhoodSize cuts the fingerprint count; raising FanValue grows it
// quadratically per peak.
const (
	DefaultSampleRate           = 44100
	DefaultWindowSize           = 4096
	DefaultOverlapRatio         = 0.5
	DefaultFanValue             = 15
	DefaultAmpMin               = 65
	DefaultMinHashTimeDelta     = 10
	DefaultMaxHashTimeDelta     = 200
	DefaultPeakNeighborhoodSize = 20
	DefaultFingerprintReduction = 20
)

// Config carries every tunable of the fingerprinting pipeline so a run is a
// pure function of (samples, config). Zero values are not usable; start from
// DefaultConfig.
type Config struct {
	SampleRate   int     // audio sample rate in Hz
	WindowSize   int     // FFT window length in samples
	OverlapRatio float64 // fraction of each window shared with the next frame

	FanValue         int     // max follow-on peaks paired with each anchor
	AmpMin           float64 // log-amplitude floor a peak must strictly exceed
	MinHashTimeDelta int     // min frames between anchor and partner peaks
	MaxHashTimeDelta int     // max frames between anchor and partner peaks

	PeakNeighborhoodSize int // structuring-element radius for peak isolation

	FingerprintReduction int  // hex chars kept from the front of the SHA-1 digest
	PeakSort             bool // sort peaks by time index before pairing
}

func DefaultConfig() Config {
	return Config{
		SampleRate:           DefaultSampleRate,
		WindowSize:           DefaultWindowSize,
		OverlapRatio:         DefaultOverlapRatio,
		FanValue:             DefaultFanValue,
		AmpMin:               DefaultAmpMin,
		MinHashTimeDelta:     DefaultMinHashTimeDelta,
		MaxHashTimeDelta:     DefaultMaxHashTimeDelta,
		PeakNeighborhoodSize: DefaultPeakNeighborhoodSize,
		FingerprintReduction: DefaultFingerprintReduction,
		PeakSort:             true,
	}
}

// Validate rejects configurations that would silently produce an empty or
// nonsensical fingerprint map.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", c.WindowSize)
	}
	if c.OverlapRatio < 0 || c.OverlapRatio >= 1 {
		return fmt.Errorf("overlap ratio must be in [0, 1), got %g", c.OverlapRatio)
	}
	if c.FanValue <= 0 {
		return fmt.Errorf("fan value must be positive, got %d", c.FanValue)
	}
	if c.MinHashTimeDelta > c.MaxHashTimeDelta {
		return fmt.Errorf("min hash time delta %d exceeds max %d", c.MinHashTimeDelta, c.MaxHashTimeDelta)
	}
	if c.PeakNeighborhoodSize <= 0 {
		return fmt.Errorf("peak neighborhood size must be positive, got %d", c.PeakNeighborhoodSize)
	}
	if c.FingerprintReduction < 1 || c.FingerprintReduction > 40 {
		return errors.New("fingerprint reduction must be between 1 and 40 hex characters")
	}
	return nil
}

// HopSize is the number of samples between consecutive spectrogram frames.
func (c Config) HopSize() int {
	return c.WindowSize - int(float64(c.WindowSize)*c.OverlapRatio)
}

// FrameDuration converts one frame index step into seconds.
func (c Config) FrameDuration() float64 {
	return float64(c.HopSize()) / float64(c.SampleRate)
}

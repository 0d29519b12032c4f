// Package audio decodes and converts audio files into the sample arrays the
// fingerprint pipeline consumes.
package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ReadWAV decodes a PCM WAV file into mono float64 samples and returns them
// with the file's sample rate.
//
// Samples stay at native PCM scale (a 16-bit file yields values in
// [-32768, 32767]); the default amplitude floor of the fingerprint config is
// calibrated against log-scaled magnitudes of this range, so no [-1, 1]
// normalization is applied. Stereo input is downmixed by averaging channels.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil {
		return nil, 0, errors.New("empty PCM buffer")
	}

	switch buf.Format.NumChannels {
	case 1:
		out := make([]float64, len(buf.Data))
		for i, s := range buf.Data {
			out[i] = float64(s)
		}
		return out, buf.Format.SampleRate, nil
	case 2:
		frames := len(buf.Data) / 2
		out := make([]float64, frames)
		for i := 0; i < frames; i++ {
			out[i] = (float64(buf.Data[2*i]) + float64(buf.Data[2*i+1])) * 0.5
		}
		return out, buf.Format.SampleRate, nil
	default:
		return nil, 0, fmt.Errorf("unsupported channel count: %d", buf.Format.NumChannels)
	}
}

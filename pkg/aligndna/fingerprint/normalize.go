package fingerprint

import (
	"fmt"
	"math"
)

// LogScale converts a linear-amplitude magnitude grid to a 10*log2 scale in
// place. A cell holding exactly zero would log-transform to -Inf, so it is
// clamped to exactly 0 and treated as "no signal"; the peak extractor relies
// on that exact value for its background mask. Small positive amplitudes in
// (0, 1) legitimately produce finite negative values and are kept as-is.
//
// Negative, NaN or infinite input amplitudes have no meaning for a magnitude
// grid and are reported as an error so the transform can guarantee a
// NaN/Inf-free grid for any finite non-negative input.
func LogScale(grid [][]float64) error {
	for f, row := range grid {
		for t, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("malformed grid: amplitude %v at bin %d, frame %d", v, f, t)
			}
			if v == 0 {
				continue
			}
			row[t] = 10 * math.Log2(v)
		}
	}
	return nil
}

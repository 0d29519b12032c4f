package fingerprint

import "testing"

func makeGrid(nFreq, nTime int) [][]float64 {
	grid := make([][]float64, nFreq)
	for f := range grid {
		grid[f] = make([]float64, nTime)
	}
	return grid
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PeakNeighborhoodSize = 3
	return cfg
}

func TestNeighborhoodOffsets(t *testing.T) {
	tests := []struct {
		size     int
		expected int
	}{
		{1, 5},
		{2, 13},
		{3, 25},
	}

	for _, tt := range tests {
		offsets := neighborhoodOffsets(tt.size)
		if len(offsets) != tt.expected {
			t.Errorf("neighborhoodOffsets(%d) has %d offsets, expected %d", tt.size, len(offsets), tt.expected)
		}

		hasOrigin := false
		for _, off := range offsets {
			if absInt(off[0])+absInt(off[1]) > tt.size {
				t.Errorf("offset %v outside Manhattan radius %d", off, tt.size)
			}
			if off[0] == 0 && off[1] == 0 {
				hasOrigin = true
			}
		}
		if !hasOrigin {
			t.Errorf("neighborhoodOffsets(%d) missing origin", tt.size)
		}
	}
}

func TestExtractPeaksAllZeroGrid(t *testing.T) {
	grid := makeGrid(40, 40)

	// An all-zero grid must stay empty regardless of the floor: every cell
	// is trivially a local max, but the eroded background cancels them all.
	for _, ampMin := range []float64{-10, 0, 65} {
		cfg := testConfig()
		cfg.AmpMin = ampMin
		if peaks := ExtractPeaks(grid, cfg); len(peaks) != 0 {
			t.Errorf("ampMin=%v: expected no peaks from all-zero grid, got %d", ampMin, len(peaks))
		}
	}
}

func TestExtractPeaksEmptyGrid(t *testing.T) {
	if peaks := ExtractPeaks(nil, testConfig()); peaks != nil {
		t.Errorf("expected nil peaks from nil grid, got %v", peaks)
	}
	if peaks := ExtractPeaks([][]float64{}, testConfig()); peaks != nil {
		t.Errorf("expected nil peaks from empty grid, got %v", peaks)
	}
}

func TestExtractPeaksSinglePeak(t *testing.T) {
	grid := makeGrid(50, 50)
	grid[10][20] = 80

	cfg := testConfig()
	peaks := ExtractPeaks(grid, cfg)

	if len(peaks) != 1 {
		t.Fatalf("expected exactly 1 peak, got %d", len(peaks))
	}
	p := peaks[0]
	if p.FreqIdx != 10 || p.TimeIdx != 20 || p.Amp != 80 {
		t.Errorf("unexpected peak %+v", p)
	}
}

func TestExtractPeaksBelowFloor(t *testing.T) {
	grid := makeGrid(50, 50)
	grid[10][20] = 50 // a genuine local max, but under the default floor of 65

	peaks := ExtractPeaks(grid, testConfig())
	if len(peaks) != 0 {
		t.Errorf("expected no peaks below floor, got %d", len(peaks))
	}
}

func TestExtractPeaksThresholdMonotonicity(t *testing.T) {
	grid := makeGrid(60, 60)
	// Deterministic bumpy surface with maxima at varying heights.
	for f := 5; f < 60; f += 12 {
		for tt := 5; tt < 60; tt += 12 {
			grid[f][tt] = float64((f*7+tt*3)%90) + 1
		}
	}

	cfg := testConfig()
	prev := -1
	for _, ampMin := range []float64{0, 20, 40, 60, 80} {
		cfg.AmpMin = ampMin
		n := len(ExtractPeaks(grid, cfg))
		if prev >= 0 && n > prev {
			t.Errorf("raising ampMin to %v increased peak count from %d to %d", ampMin, prev, n)
		}
		prev = n
	}
}

func TestExtractPeaksIsolatedZeroCell(t *testing.T) {
	// A zero cell inside a non-flat (negative log amplitude) region is a
	// genuine local maximum and must survive the background erosion.
	grid := makeGrid(30, 30)
	for f := range grid {
		for tt := range grid[f] {
			grid[f][tt] = -2
		}
	}
	grid[15][15] = 0

	cfg := testConfig()
	cfg.AmpMin = -1
	peaks := ExtractPeaks(grid, cfg)

	if len(peaks) != 1 {
		t.Fatalf("expected exactly 1 peak, got %d", len(peaks))
	}
	if peaks[0].FreqIdx != 15 || peaks[0].TimeIdx != 15 {
		t.Errorf("unexpected peak position (%d, %d)", peaks[0].FreqIdx, peaks[0].TimeIdx)
	}
}

func TestExtractPeaksScanOrder(t *testing.T) {
	grid := makeGrid(50, 50)
	grid[5][40] = 80
	grid[30][10] = 90

	peaks := ExtractPeaks(grid, testConfig())
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(peaks))
	}
	// Grid scan order: frequency outer, time inner.
	if peaks[0].FreqIdx != 5 || peaks[1].FreqIdx != 30 {
		t.Errorf("peaks not in scan order: %+v", peaks)
	}
}

func TestExtractPeaksSeparation(t *testing.T) {
	// Two maxima closer than the neighborhood radius: only the larger
	// survives the local-max filter.
	grid := makeGrid(50, 50)
	grid[20][20] = 90
	grid[20][22] = 85

	peaks := ExtractPeaks(grid, testConfig())
	if len(peaks) != 1 {
		t.Fatalf("expected 1 peak, got %d", len(peaks))
	}
	if peaks[0].TimeIdx != 20 || peaks[0].Amp != 90 {
		t.Errorf("wrong peak survived: %+v", peaks[0])
	}
}

package fingerprint

// Peak is a local maximum of the log-amplitude grid that strictly exceeds the
// configured floor. Indices address the grid the peak was extracted from.
type Peak struct {
	FreqIdx int     // frequency bin index
	TimeIdx int     // time frame index
	Amp     float64 // log-scaled amplitude at that cell
}

// neighborhoodOffsets builds the structuring element used for both the
// local-max filter and the background erosion: a minimal 4-connected element
// dilated with itself size times, i.e. a diamond of Manhattan radius size.
// The origin is included.
func neighborhoodOffsets(size int) [][2]int {
	offsets := make([][2]int, 0, 2*size*(size+1)+1)
	for df := -size; df <= size; df++ {
		span := size - absInt(df)
		for dt := -span; dt <= span; dt++ {
			offsets = append(offsets, [2]int{df, dt})
		}
	}
	return offsets
}

// ExtractPeaks scans a log-amplitude grid indexed [frequency bin][time frame]
// and returns the cells that are local maxima over the diamond neighborhood
// and strictly exceed cfg.AmpMin.
//
// Flat zero-amplitude regions are trivially locally maximal everywhere, so
// the zero-valued background is eroded with the same structuring element
// (cells beyond the border count as background) and removed from the
// local-max mask by symmetric difference. An isolated zero cell inside a
// non-flat neighborhood survives erosion removal and can still register.
//
// Peaks come out in grid scan order (frequency outer, time inner). A grid
// that is entirely zero or entirely below the floor yields an empty slice.
// Cost is proportional to grid size times neighborhood area.
func ExtractPeaks(grid [][]float64, cfg Config) []Peak {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil
	}

	nFreq := len(grid)
	nTime := len(grid[0])
	offsets := neighborhoodOffsets(cfg.PeakNeighborhoodSize)

	var peaks []Peak
	for f := 0; f < nFreq; f++ {
		for t := 0; t < nTime; t++ {
			v := grid[f][t]

			localMax := true
			for _, off := range offsets {
				nf, nt := f+off[0], t+off[1]
				if nf < 0 || nf >= nFreq || nt < 0 || nt >= nTime {
					continue
				}
				if grid[nf][nt] > v {
					localMax = false
					break
				}
			}

			// Erosion of the zero background; the element contains the
			// origin, so any non-zero cell erodes to false immediately.
			erodedBackground := v == 0
			if erodedBackground {
				for _, off := range offsets {
					nf, nt := f+off[0], t+off[1]
					if nf < 0 || nf >= nFreq || nt < 0 || nt >= nTime {
						continue // border counts as background
					}
					if grid[nf][nt] != 0 {
						erodedBackground = false
						break
					}
				}
			}

			if localMax == erodedBackground {
				continue
			}
			if v > cfg.AmpMin {
				peaks = append(peaks, Peak{FreqIdx: f, TimeIdx: t, Amp: v})
			}
		}
	}
	return peaks
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

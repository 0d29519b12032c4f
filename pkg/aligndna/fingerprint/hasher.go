package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strconv"
)

// Map is the fingerprint output: truncated hash key -> anchor frame offsets
// in discovery order, duplicates permitted. Unrelated peak triples that share
// the same relative geometry legitimately collide on a key; the downstream
// matcher exploits that.
type Map map[string][]int

// GenerateHashes enumerates peak triples within the fan-out window and
// derives one hash per triple that passes both time-delta gates.
//
// The feature hashed for a triple (anchor, p2, p3) is
//
//	"{f1-f2}|{f2-f3}|{(t2-t1)/(t3-t1) to 8 decimals}"
//
// which depends only on relative frequency and the time ratio, never on
// absolute position. Two recordings of the same event therefore produce
// identical keys for the same acoustic structure and differ only in the t1
// values stored under them. The SHA-1 digest is truncated to
// cfg.FingerprintReduction hex characters on purpose: the discarded entropy
// buys the intentional collisions fuzzy matching needs. Do not widen it.
//
// The input slice is never mutated; when cfg.PeakSort is set a copy is
// stably sorted by time index first. Short or empty inputs simply produce
// fewer or zero hashes.
func GenerateHashes(peaks []Peak, cfg Config) Map {
	hashes := make(Map)
	if len(peaks) == 0 {
		return hashes
	}

	if cfg.PeakSort {
		sorted := make([]Peak, len(peaks))
		copy(sorted, peaks)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TimeIdx < sorted[j].TimeIdx
		})
		peaks = sorted
	}

	// The triple loop dominates runtime at O(len(peaks) * FanValue^2); keep
	// it allocation-light by reusing the feature and hex scratch buffers.
	feature := make([]byte, 0, 48)
	var hexDigest [2 * sha1.Size]byte

	for i := range peaks {
		freq1, t1 := peaks[i].FreqIdx, peaks[i].TimeIdx
		for j := 1; j <= cfg.FanValue-2; j++ {
			if i+j >= len(peaks) {
				break
			}
			freq2, t2 := peaks[i+j].FreqIdx, peaks[i+j].TimeIdx
			for k := j + 1; k <= cfg.FanValue-1; k++ {
				if i+k >= len(peaks) {
					break
				}
				freq3, t3 := peaks[i+k].FreqIdx, peaks[i+k].TimeIdx

				outerDelta := t3 - t1
				if outerDelta < cfg.MinHashTimeDelta || outerDelta > cfg.MaxHashTimeDelta {
					continue
				}
				innerDelta := t2 - t1
				if innerDelta < cfg.MinHashTimeDelta || innerDelta > cfg.MaxHashTimeDelta {
					continue
				}

				feature = strconv.AppendInt(feature[:0], int64(freq1-freq2), 10)
				feature = append(feature, '|')
				feature = strconv.AppendInt(feature, int64(freq2-freq3), 10)
				feature = append(feature, '|')
				feature = strconv.AppendFloat(feature,
					float64(innerDelta)/float64(outerDelta), 'f', 8, 64)

				digest := sha1.Sum(feature)
				hex.Encode(hexDigest[:], digest[:])
				key := string(hexDigest[:cfg.FingerprintReduction])
				hashes[key] = append(hashes[key], t1)
			}
		}
	}
	return hashes
}

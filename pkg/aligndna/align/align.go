// Package align is the downstream matcher: it cross-references two
// fingerprint maps and votes on the relative frame offset between the
// recordings that produced them.
package align

import (
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"
	"github.com/himanishpuri/AlignDNA/pkg/models"
)

// Histogram counts, for every hash key present in both maps, how often each
// relative offset (reference frame minus query frame) occurs. Two recordings
// of the same event pile votes onto their true offset; unrelated collisions
// scatter thinly.
func Histogram(query, reference fingerprint.Map) map[int]int {
	votes := make(map[int]int)
	for hash, queryOffsets := range query {
		refOffsets, ok := reference[hash]
		if !ok {
			continue
		}
		for _, qt := range queryOffsets {
			for _, rt := range refOffsets {
				votes[rt-qt]++
			}
		}
	}
	return votes
}

// Match returns the offset with the most votes. Ties resolve to the smaller
// offset so the result is deterministic. A disjoint pair of maps yields a
// zero-vote result, not an error.
func Match(query, reference fingerprint.Map, cfg fingerprint.Config) models.AlignmentResult {
	matched := 0
	for hash := range query {
		if _, ok := reference[hash]; ok {
			matched++
		}
	}

	votes := Histogram(query, reference)
	bestOffset, bestVotes := 0, 0
	for offset, n := range votes {
		if n > bestVotes || (n == bestVotes && n > 0 && offset < bestOffset) {
			bestOffset, bestVotes = offset, n
		}
	}

	return models.AlignmentResult{
		OffsetFrames:  bestOffset,
		OffsetSeconds: float64(bestOffset) * cfg.FrameDuration(),
		Votes:         bestVotes,
		MatchedHashes: matched,
	}
}

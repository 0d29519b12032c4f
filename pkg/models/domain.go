package models

import "time"

// AlignmentResult describes the best relative offset found between a query
// and a reference fingerprint map.
type AlignmentResult struct {
	OffsetFrames  int     // reference anchor frame minus query anchor frame
	OffsetSeconds float64 // OffsetFrames converted via hop size / sample rate
	Votes         int     // offset pairs agreeing on OffsetFrames
	MatchedHashes int     // distinct hash keys present in both maps
}

// Recording is the metadata of a cached fingerprint set.
type Recording struct {
	ID         string // UUID
	Name       string
	DurationMs int
	CreatedAt  time.Time
}

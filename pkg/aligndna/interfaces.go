// Package aligndna is the embeddable facade over the fingerprinting and
// alignment pipeline: build a Service with functional options, fingerprint
// audio files, align pairs of recordings and optionally cache the results.
package aligndna

import (
	"context"

	"github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"
	"github.com/himanishpuri/AlignDNA/pkg/models"
)

type Service interface {
	FingerprintFile(ctx context.Context, audioPath string) (fingerprint.Map, error)
	FingerprintSamples(samples []float64, sampleRate int) (fingerprint.Map, error)
	AlignFiles(ctx context.Context, queryPath, referencePath string) (models.AlignmentResult, error)
	SaveFingerprints(name string, durationMs int, fp fingerprint.Map) (string, error)
	LoadFingerprints(recordingID string) (fingerprint.Map, error)
	ListRecordings() ([]models.Recording, error)
	DeleteRecording(recordingID string) error
	Close() error
}

type Storage interface {
	RegisterRecording(name string, durationMs int) (string, error)
	StoreFingerprints(recordingID string, fp fingerprint.Map) error
	LoadFingerprints(recordingID string) (fingerprint.Map, error)
	ListRecordings() ([]models.Recording, error)
	DeleteRecording(recordingID string) error
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

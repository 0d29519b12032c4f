package aligndna

import (
	"context"
	"fmt"

	"github.com/himanishpuri/AlignDNA/pkg/aligndna/align"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/audio"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/spectral"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/storage"
	"github.com/himanishpuri/AlignDNA/pkg/logger"
	"github.com/himanishpuri/AlignDNA/pkg/models"
)

// alignService is the default implementation of the Service interface.
type alignService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.Spectrum == nil {
		cfg.Spectrum = spectral.Magnitude
	}
	if err := cfg.Fingerprint.Validate(); err != nil {
		return nil, fmt.Errorf("fingerprint config: %w", err)
	}

	stor := cfg.Storage
	if stor == nil {
		var err error
		stor, err = storage.NewDBClientWithPath(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &alignService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// FingerprintFile converts an audio file to mono WAV at the configured sample
// rate, decodes it and runs the fingerprint pipeline.
func (s *alignService) FingerprintFile(ctx context.Context, audioPath string) (fingerprint.Map, error) {
	s.log.Infof("Fingerprinting: %s", audioPath)

	wavPath, err := audio.ConvertToMonoWAV(ctx, audioPath, s.config.TempDir, audio.ConvertWAVConfig{
		SampleRate: s.config.Fingerprint.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("audio conversion failed: %w", err)
	}

	samples, sampleRate, err := audio.ReadWAV(wavPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV file: %w", err)
	}

	fp, err := s.FingerprintSamples(samples, sampleRate)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Generated %d unique hashes from %s", len(fp), audioPath)
	return fp, nil
}

// FingerprintSamples fingerprints raw mono samples. The configured sample
// rate is overridden by the actual rate of the samples when they differ.
func (s *alignService) FingerprintSamples(samples []float64, sampleRate int) (fingerprint.Map, error) {
	cfg := s.config.Fingerprint
	if sampleRate > 0 && sampleRate != cfg.SampleRate {
		s.log.Debugf("Overriding configured sample rate %d with %d", cfg.SampleRate, sampleRate)
		cfg.SampleRate = sampleRate
	}
	return fingerprint.FromSamples(samples, cfg, s.config.Spectrum)
}

// AlignFiles fingerprints both files and votes on the relative offset of the
// query within the reference.
func (s *alignService) AlignFiles(ctx context.Context, queryPath, referencePath string) (models.AlignmentResult, error) {
	queryFP, err := s.FingerprintFile(ctx, queryPath)
	if err != nil {
		return models.AlignmentResult{}, fmt.Errorf("fingerprinting query: %w", err)
	}
	refFP, err := s.FingerprintFile(ctx, referencePath)
	if err != nil {
		return models.AlignmentResult{}, fmt.Errorf("fingerprinting reference: %w", err)
	}

	result := align.Match(queryFP, refFP, s.config.Fingerprint)
	s.log.Infof("Best offset %d frames (%.3fs) with %d votes over %d shared hashes",
		result.OffsetFrames, result.OffsetSeconds, result.Votes, result.MatchedHashes)
	return result, nil
}

// SaveFingerprints registers a recording and caches its fingerprint map.
func (s *alignService) SaveFingerprints(name string, durationMs int, fp fingerprint.Map) (string, error) {
	recordingID, err := s.storage.RegisterRecording(name, durationMs)
	if err != nil {
		return "", fmt.Errorf("failed to register recording: %w", err)
	}
	if err := s.storage.StoreFingerprints(recordingID, fp); err != nil {
		s.storage.DeleteRecording(recordingID) // rollback
		return "", fmt.Errorf("failed to store fingerprints: %w", err)
	}
	s.log.Infof("Cached %d hashes for recording %s (%s)", len(fp), name, recordingID)
	return recordingID, nil
}

func (s *alignService) LoadFingerprints(recordingID string) (fingerprint.Map, error) {
	return s.storage.LoadFingerprints(recordingID)
}

func (s *alignService) ListRecordings() ([]models.Recording, error) {
	return s.storage.ListRecordings()
}

func (s *alignService) DeleteRecording(recordingID string) error {
	return s.storage.DeleteRecording(recordingID)
}

func (s *alignService) Close() error {
	return s.storage.Close()
}

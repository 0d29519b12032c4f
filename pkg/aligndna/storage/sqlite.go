// Package storage is an optional cache for fingerprint maps: recordings and
// their hash/offset rows in a local sqlite database. The fingerprint core
// never touches it; callers that refingerprint the same material repeatedly
// use it to skip the pipeline.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"
	"github.com/himanishpuri/AlignDNA/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultDBFile = "aligndna.sqlite3"
const errDBClientNil = "db client is nil"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Recording struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Name       string `gorm:"index:idx_recording_name"`
	DurationMs int
	CreatedAt  time.Time
}

// Fingerprint is one (hash, offset) occurrence. The autoincrement ID
// preserves insertion order so a loaded map keeps each key's offset list in
// discovery order.
type Fingerprint struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Hash        string `gorm:"type:varchar(40);index:idx_hash"`
	RecordingID string `gorm:"type:varchar(36);index:idx_recording"`
	OffsetFrame int
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("ALIGNDNA_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Recording{}, &Fingerprint{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RegisterRecording creates a recording row and returns its UUID.
func (c *DBClient) RegisterRecording(name string, durationMs int) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}

	rec := Recording{ID: uuid.NewString(), Name: name, DurationMs: durationMs}
	if err := c.DB.Create(&rec).Error; err != nil {
		return "", fmt.Errorf("creating recording: %w", err)
	}
	return rec.ID, nil
}

func (c *DBClient) DeleteRecording(recordingID string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recording_id = ?", recordingID).Delete(&Fingerprint{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", recordingID).Delete(&Recording{}).Error
	})
}

// StoreFingerprints persists a fingerprint map for a recording. Offsets
// within each hash key are written in list order.
func (c *DBClient) StoreFingerprints(recordingID string, fp fingerprint.Map) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}

	entries := make([]Fingerprint, 0, 1024)
	for hash, offsets := range fp {
		for _, offset := range offsets {
			entries = append(entries, Fingerprint{
				Hash:        hash,
				RecordingID: recordingID,
				OffsetFrame: offset,
			})
			if len(entries) >= 1000 {
				if err := c.DB.CreateInBatches(entries, 500).Error; err != nil {
					return fmt.Errorf("batch insert fingerprints: %w", err)
				}
				entries = entries[:0]
			}
		}
	}
	if len(entries) > 0 {
		if err := c.DB.CreateInBatches(entries, 500).Error; err != nil {
			return fmt.Errorf("batch insert last fingerprints: %w", err)
		}
	}
	return nil
}

// LoadFingerprints rebuilds a recording's fingerprint map. Rows come back in
// insertion order, so per-key offset lists round-trip exactly.
func (c *DBClient) LoadFingerprints(recordingID string) (fingerprint.Map, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var rows []Fingerprint
	if err := c.DB.Where("recording_id = ?", recordingID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying fingerprints: %w", err)
	}

	fp := make(fingerprint.Map, len(rows))
	for _, r := range rows {
		fp[r.Hash] = append(fp[r.Hash], r.OffsetFrame)
	}
	return fp, nil
}

func (c *DBClient) GetRecordingByID(recordingID string) (*models.Recording, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var rec Recording
	if err := c.DB.Where("id = ?", recordingID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recording %s not found", recordingID)
		}
		return nil, fmt.Errorf("querying recording: %w", err)
	}
	out := toModel(rec)
	return &out, nil
}

func (c *DBClient) ListRecordings() ([]models.Recording, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var rows []Recording
	if err := c.DB.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}

	out := make([]models.Recording, 0, len(rows))
	for _, r := range rows {
		out = append(out, toModel(r))
	}
	return out, nil
}

func (c *DBClient) FingerprintCount(recordingID string) (int, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}

	var count int64
	if err := c.DB.Model(&Fingerprint{}).Where("recording_id = ?", recordingID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting fingerprints: %w", err)
	}
	return int(count), nil
}

func toModel(r Recording) models.Recording {
	return models.Recording{
		ID:         r.ID,
		Name:       r.Name,
		DurationMs: r.DurationMs,
		CreatedAt:  r.CreatedAt,
	}
}

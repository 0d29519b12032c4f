package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"
)

func setupTestDB(t *testing.T) *DBClient {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_aligndna.sqlite3")
	client, err := NewDBClientWithPath(dbPath)
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})
	return client
}

func TestRegisterAndGetRecording(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.RegisterRecording("concert-phone.wav", 183000)
	if err != nil {
		t.Fatalf("RegisterRecording failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected UUID recording id, got %q", id)
	}

	rec, err := db.GetRecordingByID(id)
	if err != nil {
		t.Fatalf("GetRecordingByID failed: %v", err)
	}
	if rec.Name != "concert-phone.wav" || rec.DurationMs != 183000 {
		t.Errorf("unexpected recording %+v", rec)
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.RegisterRecording("roundtrip.wav", 1000)
	if err != nil {
		t.Fatalf("RegisterRecording failed: %v", err)
	}

	fp := fingerprint.Map{
		"b692efed1b4e70671fb2": {0, 1000, 1000}, // duplicates must survive
		"0123456789abcdef0123": {42},
		"deadbeefdeadbeefdead": {7, 3, 11}, // order must survive
	}

	if err := db.StoreFingerprints(id, fp); err != nil {
		t.Fatalf("StoreFingerprints failed: %v", err)
	}

	loaded, err := db.LoadFingerprints(id)
	if err != nil {
		t.Fatalf("LoadFingerprints failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, fp) {
		t.Errorf("round trip mismatch:\nstored: %v\nloaded: %v", fp, loaded)
	}
}

func TestFingerprintCount(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.RegisterRecording("count.wav", 1000)
	if err != nil {
		t.Fatalf("RegisterRecording failed: %v", err)
	}

	fp := fingerprint.Map{
		"aaaaaaaaaaaaaaaaaaaa": {1, 2, 3},
		"bbbbbbbbbbbbbbbbbbbb": {4},
	}
	if err := db.StoreFingerprints(id, fp); err != nil {
		t.Fatalf("StoreFingerprints failed: %v", err)
	}

	count, err := db.FingerprintCount(id)
	if err != nil {
		t.Fatalf("FingerprintCount failed: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 fingerprints, got %d", count)
	}
}

func TestDeleteRecording(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.RegisterRecording("delete-me.wav", 1000)
	if err != nil {
		t.Fatalf("RegisterRecording failed: %v", err)
	}
	if err := db.StoreFingerprints(id, fingerprint.Map{"cccccccccccccccccccc": {1}}); err != nil {
		t.Fatalf("StoreFingerprints failed: %v", err)
	}

	if err := db.DeleteRecording(id); err != nil {
		t.Fatalf("DeleteRecording failed: %v", err)
	}

	count, err := db.FingerprintCount(id)
	if err != nil {
		t.Fatalf("FingerprintCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected fingerprints gone after delete, got %d", count)
	}

	recordings, err := db.ListRecordings()
	if err != nil {
		t.Fatalf("ListRecordings failed: %v", err)
	}
	if len(recordings) != 0 {
		t.Errorf("expected no recordings after delete, got %d", len(recordings))
	}
}

func TestListRecordings(t *testing.T) {
	db := setupTestDB(t)

	names := []string{"first.wav", "second.wav", "third.wav"}
	for _, name := range names {
		if _, err := db.RegisterRecording(name, 1000); err != nil {
			t.Fatalf("RegisterRecording(%s) failed: %v", name, err)
		}
	}

	recordings, err := db.ListRecordings()
	if err != nil {
		t.Fatalf("ListRecordings failed: %v", err)
	}
	if len(recordings) != len(names) {
		t.Fatalf("expected %d recordings, got %d", len(names), len(recordings))
	}
}

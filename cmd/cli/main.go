package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/himanishpuri/AlignDNA/pkg/aligndna"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/audio"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/render"
	"github.com/himanishpuri/AlignDNA/pkg/aligndna/spectral"
	"github.com/himanishpuri/AlignDNA/pkg/logger"
)

// Global flags
var (
	dbPath     string
	tempDir    string
	sampleRate int
)

func init() {
	flag.StringVar(&dbPath, "db", getEnvOrDefault("ALIGNDNA_DB_PATH", "aligndna.sqlite3"), "Path to the SQLite cache database")
	flag.StringVar(&tempDir, "temp", getEnvOrDefault("ALIGNDNA_TEMP_DIR", "/tmp"), "Directory for temporary audio conversion files")
	flag.IntVar(&sampleRate, "rate", fingerprint.DefaultSampleRate, "Audio sample rate for processing")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func createService() (aligndna.Service, error) {
	fpCfg := fingerprint.DefaultConfig()
	fpCfg.SampleRate = sampleRate
	return aligndna.NewService(
		aligndna.WithDBPath(dbPath),
		aligndna.WithTempDir(tempDir),
		aligndna.WithFingerprintConfig(fpCfg),
	)
}

func main() {
	log := logger.GetLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log.Debugf("Executing command: %s", command)

	switch command {
	case "fingerprint":
		handleFingerprint()
	case "align":
		handleAlign()
	case "render":
		handleRender()
	case "list":
		handleList()
	case "delete":
		handleDelete()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`AlignDNA - audio alignment fingerprinting

Usage:
  cli fingerprint [-save] [-o out.json] <file> [file...]
  cli align <query> <reference>
  cli render <file.wav> <out.png>
  cli list
  cli delete <recording-id>

Global flags: -db, -temp, -rate`)
}

func handleFingerprint() {
	fs := flag.NewFlagSet("fingerprint", flag.ExitOnError)
	output := fs.String("o", "", "write the fingerprint maps to a JSON file")
	save := fs.Bool("save", false, "cache the fingerprints in the database")
	fs.Parse(os.Args[2:])

	files := fs.Args()
	if len(files) == 0 {
		fmt.Println("Usage: cli fingerprint [-save] [-o out.json] <file> [file...]")
		os.Exit(1)
	}

	svc, err := createService()
	if err != nil {
		logger.Fatalf("creating service: %v", err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var bar *mpb.Bar
	var progress *mpb.Progress
	if len(files) > 1 {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.New(int64(len(files)),
			mpb.BarStyle(),
			mpb.PrependDecorators(
				decor.Name("fingerprint "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	results := make(map[string]fingerprint.Map, len(files))
	for _, file := range files {
		fp, err := svc.FingerprintFile(ctx, file)
		if err != nil {
			logger.Fatalf("fingerprinting %s: %v", file, err)
		}
		results[file] = fp
		if *save {
			if _, err := svc.SaveFingerprints(file, 0, fp); err != nil {
				logger.Fatalf("caching %s: %v", file, err)
			}
		}
		if bar != nil {
			bar.Increment()
		} else {
			fmt.Printf("%s: %d unique hashes\n", file, len(fp))
		}
	}
	if progress != nil {
		progress.Wait()
		for _, file := range files {
			fmt.Printf("%s: %d unique hashes\n", file, len(results[file]))
		}
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Fatalf("creating %s: %v", *output, err)
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			logger.Fatalf("writing %s: %v", *output, err)
		}
		fmt.Printf("Wrote fingerprints to %s\n", *output)
	}
}

func handleAlign() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: cli align <query> <reference>")
		os.Exit(1)
	}
	queryPath, referencePath := os.Args[2], os.Args[3]

	svc, err := createService()
	if err != nil {
		logger.Fatalf("creating service: %v", err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := svc.AlignFiles(ctx, queryPath, referencePath)
	if err != nil {
		logger.Fatalf("aligning: %v", err)
	}

	fmt.Printf("Offset: %d frames (%.3f s)\n", result.OffsetFrames, result.OffsetSeconds)
	fmt.Printf("Votes: %d over %d shared hashes\n", result.Votes, result.MatchedHashes)
}

func handleRender() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: cli render <file.wav> <out.png>")
		os.Exit(1)
	}
	wavPath, outPath := os.Args[2], os.Args[3]

	samples, sr, err := audio.ReadWAV(wavPath)
	if err != nil {
		logger.Fatalf("reading %s: %v", wavPath, err)
	}

	cfg := fingerprint.DefaultConfig()
	cfg.SampleRate = sr

	grid := spectral.Magnitude(samples, cfg.SampleRate, cfg.WindowSize, cfg.OverlapRatio)
	if err := fingerprint.LogScale(grid); err != nil {
		logger.Fatalf("normalizing grid: %v", err)
	}
	peaks := fingerprint.ExtractPeaks(grid, cfg)

	if err := render.SavePNG(grid, peaks, outPath); err != nil {
		logger.Fatalf("rendering %s: %v", outPath, err)
	}
	fmt.Printf("Rendered %d peaks to %s\n", len(peaks), outPath)
}

func handleList() {
	svc, err := createService()
	if err != nil {
		logger.Fatalf("creating service: %v", err)
	}
	defer svc.Close()

	recordings, err := svc.ListRecordings()
	if err != nil {
		logger.Fatalf("listing recordings: %v", err)
	}
	if len(recordings) == 0 {
		fmt.Println("No cached recordings.")
		return
	}
	for _, rec := range recordings {
		fmt.Printf("%s  %s  (%d ms, added %s)\n",
			rec.ID, rec.Name, rec.DurationMs, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func handleDelete() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: cli delete <recording-id>")
		os.Exit(1)
	}
	recordingID := os.Args[2]

	svc, err := createService()
	if err != nil {
		logger.Fatalf("creating service: %v", err)
	}
	defer svc.Close()

	if err := svc.DeleteRecording(recordingID); err != nil {
		logger.Fatalf("deleting %s: %v", recordingID, err)
	}
	fmt.Printf("Deleted recording %s\n", recordingID)
}

package aligndna

import "github.com/himanishpuri/AlignDNA/pkg/aligndna/fingerprint"

type Config struct {
	DBPath      string
	TempDir     string
	Fingerprint fingerprint.Config
	Spectrum    fingerprint.SpectrumFunc
	Logger      Logger
	Storage     Storage
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

// WithFingerprintConfig overrides the pipeline tunables (fan value, amplitude
// floor, delta windows, ...). The config is validated when the service is
// built.
func WithFingerprintConfig(cfg fingerprint.Config) Option {
	return func(c *Config) {
		c.Fingerprint = cfg
	}
}

// WithSpectrum swaps in a different spectral-transform provider.
func WithSpectrum(spectrum fingerprint.SpectrumFunc) Option {
	return func(c *Config) {
		c.Spectrum = spectrum
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:      "aligndna.sqlite3",
		TempDir:     "/tmp",
		Fingerprint: fingerprint.DefaultConfig(),
	}
}

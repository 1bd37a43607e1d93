// Package config loads the optional settings of the similars tool. The tool
// accepts no command-line arguments, so settings come from a TOML file named
// by SIMILARS_CONFIG and from a few environment overrides; every setting has
// a default that reproduces the classic behavior.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fortio.org/safecast"
	"github.com/pelletier/go-toml/v2"

	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/bitpack"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/fingerprint"
	"github.com/guenther-brunthaler/fuzzy-search-6cvtuxm0hulqcbp0ac85y1j3l/internal/sbox"
)

// Environment variable names
const (
	// EnvConfigPath names a TOML configuration file
	EnvConfigPath = "SIMILARS_CONFIG"
	// EnvLogLevel overrides log_level
	EnvLogLevel = "SIMILARS_LOG_LEVEL"
	// EnvLogFile overrides log_file
	EnvLogFile = "SIMILARS_LOG_FILE"
)

// Defaults
const (
	DefaultMarker        = "///"
	DefaultMaxLineLength = 64 * 1024
	DefaultLogLevel      = "warn"
	maxWarmUpRounds      = 1 << 16
)

// Error definitions for the config package
var (
	ErrReadConfig         = errors.New("failed to read config file")
	ErrParseConfig        = errors.New("failed to parse config file")
	ErrEmptyMarker        = errors.New("marker must not be empty")
	ErrMarkerNewline      = errors.New("marker must not contain a line terminator")
	ErrMaxLineLength      = errors.New("max_line_length must be positive")
	ErrWarmUpRounds       = errors.New("warmup_rounds out of range")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidAlphabet    = errors.New("invalid alphabet")
	ErrInvalidFingerprint = errors.New("invalid fingerprint settings")
)

// File mirrors the TOML configuration file.
type File struct {
	Marker          string `toml:"marker"`
	MaxLineLength   int64  `toml:"max_line_length"`
	Fingerprint     string `toml:"fingerprint"`
	Alphabet        string `toml:"alphabet"`
	Personalization string `toml:"personalization"`
	WarmUpRounds    int64  `toml:"warmup_rounds"`
	PearsonWidth    int64  `toml:"pearson_width"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Marker:          DefaultMarker,
		MaxLineLength:   DefaultMaxLineLength,
		Fingerprint:     fingerprint.MethodCopy,
		Alphabet:        bitpack.Crockford32Alphabet,
		Personalization: sbox.DefaultPersonalization,
		WarmUpRounds:    sbox.DefaultWarmUpRounds,
		PearsonWidth:    fingerprint.DefaultPearsonWidth,
		LogLevel:        DefaultLogLevel,
	}
}

// Settings is the validated configuration.
type Settings struct {
	Marker          string
	MaxLineLength   int
	Fingerprint     string
	Encoding        *bitpack.Encoding
	Personalization string
	WarmUpRounds    int
	PearsonWidth    int
	LogLevel        slog.Level
	LogFile         string
	Source          string // config file path, empty when defaults were used
}

// Loader reads the configuration file and environment overrides.
type Loader struct {
	lookupEnv func(string) (string, bool)
	readFile  func(string) ([]byte, error)
}

// NewLoaderWithEnv creates a loader with custom environment and file access.
func NewLoaderWithEnv(lookupEnv func(string) (string, bool), readFile func(string) ([]byte, error)) *Loader {
	return &Loader{lookupEnv: lookupEnv, readFile: readFile}
}

// Load returns the validated settings.
func (l *Loader) Load() (*Settings, error) {
	cfg := Default()
	source := ""

	if path, ok := l.lookupEnv(EnvConfigPath); ok && path != "" {
		// #nosec G304 - the path is chosen by the user running the tool
		content, err := l.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}
		if err := cfg.Parse(content); err != nil {
			return nil, err
		}
		source = path
	}

	if level, ok := l.lookupEnv(EnvLogLevel); ok && level != "" {
		cfg.LogLevel = level
	}
	if logFile, ok := l.lookupEnv(EnvLogFile); ok && logFile != "" {
		cfg.LogFile = logFile
	}

	settings, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	settings.Source = source
	return settings, nil
}

// Parse overlays TOML content onto f. Keys missing from content keep their
// current value; unknown keys are rejected.
func (f *File) Parse(content []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(f); err != nil {
		return fmt.Errorf("%w: %w", ErrParseConfig, err)
	}
	return nil
}

// Validate checks every field and converts it to Settings.
func (f *File) Validate() (*Settings, error) {
	if f.Marker == "" {
		return nil, ErrEmptyMarker
	}
	if strings.ContainsAny(f.Marker, "\r\n") {
		return nil, ErrMarkerNewline
	}

	if f.MaxLineLength <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrMaxLineLength, f.MaxLineLength)
	}
	maxLineLength, err := safecast.Conv[int](f.MaxLineLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMaxLineLength, err)
	}

	if f.WarmUpRounds < 0 || f.WarmUpRounds > maxWarmUpRounds {
		return nil, fmt.Errorf("%w: %d", ErrWarmUpRounds, f.WarmUpRounds)
	}
	warmUpRounds, err := safecast.Conv[int](f.WarmUpRounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWarmUpRounds, err)
	}

	pearsonWidth, err := safecast.Conv[int](f.PearsonWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: pearson_width: %w", ErrInvalidFingerprint, err)
	}
	// A throw-away table is enough to validate the method and its width
	if _, err := fingerprint.New(f.Fingerprint, new(sbox.Table), pearsonWidth); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFingerprint, err)
	}

	encoding, err := bitpack.NewEncoding(f.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAlphabet, err)
	}

	level, err := ParseLevel(f.LogLevel)
	if err != nil {
		return nil, err
	}

	return &Settings{
		Marker:          f.Marker,
		MaxLineLength:   maxLineLength,
		Fingerprint:     f.Fingerprint,
		Encoding:        encoding,
		Personalization: f.Personalization,
		WarmUpRounds:    warmUpRounds,
		PearsonWidth:    pearsonWidth,
		LogLevel:        level,
		LogFile:         f.LogFile,
	}, nil
}

// ParseLevel converts a level name (debug, info, warn, error) to slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
	return level, nil
}

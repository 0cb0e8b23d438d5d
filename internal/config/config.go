package config

import (
	"os"
	"strconv"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/palette"
)

const (
	EnvStyle   = "CURSORGEN_STYLE"
	EnvSize    = "CURSORGEN_SIZE"
	EnvOut     = "CURSORGEN_OUT"
	EnvStrict  = "CURSORGEN_STRICT"
	EnvWorkers = "CURSORGEN_WORKERS"

	DefaultSize = 32
	DefaultOut  = "cursors"

	// MinSize is the smallest working canvas on which every template stays
	// inside the canvas.
	MinSize = 16
	MaxSize = 256
)

// Config contains settings for one generation run.
type Config struct {
	Style   palette.Style
	Size    int    // requested working canvas size
	OutDir  string // files land in OutDir/Style
	Strict  bool   // reject unknown styles instead of using the default palette
	Workers int
}

// FromEnv returns the defaults overridden by CURSORGEN_* variables.
// Flags in main use these values as their defaults.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{Style: palette.Default, Size: DefaultSize, OutDir: DefaultOut, Strict: true, Workers: 1}

	if raw, ok := lookup(EnvStyle); ok && raw != "" {
		cfg.Style = palette.Style(raw)
	}
	if raw, ok := lookup(EnvOut); ok && raw != "" {
		cfg.OutDir = raw
	}
	if raw, ok := lookup(EnvSize); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, cursorerr.Wrap(cursorerr.KindConfig, err, "%s must be an integer (got %q)", EnvSize, raw)
		}
		cfg.Size = n
	}
	if raw, ok := lookup(EnvStrict); ok && raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, cursorerr.Wrap(cursorerr.KindConfig, err, "%s must be a boolean (got %q)", EnvStrict, raw)
		}
		cfg.Strict = b
	}
	if raw, ok := lookup(EnvWorkers); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, cursorerr.Wrap(cursorerr.KindConfig, err, "%s must be an integer (got %q)", EnvWorkers, raw)
		}
		cfg.Workers = n
	}
	return cfg, nil
}

// Validate checks ranges that flags and env can not express.
func (c Config) Validate() error {
	if c.Size < MinSize || c.Size > MaxSize {
		return cursorerr.New(cursorerr.KindConfig, "size must be in %d..%d (got %d)", MinSize, MaxSize, c.Size)
	}
	if c.Workers < 1 {
		return cursorerr.New(cursorerr.KindConfig, "workers must be at least 1 (got %d)", c.Workers)
	}
	if c.OutDir == "" {
		return cursorerr.New(cursorerr.KindConfig, "output directory is required")
	}
	if c.Strict && !c.Style.Valid() {
		return cursorerr.New(cursorerr.KindInvalidStyle, "unknown style %q", string(c.Style))
	}
	return nil
}

// Policy maps Strict onto a resolver policy.
func (c Config) Policy() palette.Policy {
	if c.Strict {
		return palette.Strict
	}
	return palette.FallbackDefault
}

package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/pktdecode/internal/protocol/packet"
	"github.com/danmuck/pktdecode/internal/report"
)

// Config is the resolved runtime configuration.
type Config struct {
	Limits packet.Limits
	Mode   report.Mode
	Format report.Format
	Batch  BatchConfig
}

type BatchConfig struct {
	Workers  int
	FailFast bool
}

func DefaultConfig() Config {
	return Config{
		Limits: packet.DefaultLimits(),
		Mode:   report.ModeValue,
		Format: report.FormatText,
		Batch: BatchConfig{
			Workers:  4,
			FailFast: false,
		},
	}
}

type fileConfig struct {
	Decoder struct {
		MaxDepth       int `toml:"max_depth"`
		MaxInputDigits int `toml:"max_input_digits"`
	} `toml:"decoder"`
	Output struct {
		Mode   string `toml:"mode"`
		Format string `toml:"format"`
	} `toml:"output"`
	Batch struct {
		Workers  int  `toml:"workers"`
		FailFast bool `toml:"fail_fast"`
	} `toml:"batch"`
}

// Load reads path over DefaultConfig. An empty path yields the defaults.
// Keys the file sets override defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("decoder", "max_depth") {
		cfg.Limits.MaxDepth = raw.Decoder.MaxDepth
	}
	if meta.IsDefined("decoder", "max_input_digits") {
		cfg.Limits.MaxInputDigits = raw.Decoder.MaxInputDigits
	}
	if meta.IsDefined("output", "mode") {
		mode, err := report.ParseMode(raw.Output.Mode)
		if err != nil {
			return Config{}, fmt.Errorf("parse output.mode: %w", err)
		}
		cfg.Mode = mode
	}
	if meta.IsDefined("output", "format") {
		format, err := report.ParseFormat(raw.Output.Format)
		if err != nil {
			return Config{}, fmt.Errorf("parse output.format: %w", err)
		}
		cfg.Format = format
	}
	if meta.IsDefined("batch", "workers") {
		cfg.Batch.Workers = raw.Batch.Workers
	}
	if meta.IsDefined("batch", "fail_fast") {
		cfg.Batch.FailFast = raw.Batch.FailFast
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Limits.MaxDepth < 0 {
		return fmt.Errorf("decoder.max_depth must not be negative")
	}
	if cfg.Limits.MaxInputDigits < 0 {
		return fmt.Errorf("decoder.max_input_digits must not be negative")
	}
	if _, err := report.ParseMode(string(cfg.Mode)); err != nil {
		return err
	}
	if _, err := report.ParseFormat(string(cfg.Format)); err != nil {
		return err
	}
	if cfg.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1")
	}
	return nil
}

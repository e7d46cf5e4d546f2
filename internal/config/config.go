package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/quill/internal/input/key"
)

// Config holds every setting.
type Config struct {
	Editor   EditorConfig      `toml:"editor" yaml:"editor"`
	KillRing KillRingConfig    `toml:"killring" yaml:"killring"`
	Log      LogConfig         `toml:"log" yaml:"log"`
	Keymap   map[string]string `toml:"keymap" yaml:"keymap"`
	Plugins  PluginConfig      `toml:"plugins" yaml:"plugins"`
}

// EditorConfig configures buffers and sessions.
type EditorConfig struct {
	FillColumn     int `toml:"fill_column" yaml:"fill_column"`
	TabWidth       int `toml:"tab_width" yaml:"tab_width"`
	ChunkSize      int `toml:"chunk_size" yaml:"chunk_size"`
	MarkRingSize   int `toml:"mark_ring_size" yaml:"mark_ring_size"`
	MaxUndoEntries int `toml:"max_undo_entries" yaml:"max_undo_entries"` // 0 is unbounded
}

// KillRingConfig configures the shared kill ring.
type KillRingConfig struct {
	Size int `toml:"size" yaml:"size"`
}

// LogConfig configures the application log.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"` // empty logs to stderr
}

// PluginConfig lists Lua scripts run at startup.
type PluginConfig struct {
	Scripts []string `toml:"scripts" yaml:"scripts"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			FillColumn:   72,
			TabWidth:     8,
			ChunkSize:    4096,
			MarkRingSize: 16,
		},
		KillRing: KillRingConfig{Size: 60},
		Log:      LogConfig{Level: "info"},
	}
}

// Format is a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads, parses and validates the file at path.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(path, data, format)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes data over the defaults. source names the input in errors.
func Parse(source string, data []byte, format Format) (Config, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatTOML:
		err = decodeTOML(source, data, &cfg)
	case FormatYAML:
		err = decodeYAML(source, data, &cfg)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return cfg, err
}

func decodeTOML(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	var serr *toml.StrictMissingError
	var derr *toml.DecodeError
	switch {
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		perr.Line, perr.Column = serr.Errors[0].Position()
		perr.Message = "unknown setting " + strings.Join(serr.Errors[0].Key(), ".")
	case errors.As(err, &derr):
		perr.Line, perr.Column = derr.Position()
	}
	return perr
}

func decodeYAML(source string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	e := c.Editor
	check(e.FillColumn > 0, "editor.fill_column", "must be positive", e.FillColumn)
	check(e.TabWidth > 0 && e.TabWidth <= 16, "editor.tab_width", "must be between 1 and 16", e.TabWidth)
	check(e.ChunkSize > 0, "editor.chunk_size", "must be positive", e.ChunkSize)
	check(e.MarkRingSize > 0, "editor.mark_ring_size", "must be positive", e.MarkRingSize)
	check(e.MaxUndoEntries >= 0, "editor.max_undo_entries", "must not be negative", e.MaxUndoEntries)
	check(c.KillRing.Size > 0, "killring.size", "must be positive", c.KillRing.Size)

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		check(false, "log.level", "must be debug, info, warn or error", c.Log.Level)
	}

	for keys := range c.Keymap {
		if _, err := key.ParseSequence(keys); err != nil {
			check(false, "keymap", err.Error(), keys)
		}
	}
	return errors.Join(errs...)
}

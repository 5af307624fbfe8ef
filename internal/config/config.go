package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	FormatHex    = "hex"
	FormatBinary = "binary"
)

// ToolConfig configures framectl.
type ToolConfig struct {
	Frame         string `toml:"frame" yaml:"frame"`
	InputFormat   string `toml:"input_format" yaml:"input_format"`
	ChunkSize     int    `toml:"chunk_size" yaml:"chunk_size"`
	MaxFrameBytes uint64 `toml:"max_frame_bytes" yaml:"max_frame_bytes"`
	LogLevel      string `toml:"log_level" yaml:"log_level"`
}

func DefaultToolConfig() ToolConfig {
	return ToolConfig{
		Frame:       "numeric.Frame",
		InputFormat: FormatHex,
		LogLevel:    "info",
	}
}

// LoadToolConfig reads TOML, or YAML for .yaml/.yml paths. Keys absent
// from the file keep their defaults.
func LoadToolConfig(path string) (ToolConfig, error) {
	cfg := DefaultToolConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := loadYAML(path, &cfg); err != nil {
			return ToolConfig{}, err
		}
	default:
		if err := loadTOML(path, &cfg); err != nil {
			return ToolConfig{}, err
		}
	}
	cfg.InputFormat = normalizeFormat(cfg.InputFormat)
	if err := ValidateToolConfig(cfg); err != nil {
		return ToolConfig{}, err
	}
	return cfg, nil
}

// WithOverrides applies command line values over cfg. Empty strings and
// a negative chunk leave the loaded value in place.
func (cfg ToolConfig) WithOverrides(frame, format string, chunk int) ToolConfig {
	if frame = strings.TrimSpace(frame); frame != "" {
		cfg.Frame = frame
	}
	if format = normalizeFormat(format); format != "" {
		cfg.InputFormat = format
	}
	if chunk >= 0 {
		cfg.ChunkSize = chunk
	}
	return cfg
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

func loadTOML(path string, out *ToolConfig) error {
	meta, err := toml.DecodeFile(path, out)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("frame") && strings.TrimSpace(out.Frame) == "" {
		return fmt.Errorf("config parse failed (%s): frame is empty", path)
	}
	return nil
}

func loadYAML(path string, out *ToolConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if node.Kind == 0 {
		return nil
	}
	if err := node.Decode(out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateToolConfig(cfg ToolConfig) error {
	if strings.TrimSpace(cfg.Frame) == "" {
		return fmt.Errorf("tool config missing frame")
	}
	if !strings.Contains(cfg.Frame, ".") {
		return fmt.Errorf("tool config frame %q must be namespace qualified", cfg.Frame)
	}
	switch cfg.InputFormat {
	case FormatHex, FormatBinary:
	default:
		return fmt.Errorf("tool config input_format %q must be %s or %s", cfg.InputFormat, FormatHex, FormatBinary)
	}
	if cfg.ChunkSize < 0 {
		return fmt.Errorf("tool config chunk_size must not be negative")
	}
	return nil
}

// Package config loads and saves the core's execution limits and default
// memory layout from a TOML file, and locates the platform-appropriate
// config and log directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/classroom-arch/mips32-core/vm"
)

// Config holds the settings an embedder reads before constructing a VM.
type Config struct {
	// Execution settings
	Execution struct {
		MaxCycles   int  `toml:"max_cycles"`
		EnableTrace bool `toml:"enable_trace"`
	} `toml:"execution"`

	// Layout settings: the addresses and sizes handed to vm.New.
	Layout struct {
		TextLow   uint32 `toml:"text_low"`
		DataLow   uint32 `toml:"data_low"`
		HeapLow   uint32 `toml:"heap_low"`
		MMIOHigh  uint32 `toml:"mmio_high"`
		StackHigh uint32 `toml:"stack_high"`
		HeapSize  uint32 `toml:"heap_size"`
		StackSize uint32 `toml:"stack_size"`
		MMIOSize  uint32 `toml:"mmio_size"`
	} `toml:"layout"`
}

// DefaultConfig returns a configuration matching the standard MARS memory
// layout and an untraced execution budget of 1,000,000 cycles.
func DefaultConfig() *Config {
	cfg := &Config{}

	// Execution defaults
	cfg.Execution.MaxCycles = 1000000
	cfg.Execution.EnableTrace = false

	// Layout defaults
	layout := vm.MARSLayout()
	cfg.Layout.TextLow = layout.TextLow
	cfg.Layout.DataLow = layout.DataLow
	cfg.Layout.HeapLow = layout.HeapLow
	cfg.Layout.MMIOHigh = layout.MMIOHigh
	cfg.Layout.StackHigh = layout.StackHigh
	cfg.Layout.HeapSize = layout.HeapSize
	cfg.Layout.StackSize = layout.StackSize
	cfg.Layout.MMIOSize = layout.MMIOSize

	return cfg
}

// ToLayout converts the config's layout section to a vm.Layout.
func (c *Config) ToLayout() vm.Layout {
	return vm.Layout{
		TextLow:   c.Layout.TextLow,
		DataLow:   c.Layout.DataLow,
		HeapLow:   c.Layout.HeapLow,
		MMIOHigh:  c.Layout.MMIOHigh,
		StackHigh: c.Layout.StackHigh,
		HeapSize:  c.Layout.HeapSize,
		StackSize: c.Layout.StackSize,
		MMIOSize:  c.Layout.MMIOSize,
	}
}

// MaxCyclesUint32 returns the configured cycle budget as a uint32, the type
// a scheduler loop counter wants. The TOML field is a signed int because
// that is what the decoder produces into; a negative value in the file is a
// user configuration error, not something to silently wrap around.
func (c *Config) MaxCyclesUint32() (uint32, error) {
	return vm.SafeIntToUint32(c.Execution.MaxCycles)
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\mips32-core\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mips32-core")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/mips32-core/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mips32-core")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\mips32-core\logs
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "mips32-core", "logs")

	case "darwin", "linux":
		// macOS/Linux: ~/.local/share/mips32-core/logs
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "mips32-core", "logs")

	default:
		return "logs"
	}

	// Ensure directory exists
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read and parse config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	// Encode to TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

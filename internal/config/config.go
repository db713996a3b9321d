// Package config loads the settings shared by the demo programs.
//
// Every field has a default, so a program started without a config file
// behaves exactly like one started with an empty file.
package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvValidation = "VKDEMO_VALIDATION"
	EnvDevice     = "VKDEMO_DEVICE"
	EnvLogLevel   = "VKDEMO_LOG_LEVEL"
)

const (
	MinFramesInFlight = 1
	MaxFramesInFlight = 4
)

var presentModes = []string{"fifo", "fifo_relaxed", "mailbox", "immediate"}
var logLevels = []string{"debug", "info", "warn", "error"}
var logFormats = []string{"text", "json"}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Vulkan VulkanConfig `yaml:"vulkan"`
	Log    LogConfig    `yaml:"log"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type VulkanConfig struct {
	Validation      bool   `yaml:"validation"`
	PresentMode     string `yaml:"present_mode"`
	PreferredDevice string `yaml:"preferred_device"`
	FramesInFlight  int    `yaml:"frames_in_flight"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings for a program with the given window title.
func Default(title string) *Config {
	return &Config{
		Window: WindowConfig{
			Title:  title,
			Width:  800,
			Height: 600,
		},
		Vulkan: VulkanConfig{
			Validation:     false,
			PresentMode:    "fifo",
			FramesInFlight: 2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string, title string) (*Config, error) {
	cfg := Default(title)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}

		if err := cfg.decode(data); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse handles the command line of a demo program. The only flag is
// -config, naming an optional YAML file.
func Parse(name string, args []string, title string) (*Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	path := flags.String("config", "", "path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if flags.NArg() > 0 {
		return nil, errors.Newf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	return Load(*path, title)
}

func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(c)
	if errors.Is(err, io.EOF) {
		// empty document
		return nil
	}
	return err
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if value, ok := lookup(EnvValidation); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvValidation)
		}
		c.Vulkan.Validation = enabled
	}

	if value, ok := lookup(EnvDevice); ok {
		c.Vulkan.PreferredDevice = value
	}

	if value, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = strings.ToLower(value)
	}

	return nil
}

// Validate reports the first field holding an unusable value.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Vulkan.FramesInFlight < MinFramesInFlight || c.Vulkan.FramesInFlight > MaxFramesInFlight {
		return errors.Newf("vulkan.frames_in_flight: must be between %d and %d, got %d",
			MinFramesInFlight, MaxFramesInFlight, c.Vulkan.FramesInFlight)
	}

	if !slices.Contains(presentModes, c.Vulkan.PresentMode) {
		return errors.Newf("vulkan.present_mode: unknown mode %q, expected one of %s",
			c.Vulkan.PresentMode, strings.Join(presentModes, ", "))
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return errors.Newf("log.level: unknown level %q, expected one of %s",
			c.Log.Level, strings.Join(logLevels, ", "))
	}

	if !slices.Contains(logFormats, c.Log.Format) {
		return errors.Newf("log.format: unknown format %q, expected one of %s",
			c.Log.Format, strings.Join(logFormats, ", "))
	}

	return nil
}

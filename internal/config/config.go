package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/essentialkaos/ek/v12/color"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/denwilliams/go-wakeuplight/internal/effect"
	"github.com/denwilliams/go-wakeuplight/internal/light"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	MQTTURI        string `env:"MQTT_URI" envDefault:"tcp://localhost:1883"`
	MQTTClientID   string `env:"MQTT_CLIENT_ID" envDefault:"wakeuplight"`
	MQTTSetTopic   string `env:"MQTT_SET_TOPIC" envDefault:"wakeuplight/set"`
	MQTTStateTopic string `env:"MQTT_STATE_TOPIC" envDefault:"wakeuplight/state"`
	MQTTDebugTopic string `env:"MQTT_DEBUG_TOPIC" envDefault:"wakeuplight/debug"`

	Port int `env:"PORT" envDefault:"0"`

	NumLEDs           int           `env:"NUM_LEDS" envDefault:"60"`
	TickInterval      time.Duration `env:"TICK_INTERVAL" envDefault:"20ms"`
	StartupEffect     string        `env:"STARTUP_EFFECT" envDefault:"rainbow"`
	StartupBrightness int           `env:"STARTUP_BRIGHTNESS" envDefault:"100"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	// ColorsFile points at an optional YAML file overriding References.
	ColorsFile string `env:"COLORS_FILE"`

	LIFXMirrorAddr   string `env:"LIFX_MIRROR_ADDR"`
	LIFXMirrorTarget string `env:"LIFX_MIRROR_TARGET"`

	References light.References `env:"-"`
}

// Load reads envFile (if present) into the process environment, parses the
// environment and applies the colors file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{References: light.DefaultReferences()}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.ColorsFile != "" {
		if err := cfg.loadColors(cfg.ColorsFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.NumLEDs < 1 {
		return fmt.Errorf("NUM_LEDS must be at least 1, got %d", c.NumLEDs)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.StartupBrightness < 0 || c.StartupBrightness > 255 {
		return fmt.Errorf("STARTUP_BRIGHTNESS must be within 0-255, got %d", c.StartupBrightness)
	}
	switch c.StartupEffect {
	case light.EffectRainbow, light.EffectWarmwhite:
	default:
		return fmt.Errorf("STARTUP_EFFECT must be %q or %q, got %q", light.EffectRainbow, light.EffectWarmwhite, c.StartupEffect)
	}
	if _, err := url.Parse(c.MQTTURI); err != nil {
		return fmt.Errorf("MQTT_URI: %w", err)
	}
	if c.LIFXMirrorAddr != "" && c.LIFXMirrorTarget == "" {
		return errors.New("LIFX_MIRROR_TARGET is required with LIFX_MIRROR_ADDR")
	}
	return nil
}

func (c *Config) BrokerURL() (*url.URL, error) {
	return url.Parse(c.MQTTURI)
}

// colorsFile is the YAML layout of COLORS_FILE. Colors are hex strings.
type colorsFile struct {
	References struct {
		Tungsten40W string `yaml:"tungsten40w"`
		Halogen     string `yaml:"halogen"`
	} `yaml:"references"`
	DefaultTransition Duration `yaml:"default_transition"`
	SunriseDuration   Duration `yaml:"sunrise_duration"`
}

func (c *Config) loadColors(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read colors file: %w", err)
	}

	var f colorsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse colors file: %w", err)
	}

	if f.References.Tungsten40W != "" {
		if c.References.Tungsten40W, err = parseColor(f.References.Tungsten40W); err != nil {
			return fmt.Errorf("tungsten40w: %w", err)
		}
	}
	if f.References.Halogen != "" {
		if c.References.Halogen, err = parseColor(f.References.Halogen); err != nil {
			return fmt.Errorf("halogen: %w", err)
		}
	}
	if f.DefaultTransition > 0 {
		c.References.DefaultTransition = time.Duration(f.DefaultTransition)
	}
	if f.SunriseDuration > 0 {
		c.References.SunriseDuration = time.Duration(f.SunriseDuration)
	}
	return nil
}

func parseColor(s string) (effect.Color, error) {
	hex, err := color.Parse(s)
	if err != nil {
		return effect.Color{}, err
	}
	rgb := hex.ToRGB()
	return effect.Color{R: rgb.R, G: rgb.G, B: rgb.B}, nil
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

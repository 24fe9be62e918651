package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"gestured/internal/gesture"
)

// Config is the top-level YAML configuration for the gestured daemon.
//
// Defaults and validation live here so the rest of the code can assume a
// well-formed config. Precedence is defaults, then file, then environment,
// then flags.
type Config struct {
	Touchpad    TouchpadConfig           `yaml:"touchpad"`
	Keyboards   KeyboardsConfig          `yaml:"keyboards"`
	Engine      EngineConfig             `yaml:"engine"`
	Sensitivity SensitivityConfig        `yaml:"sensitivity"`
	Feedback    FeedbackConfig           `yaml:"feedback"`
	Gestures    map[string]GestureConfig `yaml:"gestures,omitempty"`
	Apps        map[string]AppConfig     `yaml:"apps,omitempty"`
	IPC         IPCConfig                `yaml:"ipc"`
	HTTP        HTTPConfig               `yaml:"http"`
	HUD         HUDConfig                `yaml:"hud"`
	Metrics     MetricsConfig            `yaml:"metrics"`
	Logging     LoggingConfig            `yaml:"logging"`
}

type TouchpadConfig struct {
	Device string `yaml:"device"`

	// SizeScale converts raw ABS_MT_TOUCH_MAJOR/MINOR units into the
	// engine's contact size units.
	SizeScale float64 `yaml:"size_scale"`
}

type KeyboardsConfig struct {
	Devices []string `yaml:"devices,omitempty"`
}

type EngineConfig struct {
	TypingCooldownMS int `yaml:"typing_cooldown_ms"`
}

// SensitivityConfig holds per-knob multipliers. Zero means 1.0.
type SensitivityConfig struct {
	Move      float64 `yaml:"move,omitempty"`
	Swipe     float64 `yaml:"swipe,omitempty"`
	TapSpeed  float64 `yaml:"tap_speed,omitempty"`
	LongPress float64 `yaml:"long_press,omitempty"`
	Hold      float64 `yaml:"hold,omitempty"`
}

type FeedbackConfig struct {
	HUD    bool `yaml:"hud"`
	Haptic bool `yaml:"haptic"`
}

type GestureConfig struct {
	// Enabled defaults to true when omitted.
	Enabled *bool    `yaml:"enabled,omitempty"`
	Command []string `yaml:"command,omitempty"`
	OnLift  bool     `yaml:"on_lift,omitempty"`
}

type AppConfig struct {
	Disabled []string `yaml:"disabled,omitempty"`
}

type IPCConfig struct {
	SocketPath string `yaml:"socket_path"`
}

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

type HUDConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a fully-populated Config with defaults.
func DefaultConfig() Config {
	return Config{
		Touchpad: TouchpadConfig{
			Device:    defaultTouchpadDevice,
			SizeScale: defaultSizeScale,
		},
		Engine: EngineConfig{
			TypingCooldownMS: defaultTypingCooldownMS,
		},
		Feedback: FeedbackConfig{
			HUD: true,
		},
		IPC: IPCConfig{
			SocketPath: defaultSocketPath,
		},
		HTTP: HTTPConfig{
			Listen: defaultHTTPListen,
		},
		HUD: HUDConfig{
			Enabled: true,
			Path:    defaultHUDPath,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    defaultMetricsPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfigFile reads and parses a YAML config file on top of the defaults.
// Unknown fields are rejected so typos surface early.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Only whitespace and comments may follow the document.
	if err := dec.Decode(&struct{}{}); err == nil {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// EnvOverrides are read from GESTURED_* variables. Empty values are ignored.
type EnvOverrides struct {
	TouchpadDevice string   `env:"TOUCHPAD_DEVICE"`
	Keyboards      []string `env:"KEYBOARDS" envSeparator:","`
	SocketPath     string   `env:"IPC_SOCKET"`
	HTTPListen     string   `env:"HTTP_LISTEN"`
	LogLevel       string   `env:"LOG_LEVEL"`
	LogFormat      string   `env:"LOG_FORMAT"`
}

const envPrefix = "GESTURED_"

// ParseEnv reads EnvOverrides from the process environment.
func ParseEnv() (EnvOverrides, error) {
	return parseEnvWith(nil)
}

// parseEnvWith reads EnvOverrides from vars, or from the process
// environment when vars is nil.
func parseEnvWith(vars map[string]string) (EnvOverrides, error) {
	var o EnvOverrides
	opts := env.Options{Prefix: envPrefix}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse environment: %w", err)
	}
	return o, nil
}

// Apply merges non-empty environment values into cfg.
func (o EnvOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.TouchpadDevice != "" {
		cfg.Touchpad.Device = o.TouchpadDevice
	}
	if len(o.Keyboards) > 0 {
		cfg.Keyboards.Devices = append([]string(nil), o.Keyboards...)
	}
	if o.SocketPath != "" {
		cfg.IPC.SocketPath = o.SocketPath
	}
	if o.HTTPListen != "" {
		cfg.HTTP.Listen = o.HTTPListen
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Logging.Format = o.LogFormat
	}
}

// FlagOverrides carries command-line overrides. Each override is applied only
// when its pointer is non-nil, even if it points at a zero value.
type FlagOverrides struct {
	TouchpadDevice *string
	Keyboards      *[]string
	SocketPath     *string
	HTTPListen     *string
	LogLevel       *string
	LogFormat      *string
}

// Apply merges the overrides into cfg.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.TouchpadDevice != nil {
		cfg.Touchpad.Device = *o.TouchpadDevice
	}
	if o.Keyboards != nil {
		cfg.Keyboards.Devices = append([]string(nil), (*o.Keyboards)...)
	}
	if o.SocketPath != nil {
		cfg.IPC.SocketPath = *o.SocketPath
	}
	if o.HTTPListen != nil {
		cfg.HTTP.Listen = *o.HTTPListen
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		cfg.Logging.Format = *o.LogFormat
	}
}

// Validate checks config invariants and returns a user-friendly error.
// It is meant to run after defaults, file and overrides are applied.
func (c *Config) Validate() error {
	if c.Touchpad.Device == "" {
		return errors.New("touchpad.device must not be empty")
	}
	if c.Touchpad.SizeScale <= 0 {
		return errors.New("touchpad.size_scale must be > 0")
	}
	for i, dev := range c.Keyboards.Devices {
		if dev == "" {
			return fmt.Errorf("keyboards.devices[%d] is empty", i)
		}
	}

	if c.Engine.TypingCooldownMS < 0 {
		return errors.New("engine.typing_cooldown_ms must be >= 0")
	}

	knobs := []struct {
		name string
		v    float64
	}{
		{"move", c.Sensitivity.Move},
		{"swipe", c.Sensitivity.Swipe},
		{"tap_speed", c.Sensitivity.TapSpeed},
		{"long_press", c.Sensitivity.LongPress},
		{"hold", c.Sensitivity.Hold},
	}
	for _, k := range knobs {
		if k.v != 0 && (k.v < gesture.MinMultiplier || k.v > gesture.MaxMultiplier) {
			return fmt.Errorf("sensitivity.%s must be between %.1f and %.1f", k.name, gesture.MinMultiplier, gesture.MaxMultiplier)
		}
	}

	for _, name := range sortedKeys(c.Gestures) {
		if !gesture.KnownID(gesture.ID(name)) {
			return fmt.Errorf("gestures: unknown gesture %q", name)
		}
		if cmd := c.Gestures[name].Command; len(cmd) > 0 && cmd[0] == "" {
			return fmt.Errorf("gestures.%s.command: program must not be empty", name)
		}
	}
	for _, app := range sortedKeys(c.Apps) {
		for _, name := range c.Apps[app].Disabled {
			if !gesture.KnownID(gesture.ID(name)) {
				return fmt.Errorf("apps.%s.disabled: unknown gesture %q", app, name)
			}
		}
	}

	if c.IPC.SocketPath == "" {
		return errors.New("ipc.socket_path must not be empty")
	}
	if (c.HUD.Enabled || c.Metrics.Enabled) && c.HTTP.Listen == "" {
		return errors.New("http.listen must not be empty when hud or metrics is enabled")
	}
	if c.HUD.Enabled && c.HUD.Path == "" {
		return errors.New("hud.path must not be empty")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return errors.New("metrics.path must not be empty")
	}
	if c.HUD.Enabled && c.Metrics.Enabled && c.HUD.Path == c.Metrics.Path {
		return errors.New("hud.path and metrics.path must differ")
	}

	if _, err := parseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}

	return nil
}

// TypingCooldown returns the engine's post-keystroke cooldown in seconds.
func (c *Config) TypingCooldown() float64 {
	return (time.Duration(c.Engine.TypingCooldownMS) * time.Millisecond).Seconds()
}

// EngineSettings converts the config into the engine's settings view.
func (c *Config) EngineSettings() gesture.StaticSettings {
	s := gesture.StaticSettings{
		Disabled:    make(map[gesture.ID]bool),
		AppDisabled: make(map[string]map[gesture.ID]bool),
		Deferred:    make(map[gesture.ID]bool),
		Multipliers: map[gesture.Knob]float64{
			gesture.KnobMove:      c.Sensitivity.Move,
			gesture.KnobSwipe:     c.Sensitivity.Swipe,
			gesture.KnobTapSpeed:  c.Sensitivity.TapSpeed,
			gesture.KnobLongPress: c.Sensitivity.LongPress,
			gesture.KnobHold:      c.Sensitivity.Hold,
		},
		Flags: gesture.FeedbackFlags{
			HUD:    c.Feedback.HUD,
			Haptic: c.Feedback.Haptic,
		},
	}
	for name, g := range c.Gestures {
		id := gesture.ID(name)
		if g.Enabled != nil && !*g.Enabled {
			s.Disabled[id] = true
		}
		if g.OnLift {
			s.Deferred[id] = true
		}
	}
	for app, a := range c.Apps {
		off := make(map[gesture.ID]bool, len(a.Disabled))
		for _, name := range a.Disabled {
			off[gesture.ID(name)] = true
		}
		s.AppDisabled[app] = off
	}
	return s
}

// Commands returns the argv bound to each gesture that has one.
func (c *Config) Commands() map[gesture.ID][]string {
	out := make(map[gesture.ID][]string)
	for name, g := range c.Gestures {
		if len(g.Command) > 0 {
			out[gesture.ID(name)] = append([]string(nil), g.Command...)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExpandPath expands a leading "~" in a path using $HOME.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}

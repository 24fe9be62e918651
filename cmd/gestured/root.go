package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gestured",
	Short: "gestured recognizes multi-finger touchpad gestures",
	Long: `gestured reads a multitouch touchpad, recognizes taps, swipes, holds and
clicks with three to five fingers, arbitrates between conflicting gestures and
runs the command bound to the one that wins.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default $GESTURED_CONFIG or ~/.config/gestured/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: error, warn, info, debug")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// defaultConfigPath is used when neither --config nor GESTURED_CONFIG is set.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gestured", "config.yaml")
}

// resolveConfigPath picks the config file. explicit is false when the path
// is the built-in default, which may be absent.
func resolveConfigPath(cmd *cobra.Command) (path string, explicit bool) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, true
	}
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p, true
	}
	return defaultConfigPath(), false
}

// flagOverrides collects the flags the user actually set on cmd.
func flagOverrides(cmd *cobra.Command) FlagOverrides {
	fs := cmd.Flags()
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	str := func(name string) *string {
		if !changed(name) {
			return nil
		}
		v, _ := fs.GetString(name)
		return &v
	}

	o := FlagOverrides{
		TouchpadDevice: str("touchpad"),
		SocketPath:     str("ipc-socket"),
		HTTPListen:     str("http-listen"),
		LogLevel:       str("log-level"),
		LogFormat:      str("log-format"),
	}
	if changed("keyboard") {
		v, _ := fs.GetStringSlice("keyboard")
		o.Keyboards = &v
	}
	return o
}

// configSource loads the effective configuration for a command and can
// reload it later with the same overrides.
type configSource struct {
	path     string
	explicit bool
	env      EnvOverrides
	flags    FlagOverrides
}

func newConfigSource(cmd *cobra.Command) (*configSource, error) {
	env, err := ParseEnv()
	if err != nil {
		return nil, err
	}
	path, explicit := resolveConfigPath(cmd)
	return &configSource{path: path, explicit: explicit, env: env, flags: flagOverrides(cmd)}, nil
}

// load applies defaults, file, environment and flags, then validates. A
// missing default config file is not an error.
func (s *configSource) load() (Config, error) {
	cfg := DefaultConfig()
	if s.path != "" {
		fileCfg, err := LoadConfigFile(s.path)
		switch {
		case err == nil:
			cfg = fileCfg
		case !s.explicit && errors.Is(err, fs.ErrNotExist):
			// defaults only
		default:
			return Config{}, err
		}
	}
	s.env.Apply(&cfg)
	s.flags.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// watchable reports whether the config file exists and can be watched.
func (s *configSource) watchable() bool {
	if s.path == "" {
		return false
	}
	_, err := os.Stat(ExpandPath(s.path))
	return err == nil
}

func loggerFor(cfg Config) *slog.Logger {
	// Validate has already accepted the level.
	level, _ := parseLogLevel(cfg.Logging.Level)
	return setupLogger(level, cfg.Logging.Format)
}

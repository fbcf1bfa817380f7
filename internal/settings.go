// Package internal holds the command-line flags, environment bindings and
// config file handling shared by every wordfetch command.
//
// Values resolve with the precedence: explicitly passed flag, environment
// variable, config file, default.
package internal

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// DefaultConfigFile is read when --config is not given.
const DefaultConfigFile = "config.json"

// Settings resolves flags, environment variables and config file keys.
type Settings struct {
	v *viper.Viper
}

// NewSettings creates an empty Settings.
func NewSettings() *Settings {
	return &Settings{v: viper.New()}
}

// Register defines flags on cmd as persistent flags and binds them, their
// environment variables and their defaults.
func (s *Settings) Register(cmd *cobra.Command, flags []*Flag) error {
	for _, f := range flags {
		if f.Key == "" {
			return errors.New("flag without key")
		}
		s.v.SetDefault(f.Key, f.Default)
		if f.Env != "" {
			if err := s.v.BindEnv(f.Key, f.Env); err != nil {
				return errors.Wrapf(err, "bind env %s failed", f.Env)
			}
		}
		if f.Name == "" {
			continue
		}
		fs := cmd.PersistentFlags()
		if err := define(fs, f); err != nil {
			return errors.Wrapf(err, "define flag %s failed", f.Name)
		}
		if err := s.v.BindPFlag(f.Key, fs.Lookup(f.Name)); err != nil {
			return errors.Wrapf(err, "bind flag %s failed", f.Name)
		}
	}
	return nil
}

func define(fs *pflag.FlagSet, f *Flag) error {
	switch d := f.Default.(type) {
	case string:
		fs.String(f.Name, d, f.Usage)
	case int:
		fs.Int(f.Name, d, f.Usage)
	case bool:
		fs.Bool(f.Name, d, f.Usage)
	case []int:
		fs.IntSlice(f.Name, d, f.Usage)
	default:
		return errors.Errorf("unsupported default type %T", f.Default)
	}
	return nil
}

// Load reads the config file named by the config key.
// A missing file is only an error when it was asked for explicitly.
func (s *Settings) Load() error {
	path := s.v.GetString(ConfigFlag.Key)
	if path == "" {
		path = DefaultConfigFile
	}
	s.v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		s.v.SetConfigType("json")
	}
	if err := s.v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) && path == DefaultConfigFile {
			logger.WithField("path", path).Warn("config file not found, using flags and environment only")
			return nil
		}
		return errors.Wrapf(err, "read config %s failed", path)
	}
	return nil
}

// String returns the resolved value of key.
func (s *Settings) String(key string) string {
	return s.v.GetString(key)
}

// Int returns the resolved value of key.
func (s *Settings) Int(key string) int {
	return s.v.GetInt(key)
}

// Bool returns the resolved value of key.
func (s *Settings) Bool(key string) bool {
	return s.v.GetBool(key)
}

// Ints returns the resolved value of key.
func (s *Settings) Ints(key string) []int {
	return s.v.GetIntSlice(key)
}

// Current holds the settings of the running process.
var Current = NewSettings()

// RegisterCommandFlags registers flags on cmd using the process settings.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	return Current.Register(cmd, flags)
}

// ValidateEnv loads the config file into the process settings.
func ValidateEnv() error {
	return errors.Wrap(Current.Load(), "load config failed")
}

// LogLevel returns the configured log level.
func LogLevel() string {
	return Current.String(LogLevelFlag.Key)
}

// Package cfg implements functionality to configure an app.
//
// The configuration objects defined here need only be implemented once,
// but can be applied to multiple types.
//
// In order to add support for a new type, the configuration
// need only implement an ApplyX method.
package cfg

import (
	"wordfetch/internal"
	"wordfetch/internal/app/apps"
)

// AddrCfg is configuration for the server address.
type AddrCfg struct {
	ip   string
	port int
}

// NewAddrCfg creates a new AddrCfg from the given config.
func NewAddrCfg(ip string, port int) *AddrCfg {
	return &AddrCfg{
		ip:   ip,
		port: port,
	}
}

// ApplyClientApp applies the AddrCfg to a ClientApp.
func (cfg AddrCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.ServerIP = cfg.ip
	app.ServerPort = cfg.port
	return nil
}

// ApplyServerApp applies the AddrCfg to a ServerApp.
func (cfg AddrCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.ServerIP = cfg.ip
	app.ServerPort = cfg.port
	return nil
}

// ApplyBenchApp applies the AddrCfg to a BenchApp.
func (cfg AddrCfg) ApplyBenchApp(app *apps.BenchApp) error {
	app.ServerIP = cfg.ip
	app.ServerPort = cfg.port
	return nil
}

// SettingsCfg configures apps from resolved flags, environment and config file.
type SettingsCfg struct {
	s *internal.Settings
}

// NewSettingsCfg creates a new SettingsCfg reading from s.
func NewSettingsCfg(s *internal.Settings) *SettingsCfg {
	return &SettingsCfg{s: s}
}

// FromEnv creates a new SettingsCfg from the current process settings.
func FromEnv() *SettingsCfg {
	return NewSettingsCfg(internal.Current)
}

func (cfg SettingsCfg) addr() *AddrCfg {
	return NewAddrCfg(cfg.s.String(internal.ServerIPFlag.Key), cfg.s.Int(internal.ServerPortFlag.Key))
}

// ApplyClientApp applies the SettingsCfg to a ClientApp.
func (cfg SettingsCfg) ApplyClientApp(app *apps.ClientApp) error {
	if err := cfg.addr().ApplyClientApp(app); err != nil {
		return err
	}
	app.PageSize = cfg.s.Int(internal.PageSizeFlag.Key)
	app.Offset = cfg.s.Int(internal.OffsetFlag.Key)
	app.Quiet = cfg.s.Bool(internal.QuietFlag.Key)
	return nil
}

// ApplyServerApp applies the SettingsCfg to a ServerApp.
func (cfg SettingsCfg) ApplyServerApp(app *apps.ServerApp) error {
	if err := cfg.addr().ApplyServerApp(app); err != nil {
		return err
	}
	app.Filename = cfg.s.String(internal.FilenameFlag.Key)
	app.MaxConns = cfg.s.Int(internal.MaxConnsFlag.Key)
	app.HealthPort = cfg.s.Int(internal.HealthPortFlag.Key)
	return nil
}

// ApplyBenchApp applies the SettingsCfg to a BenchApp.
func (cfg SettingsCfg) ApplyBenchApp(app *apps.BenchApp) error {
	if err := cfg.addr().ApplyBenchApp(app); err != nil {
		return err
	}
	app.Offset = cfg.s.Int(internal.OffsetFlag.Key)
	app.PageSizes = cfg.s.Ints(internal.BenchPageSizesFlag.Key)
	app.Runs = cfg.s.Int(internal.BenchRunsFlag.Key)
	app.Out = cfg.s.String(internal.BenchOutFlag.Key)
	app.DB = cfg.s.String(internal.BenchDBFlag.Key)
	return nil
}

package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

// Flags are the command line overrides. Zero values mean "not given".
type Flags struct {
	Config    string
	Debug     bool
	CellSize  int64
	Strategy  string
	LogFile   string
	DrawScale float64
	Preview   bool
}

// RegisterFlags adds the global flags to app. The returned Flags are filled in
// when app parses its arguments.
func RegisterFlags(app *kingpin.Application) *Flags {
	f := &Flags{}
	app.Flag("config", "Path to config file.").Short('c').StringVar(&f.Config)
	app.Flag("debug", "Enable debug logging.").BoolVar(&f.Debug)
	app.Flag("cell-size", "Spatial grid cell size.").Int64Var(&f.CellSize)
	app.Flag("strategy", "Triangulation strategy (delaunay or earclip).").StringVar(&f.Strategy)
	app.Flag("log-file", "Also log to this file, with rotation.").StringVar(&f.LogFile)
	app.Flag("scale", "Pixels per unit when drawing.").Float64Var(&f.DrawScale)
	app.Flag("preview", "Print drawings to the terminal (iTerm only).").BoolVar(&f.Preview)
	return f
}

// Apply applies the flag overrides to the config.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.CellSize != 0 {
		cfg.Mesh.CellSize = f.CellSize
	}
	if f.Strategy != "" {
		cfg.Mesh.Strategy = f.Strategy
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.DrawScale != 0 {
		cfg.Debug.DrawScale = f.DrawScale
	}
	if f.Preview {
		cfg.Debug.Preview = true
	}
}

// Resolve loads the config file named by the flags (if any), applies the
// overrides and validates the result.
func (f *Flags) Resolve() (*Config, error) {
	cfg, err := Load(f.Config)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

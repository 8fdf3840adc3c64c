package config

import (
	"flag"
	"os"
)

// EnvConfig names a config file when -config is not given.
const EnvConfig = "PRISM_CONFIG"

// Flags are the command-line overrides. Only flags set on the command line
// are applied, so -watch=false can turn watching off again.
type Flags struct {
	fs *flag.FlagSet

	config     string
	debug      bool
	scene      string
	watch      bool
	windowed   bool
	fullscreen bool
	width      int
	height     int
	msaa       int
}

// RegisterFlags defines the viewer flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.config, "config", "", "config file (default $"+EnvConfig+", ./prism.yaml, then the user config dir)")
	fs.BoolVar(&f.debug, "debug", false, "debug logging and overlay")
	fs.StringVar(&f.scene, "scene", "", "scene description to load")
	fs.BoolVar(&f.watch, "watch", false, "reload the scene when its file changes")
	fs.BoolVar(&f.windowed, "windowed", false, "run in a window")
	fs.BoolVar(&f.fullscreen, "fullscreen", false, "run fullscreen")
	fs.IntVar(&f.width, "width", 0, "window width")
	fs.IntVar(&f.height, "height", 0, "window height")
	fs.IntVar(&f.msaa, "msaa", 0, "multisample count, 0 disables")
	return f
}

var cmdline = RegisterFlags(flag.CommandLine)

// ParseFlags parses the process command line. Call it early in main.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the config file requested by flag or environment.
func ConfigPath() string {
	return cmdline.configPath()
}

func (f *Flags) configPath() string {
	if f.config != "" {
		return f.config
	}
	return os.Getenv(EnvConfig)
}

func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
				cfg.Debug.ShowUI = true
			}
		case "scene":
			cfg.Scene.Path = f.scene
		case "watch":
			cfg.Scene.Watch = f.watch
		case "windowed":
			if f.windowed {
				cfg.Graphics.Fullscreen = false
			}
		case "fullscreen":
			cfg.Graphics.Fullscreen = f.fullscreen
		case "width":
			cfg.Graphics.Width = f.width
		case "height":
			cfg.Graphics.Height = f.height
		case "msaa":
			cfg.Graphics.MSAA = f.msaa
		}
	})
}

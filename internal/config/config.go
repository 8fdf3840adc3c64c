// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // samples, 0 disables
}

// CameraConfig holds defaults for cameras a scene does not fully describe.
type CameraConfig struct {
	FOVDegrees       float32 `yaml:"fov_degrees"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	MoveSpeed        float32 `yaml:"move_speed"`  // units per second
	MouseSpeed       float32 `yaml:"mouse_speed"` // radians per pixel
	OrthographicSize float32 `yaml:"ortho_width"`
}

// SceneConfig selects the scene to load.
type SceneConfig struct {
	Path     string `yaml:"path"`
	AssetDir string `yaml:"asset_dir"` // relative asset paths resolve against this
	Watch    bool   `yaml:"watch"`     // reload the scene when its file changes
}

// DebugConfig holds debug UI and capture settings.
type DebugConfig struct {
	ShowUI           bool   `yaml:"show_ui"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   4,
		},
		Camera: CameraConfig{
			FOVDegrees:       45,
			Near:             0.01,
			Far:              100,
			MoveSpeed:        3,
			MouseSpeed:       0.005,
			OrthographicSize: 10,
		},
		Scene: SceneConfig{
			Path:     "assets/scenes/demo.yaml",
			AssetDir: "assets",
		},
		Debug: DebugConfig{
			ShowUI:           true,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

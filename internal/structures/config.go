package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

// Storage is where the cloud service keeps per-user documents.
type Storage struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

// Local is the client-side store holding the widget set.
type Local struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type SyncConfig struct {
	RemoteURL string        `yaml:"remoteUrl"`
	User      string        `yaml:"user"`
	Debounce  time.Duration `yaml:"debounce" validate:"required|min:1"`
	Timeout   time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type DisplayConfig struct {
	FrameInterval time.Duration `yaml:"frameInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   Storage       `yaml:"storage"`
	Local     Local         `yaml:"local"`
	Sync      SyncConfig    `yaml:"sync"`
	Display   DisplayConfig `yaml:"display"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}

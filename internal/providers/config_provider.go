package providers

import (
	"chronos/internal/structures"
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"time"
)

const AppName = "Chronos"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8095)
	v.SetDefault("storage.filePath", "/tmp/chronos-cloud.dat")
	v.SetDefault("storage.saveInterval", 30*time.Second)
	v.SetDefault("local.filePath", "/tmp/chronos.db")
	v.SetDefault("sync.debounce", 2*time.Second)
	v.SetDefault("sync.timeout", 10*time.Second)
	v.SetDefault("display.frameInterval", 16*time.Millisecond)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "/tmp")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 16)
	v.SetDefault("cache.ttl", 60)
	v.SetDefault("metrics.enabled", false)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	v.BindEnv("logger.level", "CHRONOS_LOG_LEVEL")
	v.BindEnv("sync.user", "CHRONOS_USER")
	v.BindEnv("sync.remoteUrl", "CHRONOS_REMOTE_URL")
	v.BindEnv("storage.saveInterval", "CHRONOS_SAVE_INTERVAL")
	v.BindEnv("cache.enabled", "CHRONOS_CACHE_ENABLED")

	// Without a config file the defaults and the environment are enough.
	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	err := v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration. Notifications doubles as the
// permission flag: when false, the planner schedules nothing.
type Config struct {
	DBPath          string
	Notifications   bool
	SummaryHour     int
	WeatherCity     string
	SchedulerBuffer int
}

func Default(basePath string) Config {
	return Config{
		DBPath:          filepath.Join(basePath, "taskbeat.db"),
		Notifications:   true,
		SummaryHour:     20,
		WeatherCity:     "",
		SchedulerBuffer: 64,
	}
}

// ResolveBasePath picks the data directory: $TASKBEAT_HOME if set, otherwise
// ~/.taskbeat.
func ResolveBasePath() string {
	if custom := os.Getenv("TASKBEAT_HOME"); custom != "" {
		return custom
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskbeat"
	}
	return filepath.Join(home, ".taskbeat")
}

// Load reads .taskbeat.yaml from basePath via Viper, with TASKBEAT_* env
// overrides. A missing file yields the defaults.
func Load(basePath string) (Config, error) {
	cfg := Default(basePath)

	v := viper.New()
	v.SetConfigName(".taskbeat")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)
	v.SetEnvPrefix("TASKBEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("notifications.enabled", cfg.Notifications)
	v.SetDefault("notifications.summary_hour", cfg.SummaryHour)
	v.SetDefault("weather.city", cfg.WeatherCity)
	v.SetDefault("scheduler.buffer", cfg.SchedulerBuffer)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading .taskbeat.yaml: %w", err)
		}
	}

	cfg.DBPath = v.GetString("db_path")
	cfg.Notifications = v.GetBool("notifications.enabled")
	cfg.SummaryHour = v.GetInt("notifications.summary_hour")
	cfg.WeatherCity = v.GetString("weather.city")
	cfg.SchedulerBuffer = v.GetInt("scheduler.buffer")

	if cfg.SummaryHour < 0 || cfg.SummaryHour > 23 {
		cfg.SummaryHour = Default(basePath).SummaryHour
	}
	if cfg.SchedulerBuffer <= 0 {
		cfg.SchedulerBuffer = Default(basePath).SchedulerBuffer
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone lookups work on hosts without zoneinfo

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BRAIN_LLM_API_KEY.
const EnvPrefix = "BRAIN"

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type ThingsBoardConfig struct {
	URL            string        `mapstructure:"url"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	LoginTimeout   time.Duration `mapstructure:"login_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type LLMConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MQTTConfig struct {
	Broker      string        `mapstructure:"broker"`
	AccessToken string        `mapstructure:"access_token"`
	Topic       string        `mapstructure:"topic"`
	ClientID    string        `mapstructure:"client_id"`
	KeepAlive   time.Duration `mapstructure:"keep_alive"`
}

type SimulatorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Days     int           `mapstructure:"days"`
	PerDay   int           `mapstructure:"per_day"`
	Pause    time.Duration `mapstructure:"pause"`
}

// Config is the full application configuration shared by all binaries.
type Config struct {
	Port        string            `mapstructure:"port"`
	Timezone    string            `mapstructure:"timezone"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	ThingsBoard ThingsBoardConfig `mapstructure:"thingsboard"`
	LLM         LLMConfig         `mapstructure:"llm"`
	CORS        CORSConfig        `mapstructure:"cors"`
	MQTT        MQTTConfig        `mapstructure:"mqtt"`
	Simulator   SimulatorConfig   `mapstructure:"simulator"`

	location *time.Location
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5001")
	v.SetDefault("timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("db.path", "brain.db")

	v.SetDefault("thingsboard.url", "http://localhost:9090")
	v.SetDefault("thingsboard.username", "")
	v.SetDefault("thingsboard.password", "")
	v.SetDefault("thingsboard.login_timeout", 10*time.Second)
	v.SetDefault("thingsboard.query_timeout", 20*time.Second)
	v.SetDefault("thingsboard.request_timeout", 10*time.Second)

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "meta-llama/llama-4-scout-17b-16e-instruct")
	v.SetDefault("llm.language", "Traditional Chinese")
	v.SetDefault("llm.timeout", 20*time.Second)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.access_token", "")
	v.SetDefault("mqtt.topic", "v1/devices/me/telemetry")
	v.SetDefault("mqtt.client_id", "")
	v.SetDefault("mqtt.keep_alive", 60*time.Second)

	v.SetDefault("simulator.interval", 200*time.Second)
	v.SetDefault("simulator.days", 5)
	v.SetDefault("simulator.per_day", 10)
	v.SetDefault("simulator.pause", 100*time.Millisecond)
}

// Load reads config.yml from the first matching search path, then applies
// BRAIN_* environment overrides. A missing file is not an error.
func Load(searchPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	c.location = loc

	if c.ThingsBoard.URL == "" {
		return errors.New("thingsboard.url is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if c.Simulator.Interval <= 0 {
		return errors.New("simulator.interval must be positive")
	}
	if c.Simulator.Days < 0 || c.Simulator.PerDay < 0 {
		return errors.New("simulator.days and simulator.per_day must not be negative")
	}
	return nil
}

// Location is the timezone whose calendar days partition telemetry.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

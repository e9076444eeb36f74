// Package bridge relays newline-delimited JSON from a serial-connected
// moisture sensor to the ingestion endpoint over HTTP.
package bridge

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the bridge's configuration, read from bridge.yaml with
// BRIDGE_* environment overrides.
type Config struct {
	Serial struct {
		Port        string        `mapstructure:"port"`
		BaudRate    int           `mapstructure:"baud_rate"`
		ReadTimeout time.Duration `mapstructure:"read_timeout"`
	} `mapstructure:"serial"`

	API struct {
		BaseURL       string        `mapstructure:"base_url"`
		IngestPath    string        `mapstructure:"ingest_path"`
		Timeout       time.Duration `mapstructure:"timeout"`
		RetryAttempts int           `mapstructure:"retry_attempts"`
		RetryDelay    time.Duration `mapstructure:"retry_delay"`
	} `mapstructure:"api"`

	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
}

// LoadConfig reads bridge.yaml from the given directory. A missing file is
// reported but not fatal; defaults still apply and the caller decides.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigName("bridge")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvPrefix("bridge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("serial.baud_rate", 115200)
	v.SetDefault("serial.read_timeout", "1s")
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.ingest_path", "/sensor-data")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.retry_attempts", 3)
	v.SetDefault("api.retry_delay", "2s")
	v.SetDefault("reconnect_delay", "5s")

	readErr := v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, readErr
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the deployment-specific settings. The analytics API base
// and the export/download base are configured through the same mechanism
// even though they may point at different hosts.
type Config struct {
	APIBaseURL     string `mapstructure:"api_base_url"`
	ExportBaseURL  string `mapstructure:"export_base_url"`
	ListenAddr     string `mapstructure:"listen_addr"`
	RefreshEnabled bool   `mapstructure:"refresh_enabled"`
	RefreshSpec    string `mapstructure:"refresh_spec"`
}

// LoadConfig reads config.yaml from the given directory if present and
// applies FLOW_* environment overrides on top of the defaults, so the
// binary runs with no config file at all.
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)

	viper.SetDefault("api_base_url", "http://localhost:8000/api")
	viper.SetDefault("export_base_url", "http://localhost:8000/api")
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("refresh_enabled", true)
	// KRX closes 15:30 KST; investor flow figures settle well before 17:00.
	viper.SetDefault("refresh_spec", "0 17 * * *")

	viper.SetEnvPrefix("FLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %v", err)
	}

	return &cfg, nil
}

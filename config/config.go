package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
		APIKey   string        `mapstructure:"APIKey"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Routing struct {
		BaseURL     string `mapstructure:"baseURL"`
		RPS         int    `mapstructure:"rps"`
		Symmetric   bool   `mapstructure:"symmetric"`
		Concurrency int    `mapstructure:"concurrency"`
	} `mapstructure:"routing"`
	Planner struct {
		DefaultStart   string             `mapstructure:"defaultStart"`
		DefaultEnd     string             `mapstructure:"defaultEnd"`
		MinTravelMins  int                `mapstructure:"minTravelMins"`
		SpeedsKmh      map[string]float64 `mapstructure:"speedsKmh"`
		RateBase       map[string]float64 `mapstructure:"rateBase"`
		RatePerKm      map[string]float64 `mapstructure:"ratePerKm"`
		BandTransport  map[string]float64 `mapstructure:"bandTransport"`
		BandMaxFee     map[string]float64 `mapstructure:"bandMaxFee"`
		BandDaily      map[string]float64 `mapstructure:"bandDaily"`
		ActivityExtras map[string]float64 `mapstructure:"activityExtras"`
	} `mapstructure:"planner"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}

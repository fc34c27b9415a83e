package commands

import (
	"os"
	"time"
	"euromillions-backend/lib/acquire"
	"euromillions-backend/lib/configutil"
	"euromillions-backend/lib/scrapers/euromillionscom"
	"euromillions-backend/lib/scrapers/fdj"
	"euromillions-backend/lib/scrapers/uknational"
)

type SourceConfig struct {
	// nil means enabled
	Enabled        *bool  `json:"enabled"`
	BaseUrl        string `json:"base_url"`
	Priority       int    `json:"priority"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c SourceConfig) enabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c SourceConfig) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Config struct {
	Sources struct {
		UkNational      SourceConfig `json:"uk_national"`
		EuroMillionsCom SourceConfig `json:"euro_millions_com"`
		FdjFrance       SourceConfig `json:"fdj_france"`
	} `json:"sources"`
	// overall budget per source in the engine, seconds
	SourceTimeoutSeconds int `json:"source_timeout_seconds"`
	// fetch all sources at once instead of prioritized fallback
	Concurrent bool `json:"concurrent"`
}

// a missing config file just means defaults everywhere
func readConfig() (Config, error) {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	return config, err
}

func buildRegistry(config Config) acquire.Registry {
	var sources []acquire.Source

	if c := config.Sources.UkNational; c.enabled() {
		sources = append(sources, uknational.NewSource(uknational.Options{
			BaseUrl:  c.BaseUrl,
			Priority: c.Priority,
			Timeout:  c.timeout(),
		}))
	}
	if c := config.Sources.EuroMillionsCom; c.enabled() {
		sources = append(sources, euromillionscom.NewSource(euromillionscom.Options{
			BaseUrl:  c.BaseUrl,
			Priority: c.Priority,
			Timeout:  c.timeout(),
		}))
	}
	if c := config.Sources.FdjFrance; c.enabled() {
		sources = append(sources, fdj.NewSource(fdj.Options{
			BaseUrl:  c.BaseUrl,
			Priority: c.Priority,
			Timeout:  c.timeout(),
		}))
	}

	return acquire.NewRegistry(sources...)
}

func buildEngine(config Config) acquire.Engine {
	return acquire.NewEngine(buildRegistry(config), acquire.Options{
		SourceTimeout: time.Duration(config.SourceTimeoutSeconds) * time.Second,
		Concurrent:    config.Concurrent,
	})
}

// Package config holds the settings of the schoof command line tool.
//
// Settings are read from an optional JSON file over the defaults of [GetDefaultConfig]; command line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	fastjson "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/GottfriedHerold/Schoof/schoof"
)

var (
	ErrUnknownFormat    = errors.New("config: unknown output format")
	ErrInvalidWorkers   = errors.New("config: number of workers must be positive")
	ErrInvalidTimeout   = errors.New("config: invalid timeout")
	ErrInvalidLogLevel  = errors.New("config: invalid log level")
	ErrInvalidGenerator = errors.New("config: number of curves per prime must be positive")
)

type Config struct {
	Algorithm      string `json:"algorithm"`
	Timeout        string `json:"timeout"`
	Workers        int    `json:"workers"`
	InputFile      string `json:"inputFile"`
	OutputFile     string `json:"outputFile"`
	Format         string `json:"format"`
	LogLevel       string `json:"logLevel"`
	LogJSON        bool   `json:"logJson"`
	Stats          bool   `json:"stats"`
	CurvesPerPrime int    `json:"curvesPerPrime"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Algorithm:      DefaultAlgorithm,
		Timeout:        DefaultTimeout,
		Workers:        DefaultWorkers,
		Format:         DefaultFormat,
		LogLevel:       DefaultLogLevel,
		CurvesPerPrime: DefaultCurvesPerPrime,
	}
}

// ConfigFromFile reads the JSON file at configPath over the default configuration and validates the result.
func ConfigFromFile(configPath string) (*Config, error) {
	config, err := ReadConfigJson(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func ReadConfigJson(configPath string) (*Config, error) {
	config := GetDefaultConfig()
	log.Debugf("ConfigPath=%s", configPath)
	f, err := os.Open(configPath)
	if err != nil {
		log.WithError(err).Error("OpenConfigFile")
		return nil, err
	}
	defer f.Close()

	err = fastjson.NewDecoder(f).Decode(config)
	if err != nil {
		log.WithError(err).Error("DecodeConfig")
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return config, nil
}

// TimeoutDuration returns the per-curve timeout. Zero means no timeout.
// A bare "0" is accepted as well as anything [time.ParseDuration] understands.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: negative timeout %v", ErrInvalidTimeout, d)
	}
	return d, nil
}

// Validate checks that all settings have valid values.
func (c *Config) Validate() error {
	if _, err := schoof.LookupAlgorithm(c.Algorithm); err != nil {
		return err
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %v", ErrInvalidWorkers, c.Workers)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLogLevel, err)
	}
	if c.CurvesPerPrime < 1 {
		return fmt.Errorf("%w: %v", ErrInvalidGenerator, c.CurvesPerPrime)
	}
	return nil
}

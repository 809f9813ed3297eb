package config

import (
	"fmt"
	"os"
	"strings"

	"sales-report/src/helpers"
	"sales-report/src/models"

	"gopkg.in/yaml.v3"
)

// Defaults reproducing the original report.
var (
	DefaultCategories         = []string{"Ordinateur", "Smartphone", "Accessoire", "TV & Moniteur", "Machine à laver"}
	DefaultHighPricedProducts = []string{"Macbook Pro", "iPhone XR", "Samsung Galaxy n10", "Dell XPS 13"}
)

const (
	DefaultReferenceCity      = "San Francisco"
	DefaultLowCostThreshold   = 25.0
	DefaultTopCount           = 4
	DefaultBottomCount        = 5
	DefaultPreviewRows        = 4
	DefaultLoadTimeoutSeconds = 30
	DefaultCalendarMIC        = "xnys"
	DefaultRequestTimeout     = 10
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, helpers.NewConfigurationError(fmt.Sprintf("failed to read config file '%s'", configPath), err)
	}

	return Parse(data)
}

// -----------------------------------------------------------------------------

// Defaults returns the configuration used for every key a file leaves out.
func Defaults() models.MConfig {
	return models.MConfig{
		LogLevel: "INFO",
		Storage:  models.MStorageConfig{DBType: "csv"},
		Network:  models.MNetworkConfig{RequestTimeout: DefaultRequestTimeout},
		Data: models.MDataConfig{
			Categories:         append([]string(nil), DefaultCategories...),
			PreviewRows:        DefaultPreviewRows,
			LoadTimeoutSeconds: DefaultLoadTimeoutSeconds,
			CalendarMIC:        DefaultCalendarMIC,
		},
		Policy: models.MPolicyConfig{
			HighPricedProducts:    append([]string(nil), DefaultHighPricedProducts...),
			ReferenceCity:         DefaultReferenceCity,
			LowCostPriceThreshold: DefaultLowCostThreshold,
			TopCount:              DefaultTopCount,
			BottomCount:           DefaultBottomCount,
		},
	}
}

// -----------------------------------------------------------------------------

// Parse builds a validated Config from YAML bytes. The file is decoded over
// Defaults, so a key that is present wins even when its value is zero.
func Parse(data []byte) (*Config, error) {
	modelConfig := Defaults()
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, helpers.NewConfigurationError("failed to parse config from YAML", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// ApplyDefaults fills optional fields whose empty value is never meaningful,
// such as a blank string written explicitly in the file. Numeric fields are
// left alone: zero is a valid setting for each of them.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "csv"
	}

	d := &c.Data
	if len(d.Categories) == 0 {
		d.Categories = append([]string(nil), DefaultCategories...)
	}
	if d.CalendarMIC == "" {
		d.CalendarMIC = DefaultCalendarMIC
	}

	p := &c.Policy
	if p.ReferenceCity == "" {
		p.ReferenceCity = DefaultReferenceCity
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Servers
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535 || c.GrpcPort == c.Port) {
		return fmt.Errorf("invalid grpc port number: %d", c.GrpcPort)
	}

	// Storage
	switch c.Storage.DBType {
	case "csv":
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres", "mysql":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for %s", c.Storage.DBType)
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", c.Storage.DBType)
	}

	if c.Network.RequestTimeout < 0 {
		return fmt.Errorf("request timeout cannot be negative")
	}

	// Data
	if strings.TrimSpace(c.Data.CleanTable) == "" {
		return fmt.Errorf("clean table reference cannot be empty")
	}
	for i, cat := range c.Data.Categories {
		if strings.TrimSpace(cat) == "" {
			return fmt.Errorf("category %d cannot be empty", i)
		}
	}
	if len(c.Data.MonthLabels) != 0 && len(c.Data.MonthLabels) != 12 {
		return fmt.Errorf("month_labels must list 12 labels, got %d", len(c.Data.MonthLabels))
	}
	if c.Data.PreviewRows < 0 {
		return fmt.Errorf("preview rows cannot be negative")
	}
	if c.Data.RefreshIntervalSeconds < 0 {
		return fmt.Errorf("refresh interval cannot be negative")
	}
	if c.Data.LoadTimeoutSeconds < 0 {
		return fmt.Errorf("load timeout cannot be negative")
	}

	// Policy
	if c.Policy.ReferenceCity == "" {
		return fmt.Errorf("reference city cannot be empty")
	}
	if c.Policy.LowCostPriceThreshold < 0 {
		return fmt.Errorf("low cost price threshold cannot be negative")
	}
	if c.Policy.TopCount < 0 || c.Policy.BottomCount < 0 {
		return fmt.Errorf("top/bottom counts cannot be negative")
	}
	for i, p := range c.Policy.HighPricedProducts {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("high priced product %d cannot be empty", i)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}

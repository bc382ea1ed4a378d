package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Salesforce SalesforceConfig `yaml:"salesforce" mapstructure:"salesforce"`
	ICP        ICPConfig        `yaml:"icp" mapstructure:"icp"`
	Events     EventsConfig     `yaml:"events" mapstructure:"events"`
	Extract    ExtractConfig    `yaml:"extract" mapstructure:"extract"`
	Outreach   OutreachConfig   `yaml:"outreach" mapstructure:"outreach"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SalesforceConfig holds Salesforce credentials for the optional CRM push.
// The push is skipped entirely when Domain is empty.
type SalesforceConfig struct {
	Domain         string `yaml:"domain" mapstructure:"domain"`
	ConsumerKey    string `yaml:"consumer_key" mapstructure:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret" mapstructure:"consumer_secret"`
}

// ICPConfig describes the ideal customer profile the rule scorer matches
// against.
type ICPConfig struct {
	TargetIndustries  []string `yaml:"target_industries" mapstructure:"target_industries"`
	SecondaryKeywords []string `yaml:"secondary_keywords" mapstructure:"secondary_keywords"`
	TechnologyFocus   []string `yaml:"technology_focus" mapstructure:"technology_focus"`
	ActivitySignals   []string `yaml:"activity_signals" mapstructure:"activity_signals"`
}

// EventsConfig configures event discovery and relevance scoring.
type EventsConfig struct {
	GraphicsKeywords   []string `yaml:"graphics_keywords" mapstructure:"graphics_keywords"`
	ImportanceKeywords []string `yaml:"importance_keywords" mapstructure:"importance_keywords"`
	MajorMarkets       []string `yaml:"major_markets" mapstructure:"major_markets"`
	ScrapeTimeoutSecs  int      `yaml:"scrape_timeout_secs" mapstructure:"scrape_timeout_secs"`
}

// ExtractConfig configures company mention extraction.
type ExtractConfig struct {
	MaxPerEvent       int `yaml:"max_per_event" mapstructure:"max_per_event"`
	SeedCapPerEvent   int `yaml:"seed_cap_per_event" mapstructure:"seed_cap_per_event"`
	ScrapeTimeoutSecs int `yaml:"scrape_timeout_secs" mapstructure:"scrape_timeout_secs"`
}

// OutreachConfig configures outreach generation pacing and validation.
type OutreachConfig struct {
	DelaySecs int `yaml:"delay_secs" mapstructure:"delay_secs"`
	MinLength int `yaml:"min_length" mapstructure:"min_length"`
	MaxLength int `yaml:"max_length" mapstructure:"max_length"`
	FollowUps int `yaml:"follow_ups" mapstructure:"follow_ups"`
}

// PipelineConfig configures the lead generation run.
type PipelineConfig struct {
	MaxCompanies int  `yaml:"max_companies" mapstructure:"max_companies"`
	PushToCRM    bool `yaml:"push_to_crm" mapstructure:"push_to_crm"`
	EnrichScrape bool `yaml:"enrich_scrape" mapstructure:"enrich_scrape"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	Debug       bool     `yaml:"debug" mapstructure:"debug"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "leadgen.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("icp.target_industries", []string{
		"Digital Signage", "Large Format Printing", "Visual Communications",
		"Sign Manufacturing", "Graphics and Printing",
	})
	v.SetDefault("icp.secondary_keywords", []string{
		"graphics", "printing", "visual", "display", "sign",
	})
	v.SetDefault("icp.technology_focus", []string{
		"Digital Printing", "LED Displays", "Wide Format", "Vehicle Wraps", "Software",
	})
	v.SetDefault("icp.activity_signals", []string{
		"launch", "new", "expand", "partnership", "investment", "growth",
	})
	v.SetDefault("events.graphics_keywords", []string{
		"sign", "signage", "graphics", "printing", "wrap", "vinyl",
		"digital", "wide format", "display", "advertising", "visual",
	})
	v.SetDefault("events.importance_keywords", []string{
		"expo", "international", "global", "summit", "united",
	})
	v.SetDefault("events.major_markets", []string{
		"las vegas", "chicago", "atlanta", "miami", "new york",
	})
	v.SetDefault("events.scrape_timeout_secs", 15)
	v.SetDefault("extract.max_per_event", 25)
	v.SetDefault("extract.seed_cap_per_event", 10)
	v.SetDefault("extract.scrape_timeout_secs", 15)
	v.SetDefault("outreach.delay_secs", 1)
	v.SetDefault("outreach.min_length", 50)
	v.SetDefault("outreach.max_length", 2000)
	v.SetDefault("outreach.follow_ups", 2)
	v.SetDefault("pipeline.max_companies", 50)
	v.SetDefault("pipeline.push_to_crm", false)
	v.SetDefault("pipeline.enrich_scrape", false)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

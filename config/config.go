package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the research assistant
type Config struct {
	General    GeneralConfig    `mapstructure:"general"`
	Server     ServerConfig     `mapstructure:"server"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Search     SearchConfig     `mapstructure:"search"`
	Extract    ExtractConfig    `mapstructure:"extract"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	Compose    ComposeConfig    `mapstructure:"compose"`
	Session    SessionConfig    `mapstructure:"session"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ProvidersConfig contains API credentials for external providers
type ProvidersConfig struct {
	Tavily      TavilyConfig      `mapstructure:"tavily"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
	Brave       KeyConfig         `mapstructure:"brave"`
	Serper      KeyConfig         `mapstructure:"serper"`
}

type TavilyConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type HuggingFaceConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type KeyConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// SearchConfig selects and tunes the web search provider
type SearchConfig struct {
	Provider   string `mapstructure:"provider"` // tavily, brave, serper
	MaxResults int    `mapstructure:"max_results"`
	Topic      string `mapstructure:"topic"`
}

// ExtractConfig selects and tunes the page extraction provider
type ExtractConfig struct {
	Provider      string `mapstructure:"provider"` // tavily, readability
	Depth         string `mapstructure:"depth"`
	IncludeImages bool   `mapstructure:"include_images"`
	TimeoutMS     int    `mapstructure:"timeout_ms"`
	MaxChars      int    `mapstructure:"max_chars"`
}

// SummarizerConfig tunes the summarization endpoint client
type SummarizerConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	MaxLength int           `mapstructure:"max_length"`
	MinLength int           `mapstructure:"min_length"`
	DoSample  bool          `mapstructure:"do_sample"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ComposeConfig holds per-mode context composition limits
type ComposeConfig struct {
	SearchMaxChars  int `mapstructure:"search_max_chars"`  // 0 = unbounded
	ExtractMaxChars int `mapstructure:"extract_max_chars"` // hard cut + "..." marker
	MemoryTurns     int `mapstructure:"memory_turns"`
}

// SessionConfig controls the in-memory session store
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

func (c SummarizerConfig) Validate() error {
	if c.MaxLength <= 0 || c.MinLength < 0 || c.MinLength > c.MaxLength {
		return fmt.Errorf("summarizer: min_length/max_length out of range (%d/%d)", c.MinLength, c.MaxLength)
	}
	return nil
}

func (c ComposeConfig) Validate() error {
	if c.ExtractMaxChars < 0 || c.SearchMaxChars < 0 {
		return fmt.Errorf("compose: max chars must be >= 0")
	}
	if c.MemoryTurns < 0 {
		return fmt.Errorf("compose: memory_turns must be >= 0")
	}
	return nil
}

func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("search.provider", "tavily")
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.topic", "general")
	viper.SetDefault("extract.provider", "tavily")
	viper.SetDefault("extract.depth", "advanced")
	viper.SetDefault("extract.include_images", false)
	viper.SetDefault("extract.timeout_ms", 15000)
	viper.SetDefault("extract.max_chars", 20000)
	viper.SetDefault("summarizer.endpoint", "https://api-inference.huggingface.co/models/facebook/bart-large-cnn")
	viper.SetDefault("summarizer.max_length", 500)
	viper.SetDefault("summarizer.min_length", 100)
	viper.SetDefault("summarizer.do_sample", false)
	viper.SetDefault("summarizer.timeout", 30*time.Second)
	viper.SetDefault("compose.search_max_chars", 0)
	viper.SetDefault("compose.extract_max_chars", 1000)
	viper.SetDefault("compose.memory_turns", 2)
	viper.SetDefault("session.ttl", 48*time.Hour)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("FERRET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// provider keys keep their conventional env names too
	_ = viper.BindEnv("providers.tavily.api_key", "TAVILY_API_KEY", "FERRET_PROVIDERS_TAVILY_API_KEY")
	_ = viper.BindEnv("providers.huggingface.api_key", "HUGGINGFACE_API_KEY", "FERRET_PROVIDERS_HUGGINGFACE_API_KEY")
	_ = viper.BindEnv("providers.brave.api_key", "BRAVE_API_KEY", "FERRET_PROVIDERS_BRAVE_API_KEY")
	_ = viper.BindEnv("providers.serper.api_key", "SERPER_API_KEY", "FERRET_PROVIDERS_SERPER_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// defaults + env are enough to run; only a broken file is fatal
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Summarizer.Validate(); err != nil {
		panic(err)
	}
	if err := config.Compose.Validate(); err != nil {
		panic(err)
	}

	return &config
}

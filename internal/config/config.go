package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	Cron        CronConfig        `mapstructure:"cron"`
	ProductHunt ProductHuntConfig `mapstructure:"producthunt"`
	Scraper     ScraperConfig     `mapstructure:"scraper"`
	Classifier  ClassifierConfig  `mapstructure:"classifier"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string   `mapstructure:"level"`
	Encoding          string   `mapstructure:"encoding"`
	Development       bool     `mapstructure:"development"`
	Sampling          bool     `mapstructure:"sampling"`
	DisableCaller     bool     `mapstructure:"disable_caller"`
	DisableStacktrace bool     `mapstructure:"disable_stacktrace"`
	OutputPaths       []string `mapstructure:"output_paths"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	SyncAll string `mapstructure:"sync_all"`
}

type ProductHuntConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Token    string        `mapstructure:"token"`
	PageSize int           `mapstructure:"page_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type ScraperConfig struct {
	Targets    []ScrapeTarget `mapstructure:"targets"`
	UserAgent  string         `mapstructure:"user_agent"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	MaxPerPage int            `mapstructure:"max_per_page"`
}

type ScrapeTarget struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

type ClassifierConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

type OpenAIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("log.output_paths", []string{"stdout"})
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.sync_all", "@every 6h")
	v.SetDefault("producthunt.base_url", "https://api.producthunt.com/v2/api/graphql")
	// secrets default empty so env-only mode still binds TH_ vars
	v.SetDefault("producthunt.token", "")
	v.SetDefault("producthunt.page_size", 10)
	v.SetDefault("producthunt.timeout", "15s")
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	v.SetDefault("scraper.timeout", "20s")
	v.SetDefault("scraper.max_per_page", 10)
	v.SetDefault("classifier.keywords", []string{
		"ai", "artificial intelligence", "machine learning", "ml",
		"llm", "gpt", "chatbot", "nlp", "neural", "deep learning",
		"automation", "generative", "computer vision", "copilot",
	})
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", "60s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

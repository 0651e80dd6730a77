package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("http_addr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.ProductHunt.BaseURL != "https://api.producthunt.com/v2/api/graphql" {
		t.Fatalf("producthunt base_url = %q", cfg.ProductHunt.BaseURL)
	}
	if cfg.ProductHunt.PageSize != 10 {
		t.Fatalf("page_size = %d", cfg.ProductHunt.PageSize)
	}
	if cfg.Cron.SyncAll != "@every 6h" {
		t.Fatalf("cron.sync_all = %q", cfg.Cron.SyncAll)
	}
	if len(cfg.Classifier.Keywords) == 0 {
		t.Fatalf("expected default classifier keywords")
	}
	if cfg.OpenAI.Timeout != 60*time.Second {
		t.Fatalf("openai timeout = %v", cfg.OpenAI.Timeout)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  env: prod
server:
  http_addr: ":9090"
producthunt:
  token: test-token
  page_size: 25
scraper:
  targets:
    - name: "AI Tools Directory"
      url: "https://aitools.example/tools"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != "prod" {
		t.Fatalf("env = %q", cfg.App.Env)
	}
	if cfg.Server.HTTPAddr != ":9090" {
		t.Fatalf("http_addr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.ProductHunt.Token != "test-token" || cfg.ProductHunt.PageSize != 25 {
		t.Fatalf("producthunt = %+v", cfg.ProductHunt)
	}
	if len(cfg.Scraper.Targets) != 1 || cfg.Scraper.Targets[0].Name != "AI Tools Directory" {
		t.Fatalf("targets = %+v", cfg.Scraper.Targets)
	}
	// file omits log settings, defaults still apply
	if cfg.Log.Level != "info" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadEnvOnlySecrets(t *testing.T) {
	t.Setenv("TH_PRODUCTHUNT_TOKEN", "ph-secret")
	t.Setenv("TH_OPENAI_API_KEY", "sk-secret")
	cfg, err := Load("", true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProductHunt.Token != "ph-secret" {
		t.Fatalf("producthunt token = %q, want env value", cfg.ProductHunt.Token)
	}
	if cfg.OpenAI.APIKey != "sk-secret" {
		t.Fatalf("openai api key = %q, want env value", cfg.OpenAI.APIKey)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TH_SERVER_HTTP_ADDR", ":7070")
	cfg, err := Load("", true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":7070" {
		t.Fatalf("http_addr = %q, want env override", cfg.Server.HTTPAddr)
	}
}

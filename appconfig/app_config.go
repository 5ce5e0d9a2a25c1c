package appconfig

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
)

const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	LLMProvider string `env:"LLM-PROVIDER" ini:"llm_provider"`
	MiniModel   string `env:"MINI-MODEL" ini:"mini_model"`
	BigModel    string `env:"BIG-MODEL" ini:"big_model"`

	RegistryURL            string `env:"REGISTRY-URL" ini:"registry_url"`
	RegistryPageSize       int    `env:"REGISTRY-PAGE-SIZE" ini:"registry_page_size"`
	RegistryTimeoutSeconds int    `env:"REGISTRY-TIMEOUT-SECONDS" ini:"registry_timeout_seconds"`

	MongoURI           string `env:"MONGO-URI" ini:"mongo_uri"`
	SessionStore       string `env:"SESSION-STORE" ini:"session_store"`
	SessionDSN         string `env:"SESSION-DSN" ini:"session_dsn"`
	MongoDatabase      string `env:"MONGO-DATABASE" ini:"mongo_database"`
	MaxSessionMessages int    `env:"MAX-SESSION-MESSAGES" ini:"max_session_messages"`
}

// Load reads the ini file, applies env overrides and fills unset keys with defaults.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := config.LoadConfig(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from the environment variable named by their env tag.
// Unset or empty variables leave the field alone.
func (c *AppConfig) ApplyEnv() error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			field.SetInt(int64(n))
		}
	}
	return nil
}

func (c *AppConfig) ApplyDefaults() {
	if c.LLMProvider == "" {
		c.LLMProvider = "openai"
	}
	if c.MiniModel == "" {
		c.MiniModel = "gpt-4.1-mini"
	}
	if c.BigModel == "" {
		c.BigModel = "gpt-4.1"
	}
	if c.RegistryURL == "" {
		c.RegistryURL = "https://clinicaltrials.gov/api/v2"
	}
	if c.RegistryPageSize <= 0 {
		c.RegistryPageSize = 30
	}
	if c.RegistryTimeoutSeconds <= 0 {
		c.RegistryTimeoutSeconds = 30
	}
	if c.SessionStore == "" {
		c.SessionStore = StoreMemory
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "trials_agent"
	}
	if c.MaxSessionMessages <= 0 {
		c.MaxSessionMessages = 10
	}
}

func (c *AppConfig) RegistryTimeout() time.Duration {
	return time.Duration(c.RegistryTimeoutSeconds) * time.Second
}

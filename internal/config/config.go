// config предоставляет структуру конфигурации flra-notifier
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env        string           `yaml:"env"        env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	DB         DBConfig         `yaml:"db"`
	Fetcher    FetcherConfig    `yaml:"fetcher"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Entities   EntitiesConfig   `yaml:"entities"`
	Notifier   NotifierConfig   `yaml:"notifier"`
	Secrets    SecretsConfig    `yaml:"secrets"`
	Limits     LimitsConfig     `yaml:"limits"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера (вебхук навыка, /metrics).
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// FetcherConfig — параметры периодического опроса RSS-лент FLRA.
type FetcherConfig struct {
	// Список URL RSS-источников. Можно задать через ENV RSS_SOURCES, разделитель — запятая.
	Sources  []string      `yaml:"sources"  env:"RSS_SOURCES"    env-separator:","`
	Interval time.Duration `yaml:"interval" env:"FETCH_INTERVAL" env-default:"30m"`
}

// SummarizerConfig — параметры LLM-суммаризации.
type SummarizerConfig struct {
	Model   string        `yaml:"model"   env:"SUMMARIZER_MODEL"   env-default:"gpt-4o-mini"`
	Timeout time.Duration `yaml:"timeout" env:"SUMMARIZER_TIMEOUT" env-default:"30s"`
}

// EntitiesConfig — параметры извлечения именованных сущностей.
type EntitiesConfig struct {
	// Enabled — выключатель NER-вызова; при false сущности не извлекаются.
	Enabled bool   `yaml:"enabled" env:"ENTITIES_ENABLED" env-default:"false"`
	Model   string `yaml:"model"   env:"ENTITIES_MODEL"   env-default:"gpt-4o-mini"`
}

// NotifierConfig — параметры Alexa Proactive Events API.
type NotifierConfig struct {
	BaseURL string        `yaml:"base_url" env:"ALEXA_API_BASE_URL" env-default:"https://api.amazonalexa.com"`
	Stage   string        `yaml:"stage"    env:"ALEXA_API_STAGE"    env-default:"development"`
	Timeout time.Duration `yaml:"timeout"  env:"NOTIFIER_TIMEOUT"   env-default:"10s"`
}

// SecretsConfig — источник секретов (JSON-блоб с ключом LLM и токеном Alexa).
type SecretsConfig struct {
	File string `yaml:"file" env:"SECRETS_FILE"`
}

// LimitsConfig — серверные лимиты на выдачу.
type LimitsConfig struct {
	// Latest — сколько последних элементов озвучивает навык.
	Latest int `yaml:"latest" env:"LATEST_LIMIT" env-default:"3"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
// fetcher.sources не обязателен: ленты нужны только ingest-service,
// и их отсутствие он проверяет сам на старте.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if len(c.Fetcher.Sources) > 0 && c.Fetcher.Interval < time.Minute {
		return fmt.Errorf("fetcher.interval must be at least 1m")
	}
	if c.Limits.Latest <= 0 {
		return fmt.Errorf("limits.latest must be > 0")
	}
	return nil
}

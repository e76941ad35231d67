package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/inventory-service/pkg/kafka"
	"github.com/Astemirdum/inventory-service/pkg/logger"
	"github.com/Astemirdum/inventory-service/pkg/postgres"
	"github.com/Astemirdum/inventory-service/pkg/tracing"
	jsoniter "github.com/json-iterator/go"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"INVENTORY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"INVENTORY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

// Database selects the store by driver: pgx and postgres dial Postgres,
// sqlite3 opens SQLitePath.
type Database struct {
	postgres.DB
	SQLitePath string `yaml:"sqlitePath" envconfig:"DB_SQLITE_PATH" default:"inventory.db"`
}

type Config struct {
	Server   HTTPServer `yaml:"server"`
	Database Database   `yaml:"db"`
	Kafka    kafka.Config
	Tracing  tracing.Config
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		config, err := load(ops...)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func load(ops ...Option) (Config, error) {
	var config Config
	for _, op := range ops {
		op(&config)
	}
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func printConfig(cfg Config) {
	jscfg, _ := jsoniter.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

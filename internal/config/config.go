package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ChangeConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	ChangeDB     `yaml:"change_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	RedisCache   `yaml:"redis-cache"`
	ShopifyAPI   `yaml:"shopify-api"`
	Autopilot    `yaml:"autopilot"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type ChangeDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host              string `yaml:"host"`
	Port              string `yaml:"port"`
	ChangeEventsTopic string `yaml:"change_events_topic" env-default:"change-events"`
	MeasurementsTopic string `yaml:"measurements_topic" env-default:"impact-measurements"`
	MeasurementsGroup string `yaml:"measurements_group" env-default:"change-service"`
}

type RedisCache struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	SummaryTTL time.Duration `yaml:"summary_ttl" env-default:"30s"`
}

type ShopifyAPI struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Autopilot struct {
	TickInterval  time.Duration `yaml:"tick_interval" env-default:"15s"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1m"`
	PendingTTL    time.Duration `yaml:"pending_ttl" env-default:"72h"`
	BatchSize     int           `yaml:"batch_size" env-default:"20"`
}

func MustLoad() *ChangeConfig {

	// Processing env config variable and file
	configPath := os.Getenv("CHANGE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("CHANGE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg ChangeConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}

package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Table    string `mapstructure:"table"`
}

type CloudStorageConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	Prefix     string `mapstructure:"prefix"`
}

type Config struct {
	InputFile  string `mapstructure:"input_file"`
	OutputFile string `mapstructure:"output_file"`
	MapFile    string `mapstructure:"map_file"`

	StartDate        time.Time `mapstructure:"start_date"`
	MaxPairDistance  float64   `mapstructure:"max_pair_distance"`
	MaxGroupSize     int       `mapstructure:"max_group_size"`
	PreferHardAccess bool      `mapstructure:"prefer_hard_access"`
	DefaultTeam      string    `mapstructure:"default_team"`
	OutputDelimiter  string    `mapstructure:"output_delimiter"`
	Verbose          bool      `mapstructure:"verbose"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`

	PostgresEnabled bool           `mapstructure:"postgres_enabled"`
	Database        DatabaseConfig `mapstructure:"database"`

	ParquetEnabled bool   `mapstructure:"parquet_enabled"`
	ParquetFile    string `mapstructure:"parquet_file"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper. Flag
// bindings are installed by the cmd package before this runs, so flag
// values override file and environment values.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	viper.SetDefault("start_date", time.Now().Format(DateLayout))
	viper.SetDefault("max_pair_distance", 5.0)
	viper.SetDefault("max_group_size", 2)
	viper.SetDefault("prefer_hard_access", true)
	viper.SetDefault("default_team", "1")
	viper.SetDefault("output_delimiter", ";")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("kafka_topic", "site_visits")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.table", "site_visits")

	if cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(DateLayout),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) validate() error {
	if cfg.MaxPairDistance <= 0 {
		return fmt.Errorf("max_pair_distance must be positive, got %v", cfg.MaxPairDistance)
	}
	if cfg.MaxGroupSize < 1 {
		return fmt.Errorf("max_group_size must be at least 1, got %d", cfg.MaxGroupSize)
	}
	if len(cfg.OutputDelimiter) != 1 {
		return fmt.Errorf("output_delimiter must be a single character, got %q", cfg.OutputDelimiter)
	}
	return nil
}

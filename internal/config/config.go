// Package config assembles runtime settings from defaults, an optional YAML
// file, an optional .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	alertlog "predixaai-alerts"
	"predixaai-alerts/internal/model"
)

type Config struct {
	Port     string                    `yaml:"port"`
	LogLevel string                    `yaml:"logLevel"`
	Models   ModelConfig               `yaml:"models"`
	AlertLog alertlog.ConnectionConfig `yaml:"alertLog"`
	NATS     NATSConfig                `yaml:"nats"`
	MQTT     MQTTConfig                `yaml:"mqtt"`
}

type ModelConfig struct {
	Dir         string `yaml:"dir"`
	model.Files `yaml:",inline"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"clientId"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
}

var ErrMissingKey = errors.New("ENCRYPTION_KEY is required to decrypt ALERT_DB_PASSWORD_ENC")

func Default() Config {
	return Config{
		Port:     "8080",
		LogLevel: "info",
		Models:   ModelConfig{Dir: ".", Files: model.DefaultFiles()},
		AlertLog: alertlog.ConnectionConfig{
			Type:  "sqlite",
			Path:  alertlog.DefaultSQLitePath,
			Table: alertlog.DefaultTable,
		},
		NATS: NATSConfig{Subject: "alert.raised"},
		MQTT: MQTTConfig{ClientID: "pdm", Topic: "sensors/+/reading"},
	}
}

func Load() (Config, error) {
	envFile := getenv("PDM_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}
	cfg := Default()
	if path := os.Getenv("PDM_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := resolvePassword(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)

	cfg.Models.Dir = getenv("PDM_MODEL_DIR", cfg.Models.Dir)
	cfg.Models.Scaler = getenv("PDM_SCALER_FILE", cfg.Models.Scaler)
	cfg.Models.Classifier = getenv("PDM_CLASSIFIER_FILE", cfg.Models.Classifier)
	cfg.Models.Regressor = getenv("PDM_REGRESSOR_FILE", cfg.Models.Regressor)

	cfg.AlertLog.Type = getenv("ALERT_DB_TYPE", cfg.AlertLog.Type)
	cfg.AlertLog.Path = getenv("ALERT_DB_PATH", cfg.AlertLog.Path)
	cfg.AlertLog.Host = getenv("ALERT_DB_HOST", cfg.AlertLog.Host)
	cfg.AlertLog.Port = getenvInt("ALERT_DB_PORT", cfg.AlertLog.Port)
	cfg.AlertLog.User = getenv("ALERT_DB_USER", cfg.AlertLog.User)
	cfg.AlertLog.Password = getenv("ALERT_DB_PASSWORD", cfg.AlertLog.Password)
	cfg.AlertLog.Database = getenv("ALERT_DB_NAME", cfg.AlertLog.Database)
	cfg.AlertLog.SSLMode = getenv("ALERT_DB_SSLMODE", cfg.AlertLog.SSLMode)
	cfg.AlertLog.Table = getenv("ALERT_TABLE", cfg.AlertLog.Table)

	cfg.NATS.URL = getenv("NATS_URL", cfg.NATS.URL)
	cfg.NATS.Subject = getenv("NATS_SUBJECT", cfg.NATS.Subject)

	cfg.MQTT.Broker = getenv("MQTT_BROKER", cfg.MQTT.Broker)
	cfg.MQTT.ClientID = getenv("MQTT_CLIENT_ID", cfg.MQTT.ClientID)
	cfg.MQTT.Username = getenv("MQTT_USERNAME", cfg.MQTT.Username)
	cfg.MQTT.Password = getenv("MQTT_PASSWORD", cfg.MQTT.Password)
	cfg.MQTT.Topic = getenv("MQTT_TOPIC", cfg.MQTT.Topic)
}

// resolvePassword replaces the alert store password with the decrypted
// ALERT_DB_PASSWORD_ENC when one is set.
func resolvePassword(cfg *Config) error {
	enc := os.Getenv("ALERT_DB_PASSWORD_ENC")
	if enc == "" {
		return nil
	}
	key := os.Getenv("ENCRYPTION_KEY")
	if key == "" {
		return ErrMissingKey
	}
	decryptor, err := newAesGcmEncryptor([]byte(key))
	if err != nil {
		return err
	}
	password, err := decryptor.Decrypt(enc)
	if err != nil {
		return fmt.Errorf("decrypt alert db password: %w", err)
	}
	cfg.AlertLog.Password = password
	return nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getenv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getenvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(val); err == nil {
		return parsed
	}
	return fallback
}

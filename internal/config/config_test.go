package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef"

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("PDM_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"PDM_CONFIG", "PORT", "LOG_LEVEL", "PDM_MODEL_DIR", "ALERT_DB_TYPE", "ALERT_DB_PORT", "ALERT_DB_PASSWORD", "ALERT_DB_PASSWORD_ENC", "ENCRYPTION_KEY", "ALERT_TABLE", "NATS_URL", "MQTT_BROKER", "MQTT_TOPIC"} {
		t.Setenv(key, "")
	}
}

func encrypt(t *testing.T, key, plain string) string {
	t.Helper()
	e, err := newAesGcmEncryptor([]byte(key))
	if err != nil {
		t.Fatalf("encryptor: %v", err)
	}
	gcm, err := e.gcm()
	if err != nil {
		t.Fatalf("gcm: %v", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		t.Fatalf("nonce: %v", err)
	}
	return base64.StdEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(plain), nil))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AlertLog.Type != "sqlite" || cfg.AlertLog.Path != "predictions.db" || cfg.AlertLog.Table != "predictions" {
		t.Fatalf("unexpected alert log defaults: %+v", cfg.AlertLog)
	}
	if cfg.Models.Dir != "." || cfg.Models.Scaler != "scaler.json" || cfg.Models.Classifier != "clf_model.json" || cfg.Models.Regressor != "reg_model.json" {
		t.Fatalf("unexpected model defaults: %+v", cfg.Models)
	}
	if cfg.NATS.URL != "" || cfg.MQTT.Broker != "" {
		t.Fatalf("optional transports must be off by default")
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "pdm.yaml")
	content := `
port: "9000"
models:
  dir: /models
  classifier: clf.yaml
alertLog:
  type: postgres
  host: db
  port: 5433
  table: alerts
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PDM_CONFIG", path)
	t.Setenv("ALERT_DB_PORT", "6000")
	t.Setenv("ALERT_TABLE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.Models.Dir != "/models" || cfg.Models.Classifier != "clf.yaml" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Models.Scaler != "scaler.json" {
		t.Fatalf("defaults lost for fields absent from the file: %+v", cfg.Models)
	}
	if cfg.AlertLog.Type != "postgres" || cfg.AlertLog.Host != "db" || cfg.AlertLog.Table != "alerts" {
		t.Fatalf("unexpected alert log: %+v", cfg.AlertLog)
	}
	if cfg.AlertLog.Port != 6000 {
		t.Fatalf("environment must override the file, got port %d", cfg.AlertLog.Port)
	}
}

func TestLoadBadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "pdm.yaml")
	if err := os.WriteFile(path, []byte("port: [1,"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PDM_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("MQTT_CLIENT_ID=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PDM_ENV_FILE", path)
	_ = os.Unsetenv("MQTT_CLIENT_ID")
	t.Cleanup(func() { _ = os.Unsetenv("MQTT_CLIENT_ID") })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MQTT.ClientID != "from-dotenv" {
		t.Fatalf("expected .env value, got %q", cfg.MQTT.ClientID)
	}
}

func TestEncryptedPassword(t *testing.T) {
	isolate(t)
	t.Setenv("ALERT_DB_PASSWORD", "plain")
	t.Setenv("ALERT_DB_PASSWORD_ENC", encrypt(t, testKey, "s3cret"))
	t.Setenv("ENCRYPTION_KEY", testKey)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AlertLog.Password != "s3cret" {
		t.Fatalf("unexpected password: %q", cfg.AlertLog.Password)
	}
}

func TestEncryptedPasswordErrors(t *testing.T) {
	tests := []struct {
		name string
		enc  string
		key  string
		is   error
	}{
		{name: "missing key", enc: "abc", key: "", is: ErrMissingKey},
		{name: "short key", enc: "abc", key: "short"},
		{name: "not base64", enc: "%%%", key: testKey},
		{name: "wrong key", enc: "", key: testKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			enc := tt.enc
			if enc == "" {
				enc = encrypt(t, "ffffffffffffffffffffffffffffffff", "s3cret")
			}
			t.Setenv("ALERT_DB_PASSWORD_ENC", enc)
			t.Setenv("ENCRYPTION_KEY", tt.key)
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: "", want: slog.LevelInfo},
		{in: "loud", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (Config{LogLevel: tt.in}).SlogLevel(); got != tt.want {
			t.Fatalf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

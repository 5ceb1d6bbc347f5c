package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"predixaai-alerts/internal/model"
	"predixaai-alerts/internal/pipeline"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestReadingRequestContract(t *testing.T) {
	payload := []byte(`{"values": [360, 85, 90, 3.5, 45, 80]}`)
	var req readingRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		t.Fatalf("failed to unmarshal readingRequest: %v", err)
	}
	if len(req.Values) != 6 || req.Values[3] != 3.5 {
		t.Fatalf("unexpected values: %v", req.Values)
	}
}

func TestPredictionResponseContract(t *testing.T) {
	resp := newPredictionResponse(pipeline.Outcome{Category: pipeline.Normal, Minutes: 120, Message: "ok"})
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal predictionResponse: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if got["category"] != "Normal Operation" || got["persisted"] != false {
		t.Fatalf("unexpected payload: %s", data)
	}
	if _, ok := got["alertId"]; ok {
		t.Fatalf("alertId should be omitted for normal outcomes: %s", data)
	}
}

// setupEnv points config at a temp model dir and alert store.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PDM_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("PDM_CONFIG", "")
	t.Setenv("PDM_MODEL_DIR", filepath.Join(dir, "models"))
	t.Setenv("ALERT_DB_TYPE", "sqlite")
	t.Setenv("ALERT_DB_PATH", filepath.Join(dir, "predictions.db"))
	t.Setenv("ALERT_DB_PASSWORD_ENC", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("MQTT_BROKER", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String() + errOut.String(), err
}

func TestModelsInitCommand(t *testing.T) {
	dir := setupEnv(t)
	target := filepath.Join(dir, "artifacts")
	out, err := execute(t, "", "models", "init", "--dir", target)
	if err != nil {
		t.Fatalf("models init failed: %v", err)
	}
	for _, name := range []string{"scaler.json", "clf_model.json", "reg_model.json"} {
		if _, err := os.Stat(filepath.Join(target, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output: %s", name, out)
		}
	}
}

func TestPredictCommandLogsAlert(t *testing.T) {
	dir := setupEnv(t)
	if err := model.WriteSampleArtifacts(filepath.Join(dir, "models"), model.DefaultFiles()); err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	out, err := execute(t, "", "predict")
	if err != nil {
		t.Fatalf("predict failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Connectors and Cables") || !strings.Contains(out, "10 hour(s)") {
		t.Fatalf("unexpected output: %s", out)
	}

	out, err = execute(t, "", "alerts", "count")
	if err != nil {
		t.Fatalf("alerts count failed: %v", err)
	}
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("expected 1 alert, got %q", out)
	}
}

func TestPredictCommandMissingModels(t *testing.T) {
	setupEnv(t)
	if _, err := execute(t, "", "predict"); err == nil {
		t.Fatalf("expected load error without artifacts")
	}
}

func TestShellCommand(t *testing.T) {
	dir := setupEnv(t)
	if err := model.WriteSampleArtifacts(filepath.Join(dir, "models"), model.DefaultFiles()); err != nil {
		t.Fatalf("write artifacts: %v", err)
	}

	out, err := execute(t, "2\n1\n2\nq\n", "shell")
	if err != nil {
		t.Fatalf("shell failed: %v", err)
	}
	if !strings.Contains(out, "no reading available") {
		t.Fatalf("expected guard message before generate: %s", out)
	}
	if !strings.Contains(out, "Real-time data has been generated successfully!") {
		t.Fatalf("expected generate message: %s", out)
	}
	if !strings.Contains(out, "Estimated time to failure: 10 hour(s) .") {
		t.Fatalf("expected alert message: %s", out)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"asrscore/internal/latency"
	"asrscore/internal/score"
	"asrscore/internal/services"
	"asrscore/internal/testsupport"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "asrscore.toml")
	content := fmt.Sprintf(`[paths]
work_dir = %q
cache_dir = %q
log_dir = %q

[logging]
format = "console"
level = "error"
`,
		filepath.Join(base, "work"),
		filepath.Join(base, "cache"),
		filepath.Join(base, "logs"))
	testsupport.WriteFile(t, configPath, content)
	return configPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const testManifest = `id,text,norm_text_with_disfluency,norm_text_without_disfluency
u1,hello world,HELLO WORLD,HELLO WORLD
u2,good day friend,GOOD DAY FRIEND,GOOD DAY FRIEND
`

func TestRefsBuildAndScoreCommands(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	manifestPath := filepath.Join(dataDir, "manifest.csv")
	testsupport.WriteFile(t, manifestPath, testManifest)
	hypPath := filepath.Join(dataDir, "hyp.csv")
	testsupport.WriteFile(t, hypPath, "id,raw_hypos\nu1,hello world\nu2,good day friend\n")

	out, err := runCommand(t, "--config", configPath,
		"refs", "build", "--manifest", manifestPath, "--split", "dev")
	if err != nil {
		t.Fatalf("refs build failed: %v\n%s", err, out)
	}

	out, err = runCommand(t, "--config", configPath,
		"score", "--split", "dev", "--hyp", hypPath, "--json")
	if err != nil {
		t.Fatalf("score failed: %v\n%s", err, out)
	}

	var report score.Report
	if jsonErr := json.Unmarshal([]byte(out), &report); jsonErr != nil {
		t.Fatalf("parse score output: %v\n%s", jsonErr, out)
	}
	if report.WER != 0 || report.NUtterances != 2 || report.NExcluded != 0 {
		t.Fatalf("report = %+v, want perfect score over 2 utterances", report)
	}

	out, err = runCommand(t, "--config", configPath, "runs", "list", "--json")
	if err != nil {
		t.Fatalf("runs list failed: %v", err)
	}
	var runs []map[string]any
	if jsonErr := json.Unmarshal([]byte(out), &runs); jsonErr != nil {
		t.Fatalf("parse runs output: %v\n%s", jsonErr, out)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want 1", len(runs))
	}
}

func TestScoreCommandPartialFailure(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	manifestPath := filepath.Join(dataDir, "manifest.csv")
	testsupport.WriteFile(t, manifestPath, testManifest)
	hypPath := filepath.Join(dataDir, "hyp.csv")
	testsupport.WriteFile(t, hypPath, "id,raw_hypos\nu1,hello world\n")

	_, err := runCommand(t, "--config", configPath,
		"score", "--split", "dev", "--manifest", manifestPath, "--hyp", hypPath, "--json")
	var partial *partialFailureError
	if !errors.As(err, &partial) {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if got := exitCode(err); got != 2 {
		t.Fatalf("exit code = %d, want 2", got)
	}
}

func TestScoreCommandMissingHypFile(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	manifestPath := filepath.Join(dataDir, "manifest.csv")
	testsupport.WriteFile(t, manifestPath, testManifest)

	_, err := runCommand(t, "--config", configPath,
		"score", "--split", "dev", "--manifest", manifestPath,
		"--hyp", filepath.Join(dataDir, "absent.csv"), "--json")
	if err == nil {
		t.Fatal("expected error for missing hypothesis file")
	}
	if got := exitCode(err); got != 1 {
		t.Fatalf("exit code = %d, want 1", got)
	}
}

func TestScoreCommandBadSchema(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	manifestPath := filepath.Join(dataDir, "manifest.csv")
	testsupport.WriteFile(t, manifestPath, testManifest)
	hypPath := filepath.Join(dataDir, "hyp.csv")
	testsupport.WriteFile(t, hypPath, "utterance,text\nu1,hello\n")

	_, err := runCommand(t, "--config", configPath,
		"score", "--split", "dev", "--manifest", manifestPath, "--hyp", hypPath, "--json")
	if !errors.Is(err, services.ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if got := exitCode(err); got != 1 {
		t.Fatalf("exit code = %d, want 1", got)
	}
}

func TestLatencyCommand(t *testing.T) {
	configPath := writeTestConfig(t)
	dataDir := t.TempDir()

	partialsPath := filepath.Join(dataDir, "partials.json")
	testsupport.WriteFile(t, partialsPath, `{
		"u1": {"events": [
			{"time": 0.3, "text": "hello"},
			{"time": 0.9, "text": "hello wor"},
			{"time": 1.4, "text": "hello world"}
		]}
	}`)
	startsPath := filepath.Join(dataDir, "starts.csv")
	testsupport.WriteFile(t, startsPath, "id,mfa_speech_start\nu1,0.2\n")

	out, err := runCommand(t, "--config", configPath,
		"latency", "--split", "dev",
		"--partials", partialsPath, "--speech-starts", startsPath, "--json")
	if err != nil {
		t.Fatalf("latency failed: %v\n%s", err, out)
	}

	var report latency.Report
	if jsonErr := json.Unmarshal([]byte(out), &report); jsonErr != nil {
		t.Fatalf("parse latency output: %v\n%s", jsonErr, out)
	}
	if report.NUtterances != 1 || report.NExcluded != 0 {
		t.Fatalf("report counts = (%d, %d)", report.NUtterances, report.NExcluded)
	}
	if report.TTFTMedian < 0.09 || report.TTFTMedian > 0.11 {
		t.Fatalf("ttft_median = %v, want 0.1", report.TTFTMedian)
	}
	if report.TTLTMedian < 1.19 || report.TTLTMedian > 1.21 {
		t.Fatalf("ttlt_median = %v, want 1.2", report.TTLTMedian)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

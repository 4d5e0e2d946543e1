package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gorewood/wpexport/internal/output"
)

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "wpexport") {
		t.Errorf("--version output should contain 'wpexport': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{"wpexport", "Usage:", "--json", "--config", "export", "preview", "doctor"} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("--help output should contain %q: %q", expected, stdout)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	stdout, _, err := runCLI(t, "--json")
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", stdout)
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", stdout)
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"json", "config", "color"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s should be a persistent flag", name)
		}
	}
}

func TestBuildVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := version, commit, date
	t.Cleanup(func() { version, commit, date = oldVersion, oldCommit, oldDate })

	version, commit, date = "0.4.0", "none", "unknown"
	if got := buildVersion(); got != "0.4.0" {
		t.Errorf("buildVersion() = %q, want %q", got, "0.4.0")
	}

	commit, date = "0123456789abcdef", "2026-01-02"
	if got, want := buildVersion(), "0.4.0 (0123456, 2026-01-02)"; got != want {
		t.Errorf("buildVersion() = %q, want %q", got, want)
	}
}

func TestRootCommand_InvalidColor(t *testing.T) {
	site := newTestSite(t)

	_, stderr, err := runCLI(t, "list", "--color", "rainbow", "--config", site.config)
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(stderr, "invalid --color") {
		t.Errorf("stderr = %q, want color error", stderr)
	}
}

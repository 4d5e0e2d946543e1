package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	err := Load("/nonexistent/.env")
	if err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.local")
	content := "TEST_ENVFILE_A=hello\nTEST_ENVFILE_B=world\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Ensure vars are unset
	t.Setenv("TEST_ENVFILE_A", "")
	t.Setenv("TEST_ENVFILE_B", "")
	_ = os.Unsetenv("TEST_ENVFILE_A") //nolint:errcheck
	_ = os.Unsetenv("TEST_ENVFILE_B") //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TEST_ENVFILE_A"); got != "hello" {
		t.Errorf("TEST_ENVFILE_A = %q, want %q", got, "hello")
	}
	if got := os.Getenv("TEST_ENVFILE_B"); got != "world" {
		t.Errorf("TEST_ENVFILE_B = %q, want %q", got, "world")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "TEST_ENVFILE_C=from_file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_ENVFILE_C", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TEST_ENVFILE_C"); got != "from_env" {
		t.Errorf("TEST_ENVFILE_C = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestLoad_SkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# This is a comment\n\nTEST_ENVFILE_D=yes\n  # indented comment\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_ENVFILE_D", "")
	_ = os.Unsetenv("TEST_ENVFILE_D") //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("TEST_ENVFILE_D"); got != "yes" {
		t.Errorf("TEST_ENVFILE_D = %q, want %q", got, "yes")
	}
}

func TestLoad_QuotingAndExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "export WPEXPORT_TEST_HOST=db.local\n" +
		"WPEXPORT_TEST_PASSWORD=\"p#ss word\"\n" +
		"WPEXPORT_TEST_USER='admin'\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"WPEXPORT_TEST_HOST", "WPEXPORT_TEST_PASSWORD", "WPEXPORT_TEST_USER"} {
		t.Setenv(key, "")
	}

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"WPEXPORT_TEST_HOST":     "db.local",
		"WPEXPORT_TEST_PASSWORD": "p#ss word",
		"WPEXPORT_TEST_USER":     "admin",
	}
	for key, want := range tests {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoadAll_EarlierFileWins(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte("WPEXPORT_TEST_DB=local\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(shared, []byte("WPEXPORT_TEST_DB=shared\nWPEXPORT_TEST_ONLY_SHARED=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WPEXPORT_TEST_DB", "")
	t.Setenv("WPEXPORT_TEST_ONLY_SHARED", "")

	if err := LoadAll(local, filepath.Join(dir, "missing"), shared); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("WPEXPORT_TEST_DB"); got != "local" {
		t.Errorf("WPEXPORT_TEST_DB = %q, want local", got)
	}
	if got := os.Getenv("WPEXPORT_TEST_ONLY_SHARED"); got != "1" {
		t.Errorf("WPEXPORT_TEST_ONLY_SHARED = %q, want 1", got)
	}
}

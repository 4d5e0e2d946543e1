package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/wpexport/internal/output"
)

func TestExport_WritesPublishedPosts(t *testing.T) {
	site := newTestSite(t)

	stdout, _, err := runCLI(t, "export", "--config", site.config)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(stdout, "Exported 2 posts") {
		t.Errorf("stdout = %q, want export summary", stdout)
	}

	first, err := os.ReadFile(filepath.Join(site.content, "2024", "03-05-hello-world.md"))
	if err != nil {
		t.Fatalf("reading exported post: %v", err)
	}
	doc := string(first)
	for _, want := range []string{
		"---\nTitle: Release - v1\n",
		"  - golang\n",
		"  - Notes\n",
		"  - Ada\n",
		"See https://example.com for \"bar\".\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("exported document missing %q:\n%s", want, doc)
		}
	}

	if _, err := os.Stat(filepath.Join(site.content, "2023", "11-20-second-post.md")); err != nil {
		t.Errorf("second post not exported: %v", err)
	}
	if _, err := os.Stat(filepath.Join(site.content, "2024", "06-01-draft-post.md")); !os.IsNotExist(err) {
		t.Errorf("draft should not be exported, stat err = %v", err)
	}

	data, err := os.ReadFile(site.archive)
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	var entries []struct {
		ID   int64  `json:"id"`
		Path string `json:"path"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("archive is not JSON: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != 2 || entries[1].ID != 1 {
		t.Errorf("archive entries = %+v, want posts 2 then 1", entries)
	}
}

func TestExport_SkipsExistingWithoutForce(t *testing.T) {
	site := newTestSite(t)

	if _, _, err := runCLI(t, "export", "--config", site.config); err != nil {
		t.Fatalf("first export error = %v", err)
	}

	type summary struct {
		Written int `json:"written"`
		Skipped int `json:"skipped"`
	}
	tests := []struct {
		name  string
		args  []string
		want  summary
	}{
		{"without force", nil, summary{Written: 0, Skipped: 2}},
		{"with force", []string{"--force"}, summary{Written: 2, Skipped: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"export", "--json", "--config", site.config}, tt.args...)
			stdout, _, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("export error = %v", err)
			}
			var got summary
			if err := json.Unmarshal([]byte(stdout), &got); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, stdout)
			}
			if got != tt.want {
				t.Errorf("summary = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExport_DryRunWritesNothing(t *testing.T) {
	site := newTestSite(t)

	stdout, _, err := runCLI(t, "export", "--dry-run", "--json", "--drafts", "--config", site.config)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}

	var result struct {
		DryRun bool `json:"dry_run"`
		Posts  []struct {
			Path string `json:"path"`
		} `json:"posts"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if !result.DryRun || len(result.Posts) != 3 {
		t.Errorf("result = %+v, want dry run over 3 posts", result)
	}

	for _, p := range result.Posts {
		if _, err := os.Stat(filepath.Join(site.content, filepath.FromSlash(p.Path))); !os.IsNotExist(err) {
			t.Errorf("%s should not exist after a dry run", p.Path)
		}
	}
	if _, err := os.Stat(site.archive); !os.IsNotExist(err) {
		t.Errorf("archive should not be written on a dry run")
	}
}

func TestExport_Filters(t *testing.T) {
	site := newTestSite(t)
	out := filepath.Join(t.TempDir(), "out")

	_, _, err := runCLI(t, "export", "--config", site.config, "--out", out, "--since", "2024-01-01")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "2024", "03-05-hello-world.md")); err != nil {
		t.Errorf("post inside the window not exported: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "2023")); !os.IsNotExist(err) {
		t.Errorf("post before --since should not be exported")
	}
}

func TestExport_Errors(t *testing.T) {
	site := newTestSite(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing config file",
			args:     []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")},
			wantCode: output.ExitUserError,
			wantMsg:  "reading config",
		},
		{
			name:     "bad since",
			args:     []string{"--config", site.config, "--since", "yesterday"},
			wantCode: output.ExitUserError,
			wantMsg:  "invalid --since",
		},
		{
			name:     "until before since",
			args:     []string{"--config", site.config, "--since", "2024-02-01", "--until", "2024-01-01"},
			wantCode: output.ExitUserError,
			wantMsg:  "is before",
		},
		{
			name:     "negative jobs",
			args:     []string{"--config", site.config, "--jobs", "-1"},
			wantCode: output.ExitUserError,
			wantMsg:  "--jobs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runCLI(t, append([]string{"export"}, tt.args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := output.GetExitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr, tt.wantMsg) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantMsg)
			}
		})
	}
}

func TestExport_MissingDatabaseIsSystemError(t *testing.T) {
	site := newTestSite(t)
	site.writeConfig(t, "driver: sqlite\ndatabase: "+filepath.Join(t.TempDir(), "missing.db")+"\n")

	_, _, err := runCLI(t, "export", "--config", site.config)
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d (err = %v)", code, output.ExitSystemError, err)
	}
}

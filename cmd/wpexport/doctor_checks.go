package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorewood/wpexport/internal/config"
	"github.com/gorewood/wpexport/internal/normalize"
	"github.com/gorewood/wpexport/internal/post"
	"github.com/gorewood/wpexport/internal/wordpress"
)

const doctorTimeout = 10 * time.Second

// runConfigChecks loads the configuration and inspects its patterns.
// The returned config is nil when loading failed.
func runConfigChecks(explicit string) (*config.Config, []checkResult) {
	cfg, err := config.Load(explicit)
	if err != nil {
		check := checkResult{
			Name:    "Config File",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Fix the file or point --config at a valid one",
		}
		if errors.Is(err, config.ErrNotFound) {
			check.Message = "no configuration file found"
			check.Hint = "Create wpexport.yaml in this directory or " + filepath.Join(config.Dir(), "config.yaml")
		}
		return nil, []checkResult{check}
	}

	checks := []checkResult{{
		Name:    "Config File",
		Status:  checkPass,
		Message: fmt.Sprintf("%s (%s driver)", cfg.Path, cfg.Driver),
	}}
	for _, category := range []string{normalize.CategoryContent, normalize.CategoryTag} {
		checks = append(checks, checkPatternCategory(cfg.Patterns, category))
	}
	return cfg, checks
}

// checkPatternCategory reports whether a pattern category has rules.
func checkPatternCategory(table normalize.PatternTable, category string) checkResult {
	name := category + " Patterns"
	patterns, ok := table[category]
	switch {
	case !ok:
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: "category not configured",
			Hint:    fmt.Sprintf("Add patterns.%s to the config; exports log a diagnostic for every post", category),
		}
	case len(patterns) == 0:
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: "category is empty",
		}
	default:
		return checkResult{
			Name:    name,
			Status:  checkPass,
			Message: fmt.Sprintf("%d rules", len(patterns)),
		}
	}
}

// runDatabaseChecks connects to the database and counts posts.
func runDatabaseChecks(ctx context.Context, cfg *config.Config) []checkResult {
	if cfg == nil {
		return []checkResult{skippedCheck("Connection")}
	}

	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	reader, err := wordpress.Open(ctx, readerOptions(cfg))
	if err != nil {
		return []checkResult{{
			Name:    "Connection",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "Check host, database and credentials (WPEXPORT_USERNAME / WPEXPORT_PASSWORD)",
		}}
	}
	defer func() { _ = reader.Close() }()

	checks := []checkResult{{
		Name:    "Connection",
		Status:  checkPass,
		Message: cfg.Driver + " database reachable",
	}}
	return append(checks, checkPostCounts(ctx, reader, cfg.Statuses))
}

// checkPostCounts reports how many posts an export would pick up.
func checkPostCounts(ctx context.Context, reader *wordpress.Reader, statuses []string) checkResult {
	selected, err := reader.Count(ctx, statuses)
	if err != nil {
		return checkResult{Name: "Posts", Status: checkFail, Message: err.Error(),
			Hint: "Check table_prefix matches the WordPress installation"}
	}
	total, err := reader.Count(ctx, nil)
	if err != nil {
		return checkResult{Name: "Posts", Status: checkFail, Message: err.Error()}
	}

	if selected == 0 {
		return checkResult{
			Name:    "Posts",
			Status:  checkWarn,
			Message: fmt.Sprintf("no posts with status %v (%d in total)", statuses, total),
			Hint:    "Adjust statuses in the config or use --drafts",
		}
	}
	msg := fmt.Sprintf("%d to export, %d in total", selected, total)
	if len(statuses) == 1 && statuses[0] == post.StatusPublish {
		msg = fmt.Sprintf("%d published, %d in total", selected, total)
	}
	return checkResult{Name: "Posts", Status: checkPass, Message: msg}
}

// runOutputChecks verifies the content directory and archive location.
func runOutputChecks(cfg *config.Config) []checkResult {
	if cfg == nil {
		return []checkResult{skippedCheck("Content Directory")}
	}

	checks := []checkResult{checkWritableDir("Content Directory", cfg.ContentOutputDirectory)}
	if cfg.ArchiveOutputFilePath == "" {
		checks = append(checks, checkResult{
			Name:    "Archive Index",
			Status:  checkPass,
			Message: "disabled",
		})
	} else {
		check := checkWritableDir("Archive Index", filepath.Dir(cfg.ArchiveOutputFilePath))
		if check.Status == checkPass {
			check.Message = cfg.ArchiveOutputFilePath
		}
		checks = append(checks, check)
	}
	return checks
}

// checkWritableDir checks that dir exists and accepts new files. A missing
// directory is only a warning since export creates it.
func checkWritableDir(name, dir string) checkResult {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return checkResult{
			Name:    name,
			Status:  checkWarn,
			Message: dir + " does not exist yet",
			Hint:    "It will be created on the first export",
		}
	}
	if err != nil {
		return checkResult{Name: name, Status: checkFail, Message: err.Error()}
	}
	if !info.IsDir() {
		return checkResult{Name: name, Status: checkFail, Message: dir + " is not a directory"}
	}

	probe, err := os.CreateTemp(dir, ".wpexport-doctor-*")
	if err != nil {
		return checkResult{
			Name:    name,
			Status:  checkFail,
			Message: dir + " is not writable",
			Hint:    err.Error(),
		}
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())

	return checkResult{Name: name, Status: checkPass, Message: dir + " is writable"}
}

func skippedCheck(name string) checkResult {
	return checkResult{
		Name:    name,
		Status:  checkFail,
		Message: "skipped: configuration could not be loaded",
	}
}

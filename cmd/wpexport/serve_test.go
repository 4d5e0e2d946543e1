package main

import (
	"path/filepath"
	"testing"
)

func TestNewServeCmd(t *testing.T) {
	cmd := newServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.RunE == nil {
		t.Error("RunE is nil")
	}
}

func TestServe_RequiresConfig(t *testing.T) {
	_, _, err := runCLI(t, "serve", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("serve should fail without a configuration")
	}
}

package main

import (
	"testing"

	"github.com/farmlane/delivery-infra/internal/stack"
)

func TestNewWatchCmd(t *testing.T) {
	verbose := false
	cmd := newWatchCmd(&verbose)

	if cmd.Use != "watch" {
		t.Errorf("Use = %q, want 'watch'", cmd.Use)
	}

	flag := cmd.Flags().Lookup("debounce")
	if flag == nil {
		t.Fatal("missing --debounce flag")
	}
	if flag.DefValue != "500ms" {
		t.Errorf("debounce default = %q, want '500ms'", flag.DefValue)
	}
}

func TestWatchDirsDeduplicates(t *testing.T) {
	cfg := stack.Config{
		SourceDir:     "/work/handlers",
		APISchemaPath: "/work/handlers/apiSchema.json",
		SQLScriptPath: "/work/assets/dbinit.sql",
	}

	dirs := watchDirs(cfg)
	if len(dirs) != 2 {
		t.Fatalf("watchDirs() = %v, want 2 entries", dirs)
	}
	if dirs[0] != "/work/handlers" || dirs[1] != "/work/assets" {
		t.Errorf("watchDirs() = %v", dirs)
	}
}

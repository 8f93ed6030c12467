package config

import (
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "BOARD_BASE_DIR", "BOARD_TEMPLATE_DIR",
		"BOARD_STORAGE_PATH", "BOARD_STORE_LOCKING", "LOG_LEVEL", "LOG_PRETTY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	t.Setenv("BOARD_BASE_DIR", base)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if got := cfg.Server.Addr(); got != "localhost:3000" {
		t.Fatalf("unexpected addr %q", got)
	}
	if got := cfg.Server.URL(); got != "http://localhost:3000" {
		t.Fatalf("unexpected url %q", got)
	}
	if cfg.Paths.TemplateDir != filepath.Join(base, "templates") {
		t.Fatalf("unexpected template dir %q", cfg.Paths.TemplateDir)
	}
	if cfg.Paths.StoragePath != filepath.Join(base, "storage", "data.json") {
		t.Fatalf("unexpected storage path %q", cfg.Paths.StoragePath)
	}
	if cfg.Paths.StaticDir() != filepath.Join(base, "static") {
		t.Fatalf("unexpected static dir %q", cfg.Paths.StaticDir())
	}
	if cfg.Store.Locking {
		t.Fatal("expected locking disabled by default")
	}
	if cfg.Log.Level != "info" || !cfg.Log.Pretty {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOARD_BASE_DIR", t.TempDir())
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("BOARD_TEMPLATE_DIR", "/srv/templates")
	t.Setenv("BOARD_STORAGE_PATH", "/var/lib/board/data.json")
	t.Setenv("BOARD_STORE_LOCKING", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Paths.TemplateDir != "/srv/templates" {
		t.Fatalf("unexpected template dir %q", cfg.Paths.TemplateDir)
	}
	if cfg.Paths.StoragePath != "/var/lib/board/data.json" {
		t.Fatalf("unexpected storage path %q", cfg.Paths.StoragePath)
	}
	if !cfg.Store.Locking {
		t.Fatal("expected locking enabled")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Pretty {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"非数字端口", "PORT", "abc"},
		{"端口越界", "PORT", "70000"},
		{"非法主机", "HOST", "local host"},
		{"非法布尔值", "BOARD_STORE_LOCKING", "maybe"},
		{"非法日志格式", "LOG_PRETTY", "sometimes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOARD_BASE_DIR", t.TempDir())
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

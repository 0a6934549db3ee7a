package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := Default()
	if cfg.MaxFrameBytes != def.MaxFrameBytes {
		t.Fatalf("max_frame_bytes mismatch: got=%d want=%d", cfg.MaxFrameBytes, def.MaxFrameBytes)
	}
	if len(cfg.AppPaths) == 0 {
		t.Fatalf("expected default app paths")
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.toml")
	body := `
app_paths = ["/opt/SwiftFetch.app"]
max_frame_bytes = 1048576

[log]
file = "/tmp/fetchhost-test.log"
level = "debug"
max_size_mb = 5
max_backups = 1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.AppPaths) != 1 || cfg.AppPaths[0] != "/opt/SwiftFetch.app" {
		t.Fatalf("app_paths mismatch: %v", cfg.AppPaths)
	}
	if cfg.MaxFrameBytes != 1048576 {
		t.Fatalf("max_frame_bytes mismatch: %d", cfg.MaxFrameBytes)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/fetchhost-test.log" {
		t.Fatalf("log config mismatch: %+v", cfg.Log)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.toml")
	if err := os.WriteFile(path, []byte("app_paths = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFile, "/tmp/override.log")
	t.Setenv(EnvAppPaths, "/a/One.app"+string(os.PathListSeparator)+"/b/Two.app")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/override.log" {
		t.Fatalf("log overrides not applied: %+v", cfg.Log)
	}
	if len(cfg.AppPaths) != 2 || cfg.AppPaths[0] != "/a/One.app" || cfg.AppPaths[1] != "/b/Two.app" {
		t.Fatalf("app path override not applied: %v", cfg.AppPaths)
	}
}

func TestValidateRejectsZeroFrameLimit(t *testing.T) {
	cfg := Default()
	cfg.MaxFrameBytes = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestWatchAppliesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.toml")
	if err := os.WriteFile(path, []byte(`app_paths = ["/old/App.app"]`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	applied := make(chan Config, 1)
	stop, err := Watch(path, zerolog.Nop(), func(cfg Config) {
		select {
		case applied <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	tmp := filepath.Join(dir, "host.toml.tmp")
	if err := os.WriteFile(tmp, []byte(`app_paths = ["/new/App.app"]`), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("swap config: %v", err)
	}

	select {
	case cfg := <-applied:
		if len(cfg.AppPaths) != 1 || cfg.AppPaths[0] != "/new/App.app" {
			t.Fatalf("reloaded config mismatch: %v", cfg.AppPaths)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("reload not observed")
	}
}

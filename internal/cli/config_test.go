package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/biograph-io/biograph/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "biograph.toml")
		content := `
mongo_uri = "mongodb://db.example:27017"
fixture_dir = "testdata/networks"
enrich = true
enrich_ttl_hours = 48
listen_addr = ":9000"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if cfg.MongoURI != "mongodb://db.example:27017" {
			t.Errorf("MongoURI = %q", cfg.MongoURI)
		}
		if cfg.FixtureDir != "testdata/networks" {
			t.Errorf("FixtureDir = %q", cfg.FixtureDir)
		}
		if !cfg.Enrich {
			t.Error("Enrich not set")
		}
		if cfg.ListenAddr != ":9000" {
			t.Errorf("ListenAddr = %q", cfg.ListenAddr)
		}
		if got := cfg.enrichTTL(); got != 48*time.Hour {
			t.Errorf("enrichTTL = %v, want 48h", got)
		}
		// Unset keys keep their defaults.
		if cfg.MongoDatabase != "biograph" {
			t.Errorf("MongoDatabase = %q, want default", cfg.MongoDatabase)
		}
	})

	t.Run("missing default file is fine", func(t *testing.T) {
		wd, _ := os.Getwd()
		if err := os.Chdir(t.TempDir()); err != nil {
			t.Fatalf("Chdir: %v", err)
		}
		defer os.Chdir(wd)

		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if cfg.ListenAddr != ":8641" {
			t.Errorf("ListenAddr = %q, want default", cfg.ListenAddr)
		}
	})

	t.Run("missing explicit file errors", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.CodeInvalidConfig) {
			t.Errorf("error = %v, want INVALID_CONFIG", err)
		}
	})

	t.Run("malformed toml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("mongo_uri = ["), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := loadConfig(path); !errors.Is(err, errors.CodeInvalidConfig) {
			t.Errorf("error = %v, want INVALID_CONFIG", err)
		}
	})
}

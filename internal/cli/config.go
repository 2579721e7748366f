package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/biograph-io/biograph/pkg/errors"
)

// defaultConfigName is looked up in the working directory when no
// --config flag is given.
const defaultConfigName = "biograph.toml"

// Config holds the CLI's file-backed settings. Flags override nothing
// here; commands read the fields they need and fall back to the defaults
// from defaultConfig.
type Config struct {
	// Mongo connection for the network store. Ignored when FixtureDir is
	// set.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`

	// FixtureDir switches the store to in-memory mode, loading network
	// documents from *.json files in the directory. Used for demos and
	// offline work.
	FixtureDir string `toml:"fixture_dir"`

	// RedisAddr selects the redis backend for the bytes cache. When
	// empty, CacheDir's file backend is used instead.
	RedisAddr string `toml:"redis_addr"`

	// CacheDir is the file-backend directory for the bytes cache.
	CacheDir string `toml:"cache_dir"`

	// Enrich toggles PubMed citation enrichment on network load.
	Enrich bool `toml:"enrich"`

	// EnrichTTLHours bounds how long fetched citation metadata stays in
	// the bytes cache.
	EnrichTTLHours int `toml:"enrich_ttl_hours"`

	// InferDogma toggles central-dogma scaffolding on network load.
	InferDogma bool `toml:"infer_dogma"`

	// ListenAddr is the bind address for the serve command.
	ListenAddr string `toml:"listen_addr"`
}

// defaultConfig returns the settings used when no config file exists.
func defaultConfig() Config {
	return Config{
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "biograph",
		CacheDir:       defaultCacheDir(),
		EnrichTTLHours: 24 * 30,
		ListenAddr:     ":8641",
	}
}

// loadConfig reads the toml file at path, or the default path when path
// is empty. A missing default file is not an error; a missing explicit
// file is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.CodeInvalidConfig, err, "config file %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.CodeInvalidConfig, err, "parse config file %s", path)
	}
	return cfg, nil
}

// defaultCacheDir returns the OS cache directory for biograph, falling
// back to a dot-directory in the working directory.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".biograph-cache"
	}
	return filepath.Join(base, "biograph")
}

// enrichTTL converts the configured hours to a duration.
func (c Config) enrichTTL() time.Duration {
	return time.Duration(c.EnrichTTLHours) * time.Hour
}

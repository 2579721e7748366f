package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/biograph-io/biograph/pkg/cache"
	"github.com/biograph-io/biograph/pkg/enrich"
	"github.com/biograph-io/biograph/pkg/errors"
	"github.com/biograph-io/biograph/pkg/kvcache"
	"github.com/biograph-io/biograph/pkg/store"
)

// app wires the store, bytes cache, enrichment client, and graph cache
// together for one command invocation. Commands build it lazily in RunE
// so that --help never touches Mongo or redis.
type app struct {
	cfg   Config
	cache *cache.Cache
	kv    kvcache.Cache

	mongo *store.MongoStore // nil in fixture mode
}

// newApp builds the full collaborator stack from the config.
func newApp(ctx context.Context, cfg Config, logger *log.Logger) (*app, error) {
	a := &app{cfg: cfg}

	st, err := a.openStore(ctx, logger)
	if err != nil {
		return nil, err
	}

	a.kv = a.openKV(ctx, logger)

	opts := cache.Options{Logger: logger, InferDogma: cfg.InferDogma}
	if cfg.Enrich {
		opts.Enricher = enrich.NewPubMedClient(a.kv, cfg.enrichTTL())
	}
	a.cache = cache.New(st, opts)
	return a, nil
}

// openStore connects to Mongo, or loads fixtures into a MemStore when
// FixtureDir is set.
func (a *app) openStore(ctx context.Context, logger *log.Logger) (store.Store, error) {
	if a.cfg.FixtureDir != "" {
		logger.Debug("Using fixture store", "dir", a.cfg.FixtureDir)
		return loadFixtures(a.cfg.FixtureDir)
	}

	logger.Debug("Connecting to Mongo", "uri", a.cfg.MongoURI, "database", a.cfg.MongoDatabase)
	ms, err := store.NewMongoStore(ctx, a.cfg.MongoURI, a.cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	a.mongo = ms
	return ms, nil
}

// openKV selects the bytes-cache backend: redis when configured, file
// otherwise, null when the file backend cannot be created.
func (a *app) openKV(ctx context.Context, logger *log.Logger) kvcache.Cache {
	if a.cfg.RedisAddr != "" {
		rc, err := kvcache.NewRedisCache(ctx, a.cfg.RedisAddr)
		if err == nil {
			logger.Debug("Using redis bytes cache", "addr", a.cfg.RedisAddr)
			return rc
		}
		logger.Warn("Redis unavailable, falling back to file cache", "addr", a.cfg.RedisAddr, "error", err)
	}
	fc, err := kvcache.NewFileCache(a.cfg.CacheDir)
	if err != nil {
		logger.Warn("File cache unavailable, caching disabled", "dir", a.cfg.CacheDir, "error", err)
		return kvcache.Null{}
	}
	return fc
}

// close releases external connections. Safe to call on a partially
// constructed app.
func (a *app) close(ctx context.Context) {
	if a.kv != nil {
		_ = a.kv.Close()
	}
	if a.mongo != nil {
		_ = a.mongo.Close(ctx)
	}
}

// loadFixtures reads every *.json network document in dir into an
// in-memory store.
func loadFixtures(dir string) (*store.MemStore, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInvalidConfig, err, "fixture dir %s", dir)
	}

	ms := store.NewMemStore()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInvalidConfig, err, "read fixture %s", path)
		}
		var doc store.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(errors.CodeInvalidConfig, err, "parse fixture %s", path)
		}
		g, err := doc.Decode()
		if err != nil {
			return nil, errors.Wrap(errors.CodeInvalidConfig, err, "decode fixture %s", path)
		}
		ms.Add(g)
	}
	return ms, nil
}

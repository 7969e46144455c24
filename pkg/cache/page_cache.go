// Package cache is the optional caching collaborator around a page
// builder: built pages are persisted in BadgerDB keyed by document
// name, and reused as long as the source content hash is unchanged.
// The pipeline itself stays cache-free; callers that want caching wrap
// their intro.Source in a PageCache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docintro/pkg/log"
	"docintro/pkg/models"
	"docintro/pkg/utils"
	"docintro/pkg/vfs"
)

const (
	pageKeyPrefix = "intro:"     // Prefix for page keys in DB
	cacheDBDir    = "page_cache" // Subdirectory name within cacheDir for Badger DB files
)

// PageBuilder builds one page per document name. Implemented by
// intro.Source.
type PageBuilder interface {
	BuildPage(ctx context.Context, name string) (*models.Page, error)
}

// cacheEntry is the stored form of one built page.
type cacheEntry struct {
	SourceHash string      `json:"source_hash"`
	BuiltAt    time.Time   `json:"built_at"`
	Page       models.Page `json:"page"`
}

// PageCache serves built pages from BadgerDB, rebuilding through the
// wrapped builder whenever the raw document content has changed. Cache
// read faults degrade to a direct build; cache write faults are logged
// and the freshly built page is still returned.
type PageCache struct {
	db      *badger.DB
	builder PageBuilder
	reader  vfs.FileReader
	log     *logrus.Entry
}

// NewPageCache opens (or creates) the cache database under cacheDir.
func NewPageCache(builder PageBuilder, reader vfs.FileReader, cacheDir string, logger *logrus.Entry) (*PageCache, error) {
	dbPath := filepath.Join(cacheDir, cacheDBDir)
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("%w: cannot create cache directory %s: %w", utils.ErrFilesystem, dbPath, err)
	}

	badgerLogger := log.NewBadgerLogrusAdapter(logger.WithField("component", "badgerdb"))
	opts := badger.DefaultOptions(dbPath).
		WithLogger(badgerLogger).
		WithNumVersionsToKeep(1) // Only the latest build per document matters

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open badger database at %s: %w", utils.ErrDatabase, dbPath, err)
	}

	logger.Infof("Page cache initialized at: %s", dbPath)
	return &PageCache{db: db, builder: builder, reader: reader, log: logger}, nil
}

// GetPage returns the cached page for name when its stored source hash
// matches the current content, otherwise rebuilds and stores it. Reader
// and builder errors surface unchanged; in particular a missing
// document fails with utils.ErrNotFound even when a stale entry exists.
func (c *PageCache) GetPage(ctx context.Context, name string) (*models.Page, error) {
	raw, err := c.reader.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	hash := utils.CalculateStringSHA256(raw)
	key := []byte(pageKeyPrefix + name)

	var cached *models.Page
	errView := c.db.View(func(txn *badger.Txn) error {
		item, errGet := txn.Get(key)
		if errors.Is(errGet, badger.ErrKeyNotFound) {
			return nil
		}
		if errGet != nil {
			return fmt.Errorf("%w: failed getting page key '%s': %w", utils.ErrDatabase, string(key), errGet)
		}
		return item.Value(func(val []byte) error {
			var entry cacheEntry
			if errJSON := json.Unmarshal(val, &entry); errJSON != nil {
				c.log.Warnf("Failed to unmarshal cache entry for key '%s': %v. Treating as miss.", string(key), errJSON)
				return nil
			}
			if entry.SourceHash == hash {
				cached = &entry.Page
			}
			return nil
		})
	})
	if errView != nil {
		// Degrade to a direct build; the cache must never make a
		// buildable page unavailable.
		c.log.Warnf("Cache read failed for '%s', building directly: %v", name, errView)
	}
	if cached != nil {
		c.log.WithField("doc", name).Debug("Page cache hit")
		return cached, nil
	}

	buildLog := c.log.WithFields(logrus.Fields{
		"doc":      name,
		"build_id": uuid.New().String(),
	})
	buildLog.Debug("Page cache miss, building")

	page, err := c.builder.BuildPage(ctx, name)
	if err != nil {
		return nil, err
	}

	if errStore := c.store(key, hash, page); errStore != nil {
		buildLog.Warnf("Failed to store built page: %v", errStore)
	}
	return page, nil
}

// store persists a built page under key.
func (c *PageCache) store(key []byte, hash string, page *models.Page) error {
	entry := cacheEntry{SourceHash: hash, BuiltAt: time.Now().UTC(), Page: *page}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("%w: setting page key '%s': %w", utils.ErrDatabase, string(key), err)
	}
	return nil
}

// Invalidate drops the cached entry for name, if any.
func (c *PageCache) Invalidate(name string) error {
	key := []byte(pageKeyPrefix + name)
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("%w: deleting page key '%s': %w", utils.ErrDatabase, string(key), err)
	}
	return nil
}

// RunGC runs periodic value-log garbage collection until ctx is done.
// Should be run in a goroutine.
func (c *PageCache) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := c.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				c.log.Warnf("Badger value log GC failed: %v", err)
			}
		}
	}
}

// Close cleanly closes the cache database.
func (c *PageCache) Close() error {
	return c.db.Close()
}

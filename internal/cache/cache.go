package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/models"
)

// fingerprintChars bounds the cache key to a text prefix. Two documents
// sharing their first 1000 characters collide; that is accepted in exchange
// for cheap key computation.
const fingerprintChars = 1000

const DefaultTTL = 24 * time.Hour

var _ core.ResultCache = (*FileCache)(nil)

// FileCache stores one JSON file per text fingerprint on local disk. Entry
// age comes from the file's mtime; expiry is lazy, happening only when a
// stale entry is read. There is no size eviction and no sweeper.
type FileCache struct {
	dir string
	ttl time.Duration
	log *zap.Logger

	now func() time.Time
}

func New(dir string, ttl time.Duration, log *zap.Logger) (*FileCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl, log: log, now: time.Now}, nil
}

// Lookup returns the cached result for text, if a fresh entry exists. A stale
// entry is deleted as a side effect of the check.
func (c *FileCache) Lookup(text string) (*models.PipelineResult, bool) {
	path := c.entryPath(text)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(info.ModTime()) > c.ttl {
		_ = os.Remove(path)
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var res models.PipelineResult
	if err := json.Unmarshal(data, &res); err != nil {
		c.log.Warn("cache entry unreadable", zap.String("path", path), zap.Error(err))
		_ = os.Remove(path)
		return nil, false
	}
	return &res, true
}

// Store persists the result under the fingerprint of text. Failures are
// reported as false, never as an error; the pipeline treats the write as best
// effort. The temp-file-plus-rename makes concurrent writers last-write-wins
// without torn entries.
func (c *FileCache) Store(text string, result *models.PipelineResult) bool {
	data, err := json.Marshal(result)
	if err != nil {
		return false
	}

	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return false
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return false
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return false
	}
	if err := os.Rename(tmp.Name(), c.entryPath(text)); err != nil {
		_ = os.Remove(tmp.Name())
		return false
	}
	return true
}

func (c *FileCache) entryPath(text string) string {
	return filepath.Join(c.dir, fingerprint(text)+".json")
}

// fingerprint hashes the first fingerprintChars characters (not bytes) of the
// text into a stable file name.
func fingerprint(text string) string {
	runes := []rune(text)
	if len(runes) > fingerprintChars {
		runes = runes[:fingerprintChars]
	}
	sum := md5.Sum([]byte(string(runes)))
	return hex.EncodeToString(sum[:])
}

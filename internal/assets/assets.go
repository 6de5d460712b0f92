// Package assets locates demo resources on disk and fetches remote
// heightmaps into a local cache.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/Faultbox/timejump/internal/logger"
)

// ErrNotFound is returned when a resource exists under no search root.
var ErrNotFound = errors.New("resource not found")

// ResourceDirName is the directory the demo keeps its shaders, textures and
// skyboxes in.
const ResourceDirName = "resources"

// maxParentSearch bounds how far FindResourceRoot walks up from start.
const maxParentSearch = 6

// FindResourceRoot walks up from start (at most six levels) looking for a
// directory that contains "resources/". It returns that parent directory,
// or start itself when none is found.
func FindResourceRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for range maxParentSearch {
		info, err := os.Stat(filepath.Join(dir, ResourceDirName))
		if err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	abs, _ := filepath.Abs(start)
	return abs
}

// Fetcher downloads a source URL to a local file. The default uses
// go-getter, so http(s)://, s3::, gcs:: and git:: sources all work.
type Fetcher func(dst, src string) error

// Manager resolves resource paths against a root directory and caches loaded
// bytes. Remote sources are downloaded once into CacheDir.
type Manager struct {
	root     string
	cacheDir string
	fetch    Fetcher
	cache    *Cache
	mu       sync.Mutex
}

// NewManager creates a manager rooted at root. Remote downloads land in
// cacheDir.
func NewManager(root, cacheDir string) *Manager {
	return &Manager{
		root:     root,
		cacheDir: cacheDir,
		fetch:    fetchWithGetter,
		cache:    NewCache(),
	}
}

// SetFetcher replaces the download function.
func (m *Manager) SetFetcher(f Fetcher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetch = f
}

// Root returns the directory relative paths resolve against.
func (m *Manager) Root() string { return m.root }

// Path resolves ref to a local file, downloading it first if ref is remote.
func (m *Manager) Path(ref string) (string, error) {
	if IsRemote(ref) {
		return m.download(ref)
	}

	local := ref
	if !filepath.IsAbs(local) {
		local = filepath.Join(m.root, ref)
	}
	if _, err := os.Stat(local); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, local)
		}
		return "", err
	}
	return local, nil
}

// Load returns the contents of ref, served from memory after the first read.
// The name returned is the file name decoders should sniff, which for a
// remote ref is its last path element without the query.
func (m *Manager) Load(ref string) (data []byte, name string, err error) {
	name = Name(ref)
	if data, ok := m.cache.Get(ref); ok {
		return data, name, nil
	}

	local, err := m.Path(ref)
	if err != nil {
		return nil, "", err
	}
	data, err = os.ReadFile(local)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", local, err)
	}
	m.cache.Put(ref, data)
	logger.Debug("asset loaded",
		zap.String("ref", ref),
		zap.Int("bytes", len(data)))
	return data, name, nil
}

// CacheStats reports the in-memory cache counters.
func (m *Manager) CacheStats() CacheStats { return m.cache.Stats() }

// Close drops cached data.
func (m *Manager) Close() {
	st := m.cache.Stats()
	logger.Debug("asset cache released",
		zap.Int("entries", st.Entries),
		zap.Int64("bytes", st.Bytes),
		zap.Int("hits", st.Hits),
		zap.Int("misses", st.Misses))
	m.cache.Reset()
}

// download fetches src into the cache directory. The fetch writes to a
// ".part" file that is renamed into place only on success, so a failed or
// interrupted download never shows up as a cache hit.
func (m *Manager) download(src string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dst := filepath.Join(m.cacheDir, cacheName(src))
	if _, err := os.Stat(dst); err == nil {
		logger.Debug("asset cache hit", zap.String("src", src), zap.String("path", dst))
		return dst, nil
	}

	if err := os.MkdirAll(m.cacheDir, 0755); err != nil {
		return "", err
	}
	part := dst + partSuffix
	_ = os.Remove(part)

	logger.Info("downloading asset", zap.String("src", src), zap.String("dst", dst))
	if err := m.fetch(part, src); err != nil {
		_ = os.Remove(part)
		return "", fmt.Errorf("fetching %s: %w", src, err)
	}
	if err := os.Rename(part, dst); err != nil {
		_ = os.Remove(part)
		return "", fmt.Errorf("caching %s: %w", src, err)
	}
	return dst, nil
}

// IsRemote reports whether ref names something go-getter must download.
func IsRemote(ref string) bool {
	if strings.Contains(ref, "::") {
		return true
	}
	for _, scheme := range []string{"http://", "https://", "s3://", "gs://"} {
		if strings.HasPrefix(ref, scheme) {
			return true
		}
	}
	return false
}

// partSuffix marks a download in progress.
const partSuffix = ".part"

// Name returns the file name of ref with any query string and go-getter
// forcing prefix removed.
func Name(ref string) string {
	ref = strings.SplitN(ref, "?", 2)[0]
	if i := strings.LastIndex(ref, "::"); i >= 0 {
		ref = ref[i+2:]
	}
	return path.Base(filepath.ToSlash(ref))
}

// cacheName is the hex sha256 of src plus its extension, so decoders can
// still sniff by name.
func cacheName(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:]) + path.Ext(Name(src))
}

func fetchWithGetter(dst, src string) error {
	return getter.GetFile(dst, src)
}

// Cache keeps raw asset bytes in memory keyed by reference.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
	stats   CacheStats
}

// CacheStats counts cache traffic and what the cache currently holds.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
	Bytes   int64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Get returns the bytes stored for ref.
func (c *Cache) Get(ref string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[ref]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return data, ok
}

// Put stores data for ref, replacing any previous entry.
func (c *Cache) Put(ref string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[ref]; ok {
		c.stats.Bytes -= int64(len(old))
	} else {
		c.stats.Entries++
	}
	c.entries[ref] = data
	c.stats.Bytes += int64(len(data))
}

// Reset drops every entry and zeroes the counters.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	c.stats = CacheStats{}
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindResourceRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ResourceDirName), 0755); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}

	got := FindResourceRoot(deep)
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindResourceRoot = %q, want %q", got, want)
	}
}

func TestFindResourceRootFallsBackToStart(t *testing.T) {
	start := t.TempDir()
	want, _ := filepath.Abs(start)
	// Six levels of empty directories keep the walk inside the temp tree.
	deep := filepath.Join(start, "1", "2", "3", "4", "5", "6")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}
	got := FindResourceRoot(deep)
	wantDeep, _ := filepath.Abs(deep)
	if got != wantDeep {
		t.Errorf("FindResourceRoot = %q, want %q (start %q)", got, wantDeep, want)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"heightmap.png", false},
		{"/abs/heightmap.png", false},
		{"https://example.com/h.png", true},
		{"http://example.com/h.png", true},
		{"s3::https://bucket.s3.amazonaws.com/h.png", true},
		{"gcs::https://www.googleapis.com/storage/v1/b/h.png", true},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.ref); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestManagerLoadLocal(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "h.png"), []byte("pixels"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(root, filepath.Join(root, "cache"))

	data, name, err := m.Load("h.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "pixels" || name != "h.png" {
		t.Errorf("data = %q, name = %q", data, name)
	}

	// The second read is served from memory even after the file is gone.
	if err := os.Remove(filepath.Join(root, "h.png")); err != nil {
		t.Fatal(err)
	}
	if data, _, err := m.Load("h.png"); err != nil || string(data) != "pixels" {
		t.Fatalf("cached Load = %q, %v", data, err)
	}
	want := CacheStats{Hits: 1, Misses: 1, Entries: 1, Bytes: 6}
	if st := m.CacheStats(); st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}

	m.Close()
	if st := m.CacheStats(); st != (CacheStats{}) {
		t.Errorf("stats after Close = %+v", st)
	}
}

func TestManagerMissing(t *testing.T) {
	m := NewManager(t.TempDir(), t.TempDir())
	_, err := m.Path("nope.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestManagerRemoteDownloadsOnce(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	m := NewManager(t.TempDir(), cacheDir)

	calls := 0
	m.SetFetcher(func(dst, src string) error {
		calls++
		return os.WriteFile(dst, []byte(src), 0644)
	})

	const src = "https://example.com/maps/island.png?v=2"
	p1, err := m.Path(src)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if filepath.Ext(p1) != ".png" {
		t.Errorf("cached path %q lost its extension", p1)
	}
	p2, err := m.Path(src)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 || calls != 1 {
		t.Errorf("paths %q/%q after %d fetches; want one fetch", p1, p2, calls)
	}

	data, name, err := m.Load(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != src || name != "island.png" {
		t.Errorf("data = %q, name = %q", data, name)
	}
}

func TestManagerFailedDownloadNotCached(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	m := NewManager(t.TempDir(), cacheDir)

	const src = "https://example.com/maps/island.png"
	boom := errors.New("connection reset")
	calls := 0
	m.SetFetcher(func(dst, src string) error {
		calls++
		if err := os.WriteFile(dst, []byte("trunc"), 0644); err != nil {
			return err
		}
		return boom
	})

	if _, err := m.Path(src); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped fetch error", err)
	}
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir holds %d files after a failed fetch", len(entries))
	}

	m.SetFetcher(func(dst, src string) error {
		calls++
		return os.WriteFile(dst, []byte("complete"), 0644)
	})
	p, err := m.Path(src)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "complete" || calls != 2 {
		t.Errorf("content = %q after %d fetches, want a fresh download", data, calls)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"resources/textures/heightmap.png", "heightmap.png"},
		{"https://example.com/maps/island.tga?v=2", "island.tga"},
		{"s3::https://bucket.s3.amazonaws.com/h.bmp", "h.bmp"},
	}
	for _, tt := range tests {
		if got := Name(tt.ref); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestCacheNameUsesFullDigest(t *testing.T) {
	name := cacheName("https://example.com/maps/island.png?v=2")
	if filepath.Ext(name) != ".png" {
		t.Errorf("cache name %q lost its extension", name)
	}
	if got := len(name) - len(".png"); got != 64 {
		t.Errorf("digest has %d hex chars, want 64", got)
	}
}

func TestManagerFetchError(t *testing.T) {
	m := NewManager(t.TempDir(), t.TempDir())
	boom := errors.New("boom")
	m.SetFetcher(func(dst, src string) error { return boom })

	if _, err := m.Path("https://example.com/x.png"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

func TestCachePutReplacesBytes(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("a"); ok {
		t.Error("empty cache returned a value")
	}
	c.Put("a", []byte{1, 2, 3})
	c.Put("a", []byte{1})
	c.Put("b", []byte{1, 2})
	if v, ok := c.Get("a"); !ok || len(v) != 1 {
		t.Error("Get after Put failed")
	}

	want := CacheStats{Hits: 1, Misses: 1, Entries: 2, Bytes: 3}
	if st := c.Stats(); st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}
	c.Reset()
	if st := c.Stats(); st != (CacheStats{}) {
		t.Errorf("stats after Reset = %+v", st)
	}
}

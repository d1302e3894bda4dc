package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	cperrors "github.com/matzehuels/ceilplan/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache reported a hit")
	}
	if err := c.Set(ctx, "layout:abc", []byte(`{"total":6}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil || !hit || string(data) != `{"total":6}` {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("deleted entry still present")
	}
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("a"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("b"), 0)

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed on read")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("bad")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheMaintenance(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	now := time.Now()
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "a", []byte("1"), time.Minute)
	_ = c.Set(ctx, "b", []byte("2"), time.Hour)
	_ = c.Set(ctx, "c", []byte("3"), 0)
	now = now.Add(10 * time.Minute)

	s, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Entries != 3 || s.Expired != 1 || s.Bytes == 0 {
		t.Errorf("Stats = %+v, want 3 entries with 1 expired", s)
	}

	n, err := c.Prune()
	if err != nil || n != 1 {
		t.Errorf("Prune = %d, %v; want 1", n, err)
	}
	if s, _ := c.Stats(); s.Entries != 2 {
		t.Errorf("entries after prune = %d, want 2", s.Entries)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s, _ := c.Stats(); s.Entries != 0 {
		t.Errorf("entries after clear = %d, want 0", s.Entries)
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Error("Clear removed the cache directory itself")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}

	type design struct{ W, L float64 }
	a, _ := HashJSON(design{12, 15})
	b, _ := HashJSON(design{12, 15})
	c, _ := HashJSON(design{15, 12})
	if a != b || a == c {
		t.Error("HashJSON should follow value equality")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON should fail on unencodable values")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if k.LayoutKey("a") == k.LayoutKey("b") {
		t.Error("different designs should produce different layout keys")
	}
	if k.LayoutKey("a") != k.LayoutKey("a") {
		t.Error("LayoutKey should be deterministic")
	}

	base := ArtifactKeyOpts{Format: "svg", Scale: 30}
	variants := []ArtifactKeyOpts{
		{Format: "png", Scale: 30},
		{Format: "svg", Scale: 20},
		{Format: "svg", Scale: 30, Labels: true},
		{Format: "svg", Scale: 30, Coves: true},
		{Format: "dot", Scale: 30, Wiring: true},
	}
	baseKey := k.ArtifactKey("h", base)
	for _, v := range variants {
		if k.ArtifactKey("h", v) == baseKey {
			t.Errorf("%+v should produce a different key from %+v", v, base)
		}
	}
	if k.ArtifactKey("h", base) == k.ArtifactKey("h2", base) {
		t.Error("different layouts should produce different artifact keys")
	}
	if k.LayoutKey("h") == k.ArtifactKey("h", ArtifactKeyOpts{}) {
		t.Error("stages should not share keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	if got, want := scoped.LayoutKey("h"), "staging:"+inner.LayoutKey("h"); got != want {
		t.Errorf("LayoutKey = %s, want %s", got, want)
	}
	opts := ArtifactKeyOpts{Format: "pdf"}
	if got, want := scoped.ArtifactKey("h", opts), "staging:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}

	if got := NewScopedKeyer(nil, "p:").LayoutKey("h"); got != "p:"+inner.LayoutKey("h") {
		t.Errorf("nil inner should use DefaultKeyer: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("message not preserved: %s", err)
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()
	permanent := errors.New("bad url")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, permanent, 1, permanent},
		{"recovers", 1, Retryable(ErrNetwork), 2, nil},
		{"gives up", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	c, err := Open(ctx, "")
	if err != nil {
		t.Fatalf("Open default: %v", err)
	}
	fc, ok := c.(*FileCache)
	if !ok || fc.Dir() != filepath.Join(dir, "ceilplan") {
		t.Errorf("default cache = %#v, want file cache under XDG_CACHE_HOME", c)
	}

	if c, _ := Open(ctx, "none"); c != NewNullCache() {
		t.Errorf("none = %#v, want NullCache", c)
	}

	sub := filepath.Join(dir, "custom")
	c, err = Open(ctx, "file://"+sub)
	if err != nil {
		t.Fatalf("Open file: %v", err)
	}
	if fc, ok := c.(*FileCache); !ok || fc.Dir() != sub {
		t.Errorf("file URL = %#v, want dir %s", c, sub)
	}

	for _, bad := range []string{"file://", "memcached://localhost", "/tmp/cache"} {
		if _, err := Open(ctx, bad); !cperrors.Is(err, cperrors.ErrCodeInvalidInput) {
			t.Errorf("Open(%q) err = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestMongoDatabase(t *testing.T) {
	tests := []struct{ uri, want string }{
		{"mongodb://localhost:27017", DefaultMongoDatabase},
		{"mongodb://localhost:27017/", DefaultMongoDatabase},
		{"mongodb://user:pw@db.local/plans?authSource=admin", "plans"},
		{"mongodb+srv://cluster.example.net/lighting", "lighting"},
	}
	for _, tt := range tests {
		if got := mongoDatabase(tt.uri); got != tt.want {
			t.Errorf("mongoDatabase(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

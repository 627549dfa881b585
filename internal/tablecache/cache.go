package tablecache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/kamusis/colorname-cli/internal/logging"
	"github.com/klauspost/compress/zstd"
)

const (
	magic     = "CNT1"
	extension = ".cnt.zst"
	lockName  = "tables.lock"

	// DefaultLockTimeout bounds how long Load and Compile wait for another
	// process holding the cache lock.
	DefaultLockTimeout = 10 * time.Second
)

// ErrCorrupt is returned by Decode for payloads that are not compiled tables.
var ErrCorrupt = errors.New("corrupt compiled table")

// Cache stores compiled color name tables keyed by the hash of their text
// source.
type Cache struct {
	Dir         string
	LockTimeout time.Duration
	Logger      *slog.Logger
}

// Entry describes one compiled table in the cache directory.
type Entry struct {
	Path    string
	Hash    string
	Size    int64
	ModTime time.Time
}

// New returns a Cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{
		Dir:         dir,
		LockTimeout: DefaultLockTimeout,
		Logger:      logging.Discard(),
	}
}

// Load returns the compact table for the text file at src, compiling it
// into the cache first when no valid compiled copy exists.
func (c *Cache) Load(ctx context.Context, src string) (*colorname.Table, error) {
	data, hash, err := readSource(src)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache dir %s: %w", c.Dir, err)
	}
	unlock, err := c.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	path := c.entryPath(hash)
	if t, err := readCompiled(path); err == nil {
		c.Logger.Debug("table loaded from cache", "source", src, "cache", path)
		return t, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		c.Logger.Debug("discarding unusable cache entry", "cache", path, "error", err)
	}
	return c.compileLocked(src, data, path)
}

// Compile parses the text table at src and writes its compiled form,
// replacing any existing entry. It returns the table and the entry path.
func (c *Cache) Compile(ctx context.Context, src string) (*colorname.Table, string, error) {
	data, hash, err := readSource(src)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("cannot create cache dir %s: %w", c.Dir, err)
	}
	unlock, err := c.lock(ctx)
	if err != nil {
		return nil, "", err
	}
	defer unlock()

	path := c.entryPath(hash)
	t, err := c.compileLocked(src, data, path)
	if err != nil {
		return nil, "", err
	}
	return t, path, nil
}

// Cached reports whether a compiled entry exists for src.
func (c *Cache) Cached(src string) (bool, error) {
	_, hash, err := readSource(src)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(c.entryPath(hash))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Entries lists the compiled tables in the cache directory.
func (c *Cache) Entries() ([]Entry, error) {
	des, err := os.ReadDir(c.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read cache dir %s: %w", c.Dir, err)
	}
	var out []Entry
	for _, de := range des {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, extension) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Path:    filepath.Join(c.Dir, name),
			Hash:    strings.TrimSuffix(name, extension),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}

// Prune removes every compiled entry except the ones built from the given
// sources and returns the removed paths.
func (c *Cache) Prune(ctx context.Context, keep ...string) ([]string, error) {
	keepHash := map[string]bool{}
	for _, src := range keep {
		_, hash, err := readSource(src)
		if err != nil {
			return nil, err
		}
		keepHash[hash] = true
	}
	entries, err := c.Entries()
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	unlock, err := c.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var removed []string
	for _, e := range entries {
		if keepHash[e.Hash] {
			continue
		}
		if err := removeStale(e.Path); err != nil {
			return removed, fmt.Errorf("cannot remove %s: %w", e.Path, err)
		}
		removed = append(removed, e.Path)
	}
	return removed, nil
}

// LockPath returns the path of the lock file guarding the cache.
func (c *Cache) LockPath() string {
	return filepath.Join(c.Dir, lockName)
}

func (c *Cache) entryPath(hash string) string {
	return filepath.Join(c.Dir, hash+extension)
}

func (c *Cache) compileLocked(src string, data []byte, path string) (*colorname.Table, error) {
	t, err := colorname.ReadTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	if err := writeCompiled(path, t); err != nil {
		return nil, err
	}
	c.Logger.Debug("table compiled", "source", src, "cache", path)
	return t, nil
}

// lock obtains the cache lock, polling until ctx is done or the lock
// timeout expires.
func (c *Cache) lock(ctx context.Context) (func(), error) {
	timeout := c.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	l := flock.New(c.LockPath())
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire cache lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("table cache is busy (lock: %s)", l.Path())
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func readSource(src string) ([]byte, string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", colorname.ErrTableNotFound, err)
	}
	sum := sha256.Sum256(data)
	return data, hex.EncodeToString(sum[:]), nil
}

func readCompiled(path string) (*colorname.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// writeCompiled writes t next to path and renames it into place.
func writeCompiled(path string, t *colorname.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".compile-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	if err := Encode(tmp, t); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot write compiled table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot move compiled table into place: %w", err)
	}
	return nil
}

// Encode writes the compiled form of t: the magic followed by one byte per
// bucket, zstd-compressed.
func Encode(w io.Writer, t *colorname.Table) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	buf := make([]byte, 0, len(magic)+colorname.Buckets)
	buf = append(buf, magic...)
	for _, id := range t.IDs() {
		buf = append(buf, byte(id))
	}
	if _, err := zw.Write(buf); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// Decode reads a table written by Encode. Ids above NumCategories are
// rejected as ErrCorrupt; Unknown (0) is kept.
func Decode(r io.Reader) (*colorname.Table, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	buf, err := io.ReadAll(io.LimitReader(zr, int64(len(magic)+colorname.Buckets+1)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if len(buf) < len(magic) || string(buf[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	payload := buf[len(magic):]
	if len(payload) != colorname.Buckets {
		return nil, fmt.Errorf("%w: %d buckets, want %d", ErrCorrupt, len(payload), colorname.Buckets)
	}
	ids := make([]colorname.Category, len(payload))
	for i, b := range payload {
		if b > colorname.NumCategories {
			return nil, fmt.Errorf("%w: bucket %d has id %d", ErrCorrupt, i, b)
		}
		ids[i] = colorname.Category(b)
	}
	return colorname.NewTable(ids)
}

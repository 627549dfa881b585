package tablecache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/kamusis/colorname-cli/internal/colorname"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSource writes a well-formed text table whose dominant category
// cycles through the named categories, shifted by offset.
func writeSource(t *testing.T, dir string, offset int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < colorname.Buckets; i++ {
		sb.WriteString("0 0 0")
		hot := (i + offset) % colorname.NumCategories
		for j := 0; j < colorname.NumCategories; j++ {
			if j == hot {
				sb.WriteString(" 0.9")
			} else {
				sb.WriteString(" 0.01")
			}
		}
		sb.WriteByte('\n')
	}
	p := filepath.Join(dir, fmt.Sprintf("table-%d.txt", offset))
	require.NoError(t, os.WriteFile(p, []byte(sb.String()), 0o644))
	return p
}

func TestEncodeDecode(t *testing.T) {
	ids := make([]colorname.Category, colorname.Buckets)
	for i := range ids {
		ids[i] = colorname.Category(i % (colorname.NumCategories + 1))
	}
	want, err := colorname.NewTable(ids)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, want))
	assert.Less(t, buf.Len(), colorname.Buckets)

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.IDs(), got.IDs())
}

func TestDecode_Corrupt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, colorname.NewUniformTable(colorname.Red)))
	raw := buf.Bytes()

	_, err := Decode(bytes.NewReader(raw[:len(raw)/2]))
	assert.Error(t, err)

	_, err = Decode(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(t, err)
}

// compressed zstd-encodes raw the way Encode frames a table.
func compressed(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecode_RejectsOutOfRangeIDs(t *testing.T) {
	payload := make([]byte, colorname.Buckets)
	for i := range payload {
		payload[i] = byte(i % (colorname.NumCategories + 1))
	}
	_, err := Decode(bytes.NewReader(compressed(t, append([]byte(magic), payload...))))
	require.NoError(t, err)

	payload[4096] = colorname.NumCategories + 1
	_, err = Decode(bytes.NewReader(compressed(t, append([]byte(magic), payload...))))
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "bucket 4096")

	payload[4096] = 0xff
	_, err = Decode(bytes.NewReader(compressed(t, append([]byte(magic), payload...))))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecode_WrongLength(t *testing.T) {
	_, err := Decode(bytes.NewReader(compressed(t, []byte(magic+"short"))))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode(bytes.NewReader(compressed(t, []byte("XXXX"))))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoad_RecompilesOutOfRangeEntry(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 2)
	c := New(filepath.Join(dir, "cache"))

	_, path, err := c.Compile(context.Background(), src)
	require.NoError(t, err)

	bad := make([]byte, colorname.Buckets)
	for i := range bad {
		bad[i] = 200
	}
	require.NoError(t, os.WriteFile(path, compressed(t, append([]byte(magic), bad...)), 0o644))

	tbl, err := c.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, colorname.Category(3), tbl.At(0))
	assert.NoError(t, tbl.Validate())
}

func TestLoad_CompilesThenReuses(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 0)
	c := New(filepath.Join(dir, "cache"))
	ctx := context.Background()

	cached, err := c.Cached(src)
	require.NoError(t, err)
	assert.False(t, cached)

	first, err := c.Load(ctx, src)
	require.NoError(t, err)

	cached, err = c.Cached(src)
	require.NoError(t, err)
	assert.True(t, cached)

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	second, err := c.Load(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, first.IDs(), second.IDs())

	direct, err := colorname.LoadTable(src)
	require.NoError(t, err)
	assert.Equal(t, direct.IDs(), second.IDs())
}

func TestLoad_RecompilesCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 3)
	c := New(filepath.Join(dir, "cache"))

	_, path, err := c.Compile(context.Background(), src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	tbl, err := c.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, colorname.Category(4), tbl.At(0))

	_, err = readCompiled(path)
	assert.NoError(t, err, "corrupt entry is rewritten")
}

func TestLoad_SourceErrors(t *testing.T) {
	dir := t.TempDir()
	c := New(filepath.Join(dir, "cache"))

	_, err := c.Load(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, colorname.ErrTableNotFound)
	assert.Equal(t, colorname.StatusInvalidInput, colorname.StatusOf(err))

	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(short, []byte("0 0 0 1 0 0 0 0 0 0 0 0 0 0\n"), 0o644))
	_, err = c.Load(context.Background(), short)
	assert.ErrorIs(t, err, colorname.ErrInsufficientData)

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries, "failed loads are not cached")
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, 0)
	b := writeSource(t, dir, 1)
	c := New(filepath.Join(dir, "cache"))
	ctx := context.Background()

	_, pathA, err := c.Compile(ctx, a)
	require.NoError(t, err)
	_, pathB, err := c.Compile(ctx, b)
	require.NoError(t, err)

	removed, err := c.Prune(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []string{pathB}, removed)

	assert.FileExists(t, pathA)
	assert.NoFileExists(t, pathB)
}

func TestLoad_LockTimeout(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, 0)
	c := New(filepath.Join(dir, "cache"))
	c.LockTimeout = 150 * time.Millisecond
	require.NoError(t, os.MkdirAll(c.Dir, 0o755))

	held := flock.New(c.LockPath())
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = held.Unlock() }()

	_, err = c.Load(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "busy")
}

package driver

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"pycst/internal/diag"
	"pycst/internal/project"
	"pycst/internal/source"
)

// cacheSchema растёт при любом изменении CacheEntry; записи другой схемы считаются промахом.
const cacheSchema uint16 = 1

// DiskCache stores CacheEntry values under dir/parse, keyed by project.Digest.
// Readers never see a partly written entry.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is what a parse leaves behind: the outcome and its diagnostics.
// Trees are not cached; a hit is only useful when the tree is not needed.
type CacheEntry struct {
	Schema uint16

	Path   string
	Result string // metrics.Result*
	Tokens int
	Diags  []CachedDiagnostic
}

// CachedDiagnostic is a diagnostic with file-relative offsets.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
	Notes    []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache opens $XDG_CACHE_HOME/app, falling back to ~/.cache/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, errors.Wrap(err, "cache dir")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache dir %s", dir)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) entriesDir() string { return filepath.Join(c.dir, "parse") }

// entryPath раскладывает записи по подкаталогам первого байта ключа.
func (c *DiskCache) entryPath(key project.Digest) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.entriesDir(), name[:2], name+".mp")
}

// Put stores entry under key, stamping it with the current schema.
func (c *DiskCache) Put(key project.Digest, entry *CacheEntry) error {
	if c == nil {
		return nil
	}
	entry.Schema = cacheSchema
	data, err := msgpack.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "cache encode")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Wrap(writeAtomic(c.entryPath(key), data), "cache put")
}

// Get returns the entry for key. Missing entries and entries of another
// schema are misses, not errors.
func (c *DiskCache) Get(key project.Digest) (*CacheEntry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case os.IsNotExist(err):
		return nil, false, nil
	case err != nil:
		return nil, false, errors.Wrap(err, "cache get")
	}

	entry := new(CacheEntry)
	if err := msgpack.Unmarshal(data, entry); err != nil {
		return nil, false, errors.Wrap(err, "cache decode")
	}
	if entry.Schema != cacheSchema {
		return nil, false, nil
	}
	return entry, true, nil
}

// DropAll removes every entry; the cache stays usable.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Wrap(os.RemoveAll(c.entriesDir()), "cache drop")
}

// writeAtomic пишет во временный файл рядом и переименовывает его в path.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// entryFromBag снимает диагностики в файловые смещения.
func entryFromBag(path, result string, tokens int, bag *diag.Bag) *CacheEntry {
	entry := &CacheEntry{
		Path:   path,
		Result: result,
		Tokens: tokens,
		Diags:  make([]CachedDiagnostic, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		entry.Diags = append(entry.Diags, cd)
	}
	return entry
}

// restore adds the cached diagnostics to bag, pointing them at file.
func (e *CacheEntry) restore(bag *diag.Bag, file source.FileID) {
	for _, cd := range e.Diags {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
}

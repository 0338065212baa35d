package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"bebopc/internal/schema"
	"bebopc/internal/source"
)

// Bump when CachePayload's layout changes so stale entries miss cleanly.
const diskCacheSchemaVersion uint16 = 1

// Digest is a content hash key.
type Digest [32]byte

// DiskCache keeps compact summaries of compiled schemas keyed by the
// combined content hash of their inputs. It only ever short-circuits
// work whose inputs are byte-identical; it never changes semantics.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDef is the flattened definition summary stored on disk.
type CachedDef struct {
	Kind    uint8
	Name    string
	MinSize uint32
	Opcode  uint32
	HasOp   bool
}

// CachePayload is what a cache entry holds.
type CachePayload struct {
	Schema    uint16
	Namespace string
	Defs      []CachedDef
	// Inputs records the hashed file paths for diagnostics.
	Inputs []string
}

// OpenDiskCache initializes the cache under the user cache directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// HashInputs combines the content hashes of every compiled file.
func HashInputs(fileSet *source.FileSet, count int) Digest {
	h := sha256.New()
	for i := 0; i < count; i++ {
		f := fileSet.Get(source.FileID(i))
		h.Write(f.Hash[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Summarize flattens a compiled schema into its cacheable form.
func Summarize(s *schema.Schema, inputs []string) *CachePayload {
	p := &CachePayload{
		Schema:    diskCacheSchemaVersion,
		Namespace: s.Namespace,
		Inputs:    inputs,
	}
	for _, id := range s.Order {
		def := s.Def(id)
		if def == nil || def.Poisoned {
			continue
		}
		p.Defs = append(p.Defs, CachedDef{
			Kind:    uint8(def.Kind),
			Name:    def.Name,
			MinSize: def.MinSize,
			Opcode:  def.Opcode,
			HasOp:   def.OpcodeSet,
		})
	}
	return p
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "schemas", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a payload into the cache, atomically.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get loads a payload if present and current. The bool reports a hit.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

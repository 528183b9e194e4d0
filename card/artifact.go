package card

import (
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"emperror.dev/errors"
)

// Artifact is a rendered card on local storage.
// The file is complete when an Artifact is returned; callers must call Release once done with it.
type Artifact struct {
	Path   string
	Kind   Kind
	UserID string

	// release is set for artifacts created by a Renderer, which may share Path with other live artifacts.
	release func() error

	once sync.Once
	err  error
}

// Name is the file name used for uploads.
func (a *Artifact) Name() string {
	return filepath.Base(a.Path)
}

// Open opens the card for reading.
func (a *Artifact) Open() (*os.File, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return nil, fsError("open", a.Path, err)
	}
	return f, nil
}

// Release gives up this artifact's claim on the card file.
// The file is deleted once no other artifact for the same path is still held.
// Only the first call does anything; later calls return the same result.
func (a *Artifact) Release() error {
	a.once.Do(func() {
		if a.release != nil {
			a.err = a.release()
			return
		}
		a.err = remove(a.Path)
	})
	return a.err
}

func remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fsError("remove", path, err)
	}
	return nil
}

// files counts the live artifacts per output path, so that a card shared by
// overlapping renders is only deleted by the last release.
type files struct {
	mu   sync.Mutex
	refs map[string]int
}

// commit moves the encoded temp file into place and takes a reference to path.
// Holding the lock keeps a concurrent release from deleting the new file.
func (f *files) commit(tmp, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Rename(tmp, path); err != nil {
		return fsError("rename", path, err)
	}

	if f.refs == nil {
		f.refs = make(map[string]int)
	}
	f.refs[path]++
	return nil
}

// release drops a reference to path, deleting the file when it was the last one.
func (f *files) release(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.refs[path]--
	if f.refs[path] > 0 {
		return nil
	}
	delete(f.refs, path)
	return remove(path)
}

// held returns the number of live artifacts for path.
func (f *files) held(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refs[path]
}

// encodeTemp encodes img to a uniquely named temporary file next to path and returns its name.
// The caller renames it into place, so path either doesn't exist or holds a complete image.
func encodeTemp(path string, img image.Image) (name string, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fsError("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fsError("create", dir, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(tmp, img); err != nil {
		tmp.Close()
		return "", fsError("encode", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return "", fsError("close", tmp.Name(), err)
	}
	return tmp.Name(), nil
}

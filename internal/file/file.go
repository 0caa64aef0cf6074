package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
)

type File interface {
	io.Reader
	io.Writer
	io.Closer
	Sync() error
}

// FileSystem defines methods for hierarchical file storage.
type FileSystem interface {
	// Open opens a file using specified flag.
	Open(name string, flag int) (File, error)

	// Lock locks a file for exclusive usage. If the file is locked by
	// someone else, failed with an error instead of blocking.
	Lock(name string) (io.Closer, error)

	// Exists returns true if the named file exists.
	Exists(name string) bool

	// MkdirAll creates a directory and all necessary parents.
	MkdirAll(path string) error

	// Remove removes named file or directory.
	Remove(filename string) error

	// Rename renames(moves) oldpath to newpath. If newpath already exists,
	// Rename replaces it.
	Rename(oldpath, newpath string) error
}

type osFileSystem struct{}

func (osFileSystem) Open(name string, flag int) (File, error) {
	return os.OpenFile(name, flag, 0644)
}

func (osFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (osFileSystem) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func (osFileSystem) Remove(name string) error {
	return os.Remove(name)
}

func (osFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

var DefaultFileSystem FileSystem = osFileSystem{}

// ReadFile reads the whole named file.
func ReadFile(fs FileSystem, name string) ([]byte, error) {
	f, err := fs.Open(name, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

var tempSeq atomic.Uint64

func tempName(name string) string {
	base := fmt.Sprintf(".%s.%d.%d.tmp", filepath.Base(name), os.Getpid(), tempSeq.Add(1))
	return filepath.Join(filepath.Dir(name), base)
}

// WriteFile writes data to a temporary sibling of name, syncs it and
// renames it over name, so readers never observe a partial file. Each
// call uses its own temporary file; concurrent writers of one name race
// only on the final rename.
func WriteFile(fs FileSystem, name string, data []byte) (err error) {
	tmp := tempName(name)
	f, err := fs.Open(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fs.Remove(tmp)
		}
	}()
	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return fs.Rename(tmp, name)
}

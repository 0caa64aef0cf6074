// Package options holds default values shared by the public options and
// internal stores.
package options

import (
	"github.com/kezhuw/hgmanifest/internal/compress"
	"github.com/kezhuw/hgmanifest/internal/file"
)

const (
	DefaultCacheCapacity    = 512
	DefaultFetchConcurrency = 8
	DefaultCompression      = compress.SnappyCompression
)

// DirOptions controls a directory store.
type DirOptions struct {
	Compression compress.Type
	FileSystem  file.FileSystem
	ReadOnly    bool
}

var DefaultDirOptions = DirOptions{
	Compression: DefaultCompression,
	FileSystem:  file.DefaultFileSystem,
}

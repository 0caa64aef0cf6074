package hgmanifest

import (
	"github.com/kezhuw/hgmanifest/internal/file"
)

// FileHandle is an open file obtained from a FileSystem.
type FileHandle = file.File

// FileSystem is the set of file operations a directory store performs.
// Supply one through DirStoreOptions to redirect or observe them.
type FileSystem = file.FileSystem

// DefaultFileSystem operates on the local disk.
var DefaultFileSystem FileSystem = file.DefaultFileSystem

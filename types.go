package hgmanifest

import (
	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/manifest"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
	"github.com/kezhuw/hgmanifest/internal/store"
)

type (
	// NodeHash is a 20 byte sha1 revision identifier.
	NodeHash = nodehash.NodeHash
	// EntryID identifies the node a manifest entry points to.
	EntryID = nodehash.EntryID
	// Parents holds zero, one or two parent hashes.
	Parents = nodehash.Parents

	// Path is a canonical, non-empty sequence of path elements.
	Path = mpath.Path
	// Element is one path component.
	Element = mpath.Element
	// RepoPath is a path qualified as root, directory or file.
	RepoPath = mpath.RepoPath

	EntryType = manifest.EntryType
	// Details is the (id, type) pair a manifest maps each path to.
	Details = manifest.Details

	// Blob is a revision payload: dirty, clean or extern.
	Blob = blob.Blob

	Node            = store.Node
	NodeFetcher     = store.NodeFetcher
	HistoryResolver = store.HistoryResolver
	Store           = store.Store
	Writer          = store.Writer
)

const (
	File       = manifest.File
	Executable = manifest.Executable
	Symlink    = manifest.Symlink
	Tree       = manifest.Tree
)

// NullHash is the all-zero hash standing for an absent revision.
var NullHash = nodehash.Null

// ParseHash decodes the 40 hex character form of a hash.
func ParseHash(s string) (NodeHash, error) {
	return nodehash.Parse(s)
}

// ComputeHash returns the node hash of data stored with parents.
func ComputeHash(parents Parents, data []byte) NodeHash {
	return nodehash.Compute(parents, data)
}

// NewParents builds Parents from optional hashes, dropping nil and null
// ones.
func NewParents(p1, p2 *NodeHash) Parents {
	return nodehash.NewParents(p1, p2)
}

// NewPath parses a slash separated path. Empty components are dropped.
func NewPath(p string) (Path, error) {
	return mpath.New([]byte(p))
}

func RootPath() RepoPath {
	return mpath.RootPath()
}

// DirPath qualifies p as a directory. An empty p is the root.
func DirPath(p Path) RepoPath {
	return mpath.DirPath(p)
}

func FilePath(p Path) RepoPath {
	return mpath.FilePath(p)
}

func NewDetails(id EntryID, typ EntryType) Details {
	return manifest.NewDetails(id, typ)
}

// NewDirtyBlob wraps data that may still carry filelog metadata.
func NewDirtyBlob(data []byte) Blob {
	return blob.NewDirty(data)
}

func NewCleanBlob(data []byte, hash NodeHash) Blob {
	return blob.NewClean(data, hash)
}

// NewExternBlob stands for a payload kept outside of the store.
func NewExternBlob(hash NodeHash) Blob {
	return blob.NewExtern(hash)
}

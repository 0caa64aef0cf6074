package hgmanifest

import (
	"fmt"

	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

// Content is the resolved form of an entry, one of: a file or executable
// blob, a symlink target, or a nested manifest.
type Content struct {
	typ    EntryType
	blob   Blob
	target mpath.Path
	tree   *Manifest

	copyPath mpath.Path
	copyRev  nodehash.NodeHash
	copied   bool
}

func (c *Content) Type() EntryType {
	return c.typ
}

// Blob returns the payload of file and executable content.
func (c *Content) Blob() (Blob, bool) {
	if c.typ != File && c.typ != Executable {
		return Blob{}, false
	}
	return c.blob, true
}

// CopySource returns the path and revision this file was copied from, as
// recorded in its filelog metadata.
func (c *Content) CopySource() (Path, NodeHash, bool) {
	return c.copyPath, c.copyRev, c.copied
}

// copySource reads "copy" and "copyrev" from the metadata of a dirty
// blob. Incomplete or malformed copy metadata counts as absent.
func copySource(b Blob) (mpath.Path, nodehash.NodeHash, bool) {
	data, ok := b.Bytes()
	if !ok || !b.IsDirty() {
		return mpath.Path{}, nodehash.Null, false
	}
	meta, n := blob.ExtractMeta(data)
	if n == 0 {
		return mpath.Path{}, nodehash.Null, false
	}
	kv := blob.ParseMeta(meta)
	path, err := mpath.New([]byte(kv["copy"]))
	if err != nil {
		return mpath.Path{}, nodehash.Null, false
	}
	rev, err := nodehash.Parse(kv["copyrev"])
	if err != nil {
		return mpath.Path{}, nodehash.Null, false
	}
	return path, rev, true
}

// Symlink returns the target of symlink content.
func (c *Content) Symlink() (Path, bool) {
	if c.typ != Symlink {
		return Path{}, false
	}
	return c.target, true
}

// Tree returns the manifest of tree content.
func (c *Content) Tree() (*Manifest, bool) {
	if c.typ != Tree {
		return nil, false
	}
	return c.tree, true
}

// Size returns the length in bytes of file data or of the symlink target.
// Trees and extern blobs have no known size.
func (c *Content) Size() (int, bool, error) {
	switch c.typ {
	case File, Executable:
		n, ok := c.blob.Size()
		return n, ok, nil
	case Symlink:
		return len(c.target.String()), true, nil
	}
	return 0, false, nil
}

func (c *Content) String() string {
	switch c.typ {
	case File, Executable:
		n, ok := c.blob.Size()
		if !ok {
			return fmt.Sprintf("%s(extern)", c.typ)
		}
		return fmt.Sprintf("%s(%d bytes)", c.typ, n)
	case Symlink:
		return fmt.Sprintf("%s(%s)", c.typ, c.target)
	}
	return fmt.Sprintf("%s(%d entries)", c.typ, c.tree.Len())
}

package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/file"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
	"github.com/kezhuw/hgmanifest/internal/options"
)

const (
	lockFileName = "LOCK"
	nodesDir     = "nodes"
	historyDir   = "history"
)

// DirStore keeps one record file per node under a directory:
//
//	LOCK
//	nodes/<2 hex>/<38 hex>
//	history/<sha1 of path, hex>/<40 hex>
//
// Writable stores hold LOCK until closed. Read only stores take no lock
// and may be opened by many processes.
type DirStore struct {
	dir  string
	opts options.DirOptions
	lock io.Closer
}

var (
	_ Store  = (*DirStore)(nil)
	_ Writer = (*DirStore)(nil)
)

// OpenDir opens the store under dir, creating dir unless opts.ReadOnly.
// A nil opts means options.DefaultDirOptions.
func OpenDir(dir string, opts *options.DirOptions) (*DirStore, error) {
	o := options.DefaultDirOptions
	if opts != nil {
		o = *opts
		if o.FileSystem == nil {
			o.FileSystem = file.DefaultFileSystem
		}
	}
	fs := o.FileSystem
	s := &DirStore{dir: dir, opts: o}
	if o.ReadOnly {
		if !fs.Exists(dir) {
			return nil, errors.Errorf("hgmanifest: store directory %s does not exist", dir)
		}
		return s, nil
	}
	if err := fs.MkdirAll(dir); err != nil {
		return nil, err
	}
	lock, err := fs.Lock(filepath.Join(dir, lockFileName))
	if err != nil {
		return nil, errors.Wrapf(err, "lock store %s", dir)
	}
	s.lock = lock
	return s, nil
}

func (s *DirStore) nodePath(id nodehash.NodeHash) string {
	name := id.String()
	return filepath.Join(s.dir, nodesDir, name[:2], name[2:])
}

func (s *DirStore) historyPath(path mpath.RepoPath, id nodehash.NodeHash) string {
	sum := sha1.Sum([]byte(path.String()))
	return filepath.Join(s.dir, historyDir, hex.EncodeToString(sum[:]), id.String())
}

func (s *DirStore) read(name string, id nodehash.NodeHash) (*Node, bool, error) {
	b, err := file.ReadFile(s.opts.FileSystem, name)
	switch {
	case os.IsNotExist(err):
		return nil, false, nil
	case err != nil:
		return nil, false, errors.Wrapf(err, "read node %s", id)
	}
	node, err := decodeRecord(id, b)
	return node, err == nil, err
}

func (s *DirStore) write(name string, node *Node) error {
	if s.opts.ReadOnly {
		return errors.ErrStoreReadOnly
	}
	record, err := encodeRecord(nil, s.opts.Compression, node)
	if err != nil {
		return err
	}
	if err := s.opts.FileSystem.MkdirAll(filepath.Dir(name)); err != nil {
		return err
	}
	return file.WriteFile(s.opts.FileSystem, name, record)
}

func (s *DirStore) FetchNode(ctx context.Context, id nodehash.NodeHash) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node, ok, err := s.read(s.nodePath(id), id)
	if err == nil && !ok {
		err = errors.Wrapf(errors.ErrNodeNotFound, "node %s", id)
	}
	return node, err
}

func (s *DirStore) ResolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node, ok, err := s.read(s.historyPath(path, id), id)
	if err == nil && !ok {
		err = errors.Wrapf(errors.ErrHistoryNotFound, "%s node %s", path, id)
	}
	return node, err
}

// Add writes node under id and records it in history under path.
func (s *DirStore) Add(path mpath.RepoPath, id nodehash.NodeHash, node *Node) error {
	if err := s.write(s.nodePath(id), node); err != nil {
		return err
	}
	return s.write(s.historyPath(path, id), &Node{Parents: node.Parents, Blob: blob.NewExtern(id)})
}

func (s *DirStore) PutNode(ctx context.Context, path mpath.RepoPath, parents nodehash.Parents, data []byte) (nodehash.NodeHash, error) {
	if err := ctx.Err(); err != nil {
		return nodehash.Null, err
	}
	if s.opts.ReadOnly {
		return nodehash.Null, errors.ErrStoreReadOnly
	}
	id := nodehash.Compute(parents, data)
	// Ids are derived from parents and data, so existing records are equal.
	fs := s.opts.FileSystem
	if fs.Exists(s.nodePath(id)) && fs.Exists(s.historyPath(path, id)) {
		return id, nil
	}
	return id, s.Add(path, id, NewNode(parents, data))
}

// Close releases the directory lock.
func (s *DirStore) Close() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.Close()
	s.lock = nil
	return err
}

// Package store defines where manifest and file nodes come from.
//
// A Store answers two questions: what node has this hash, and what are the
// parents of this hash when reached through this path. Implementations
// return ErrNodeNotFound and ErrHistoryNotFound for absent keys and must be
// safe for concurrent use.
package store

import (
	"context"

	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

// Node is a revision as held by a store: its payload and parents.
type Node struct {
	Blob    blob.Blob
	Parents nodehash.Parents
}

// NewNode returns a node holding data as stored in a revlog, filelog
// metadata included.
func NewNode(parents nodehash.Parents, data []byte) *Node {
	return &Node{Blob: blob.NewDirty(data), Parents: parents}
}

type NodeFetcher interface {
	FetchNode(ctx context.Context, id nodehash.NodeHash) (*Node, error)
}

type HistoryResolver interface {
	// ResolveHistory returns the node id reached through path. Only Parents
	// of the returned node are guaranteed; its blob may be extern.
	ResolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*Node, error)
}

type Store interface {
	NodeFetcher
	HistoryResolver
}

// Writer inserts nodes. The returned hash is computed from parents and
// data, and the node is recorded in history under path.
type Writer interface {
	PutNode(ctx context.Context, path mpath.RepoPath, parents nodehash.Parents, data []byte) (nodehash.NodeHash, error)
}

type composed struct {
	NodeFetcher
	HistoryResolver
}

// Compose builds a Store serving nodes from fetcher and history from
// history.
func Compose(fetcher NodeFetcher, history HistoryResolver) Store {
	return composed{NodeFetcher: fetcher, HistoryResolver: history}
}

// HistoryKey identifies a history entry. It owns its path, so it is safe
// to keep as map key after the caller's path is gone.
type HistoryKey struct {
	Path mpath.RepoPath
	Node nodehash.NodeHash
}

func (k HistoryKey) String() string {
	return k.Path.String() + "@" + k.Node.String()
}

package store

import (
	"context"
	"sync"

	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

// MemoryStore keeps nodes and history in maps.
type MemoryStore struct {
	mu      sync.RWMutex
	nodes   map[nodehash.NodeHash]*Node
	history map[HistoryKey]nodehash.Parents
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Writer = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes:   make(map[nodehash.NodeHash]*Node),
		history: make(map[HistoryKey]nodehash.Parents),
	}
}

// Add records node under id and in history under path. It does not check
// that id is the hash of node, which lets fixtures use arbitrary ids.
func (s *MemoryStore) Add(path mpath.RepoPath, id nodehash.NodeHash, node *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id] = node
	s.history[HistoryKey{Path: path, Node: id}] = node.Parents
}

func (s *MemoryStore) PutNode(ctx context.Context, path mpath.RepoPath, parents nodehash.Parents, data []byte) (nodehash.NodeHash, error) {
	id := nodehash.Compute(parents, data)
	s.Add(path, id, NewNode(parents, append([]byte(nil), data...)))
	return id, nil
}

func (s *MemoryStore) FetchNode(ctx context.Context, id nodehash.NodeHash) (*Node, error) {
	s.mu.RLock()
	node, ok := s.nodes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrNodeNotFound, "node %s", id)
	}
	return node, nil
}

func (s *MemoryStore) ResolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*Node, error) {
	s.mu.RLock()
	parents, ok := s.history[HistoryKey{Path: path, Node: id}]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrHistoryNotFound, "%s node %s", path, id)
	}
	return &Node{Blob: blob.NewExtern(id), Parents: parents}, nil
}

// Len returns the number of stored nodes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

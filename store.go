package hgmanifest

import (
	"github.com/kezhuw/hgmanifest/internal/store"
)

// MemoryStore is a Store and Writer holding nodes in memory.
type MemoryStore = store.MemoryStore

// DirStore is a Store and Writer keeping one checksummed file per node
// under a directory.
type DirStore = store.DirStore

func NewMemoryStore() *MemoryStore {
	return store.NewMemoryStore()
}

// OpenDirStore opens, creating if needed, the store under dir. Unless
// opened read only, the store is locked against other processes until
// closed.
func OpenDirStore(dir string, opts *DirStoreOptions) (*DirStore, error) {
	return store.OpenDir(dir, convertDirStoreOptions(opts))
}

// ComposeStore serves nodes from fetcher and history from history, for
// deployments keeping them apart.
func ComposeStore(fetcher NodeFetcher, history HistoryResolver) Store {
	return store.Compose(fetcher, history)
}

// NewNode returns a node holding data as stored, filelog metadata included.
func NewNode(parents Parents, data []byte) *Node {
	return store.NewNode(parents, data)
}

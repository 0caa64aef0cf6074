// Package filenodes resolves node history from a SQL filenodes table.
package filenodes

import (
	"context"
	"crypto/sha1"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
	"github.com/kezhuw/hgmanifest/internal/store"
)

// CreateTable sets up the table holding one row per (path, node) with the
// node's parents.
func CreateTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS filenodes (
	path_hash BYTEA NOT NULL,
	is_tree BOOLEAN NOT NULL,
	path BYTEA NOT NULL,
	filenode BYTEA NOT NULL,
	p1 BYTEA,
	p2 BYTEA,
	PRIMARY KEY (path_hash, is_tree, filenode)
);
`)
	return errors.Wrap(err, "create filenodes table")
}

type row struct {
	Filenode nodehash.NodeHash  `db:"filenode"`
	P1       *nodehash.NodeHash `db:"p1"`
	P2       *nodehash.NodeHash `db:"p2"`
}

// Resolver is a store.HistoryResolver backed by a filenodes table.
type Resolver struct {
	db *sqlx.DB
}

var _ store.HistoryResolver = (*Resolver)(nil)

func New(db *sqlx.DB) *Resolver {
	return &Resolver{db: db}
}

// Open connects to a postgres database given by dsn.
func Open(ctx context.Context, dsn string) (*Resolver, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect filenodes database")
	}
	return New(db), nil
}

func (r *Resolver) Close() error {
	return r.db.Close()
}

// key returns the hashed path and tree flag rows of path are stored under.
// The root is stored as a tree with an empty path.
func key(path mpath.RepoPath) ([]byte, bool, []byte) {
	p := path.Path().Bytes()
	sum := sha1.Sum(p)
	return sum[:], path.Kind() != mpath.File, p
}

func (r *Resolver) ResolveHistory(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash) (*store.Node, error) {
	pathHash, isTree, _ := key(path)
	var res row
	err := r.db.GetContext(ctx, &res, r.db.Rebind(`
SELECT filenode, p1, p2 FROM filenodes
WHERE path_hash = ? AND is_tree = ? AND filenode = ?`), pathHash, isTree, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, errors.Wrapf(errors.ErrHistoryNotFound, "%s node %s", path, id)
	case err != nil:
		return nil, errors.Wrapf(err, "query filenode %s node %s", path, id)
	}
	return &store.Node{
		Blob:    blob.NewExtern(res.Filenode),
		Parents: nodehash.NewParents(res.P1, res.P2),
	}, nil
}

// Insert records parents of id reached through path. Recording the same
// row twice is a no-op.
func (r *Resolver) Insert(ctx context.Context, path mpath.RepoPath, id nodehash.NodeHash, parents nodehash.Parents) error {
	pathHash, isTree, p := key(path)
	var p1, p2 *nodehash.NodeHash
	if h, ok := parents.Get(0); ok {
		p1 = &h
	}
	if h, ok := parents.Get(1); ok {
		p2 = &h
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO filenodes (path_hash, is_tree, path, filenode, p1, p2)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT DO NOTHING`), pathHash, isTree, p, id, p1, p2)
	return errors.Wrapf(err, "insert filenode %s node %s", path, id)
}

package filenodes_test

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/kezhuw/hgmanifest/internal/blob"
	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/filenodes"
	"github.com/kezhuw/hgmanifest/internal/mpath"
	"github.com/kezhuw/hgmanifest/internal/nodehash"
)

var (
	hashA = nodehash.MustParse("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	hashB = nodehash.MustParse("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	hashC = nodehash.MustParse("cccccccccccccccccccccccccccccccccccccccc")
)

func newResolver(t *testing.T) (*filenodes.Resolver, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	r := filenodes.New(sqlx.NewDb(db, "postgres"))
	t.Cleanup(func() {
		mock.ExpectClose()
		require.NoError(t, r.Close())
		require.NoError(t, mock.ExpectationsWereMet())
	})
	return r, mock
}

func pathHash(p string) []byte {
	sum := sha1.Sum([]byte(p))
	return sum[:]
}

func TestResolveHistory(t *testing.T) {
	r, mock := newResolver(t)
	path := mpath.FilePath(mpath.MustNew("dir/file"))

	mock.ExpectQuery(`SELECT filenode, p1, p2 FROM filenodes WHERE path_hash = \$1 AND is_tree = \$2 AND filenode = \$3`).
		WithArgs(pathHash("dir/file"), false, hashA).
		WillReturnRows(sqlmock.NewRows([]string{"filenode", "p1", "p2"}).AddRow(hashA[:], hashB[:], nil))

	node, err := r.ResolveHistory(context.Background(), path, hashA)
	require.NoError(t, err)
	require.Equal(t, nodehash.OneParent(hashB), node.Parents)
	require.Equal(t, blob.Extern, node.Blob.Kind())
	id, ok := node.Blob.Hash()
	require.True(t, ok)
	require.Equal(t, hashA, id)
}

func TestResolveHistoryTwoParents(t *testing.T) {
	r, mock := newResolver(t)

	mock.ExpectQuery(`SELECT filenode, p1, p2 FROM filenodes`).
		WithArgs(pathHash(""), true, hashA).
		WillReturnRows(sqlmock.NewRows([]string{"filenode", "p1", "p2"}).AddRow(hashA[:], hashB[:], hashC[:]))

	node, err := r.ResolveHistory(context.Background(), mpath.RootPath(), hashA)
	require.NoError(t, err)
	require.Equal(t, nodehash.TwoParents(hashB, hashC), node.Parents)
}

func TestResolveHistoryNotFound(t *testing.T) {
	r, mock := newResolver(t)

	mock.ExpectQuery(`SELECT filenode, p1, p2 FROM filenodes`).
		WithArgs(pathHash("dir"), true, hashA).
		WillReturnError(sql.ErrNoRows)

	_, err := r.ResolveHistory(context.Background(), mpath.DirPath(mpath.MustNew("dir")), hashA)
	require.ErrorIs(t, err, errors.ErrHistoryNotFound)
}

func TestResolveHistoryQueryError(t *testing.T) {
	r, mock := newResolver(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(`SELECT filenode, p1, p2 FROM filenodes`).WillReturnError(boom)

	_, err := r.ResolveHistory(context.Background(), mpath.FilePath(mpath.MustNew("f")), hashA)
	require.ErrorIs(t, err, boom)
	require.False(t, errors.IsNotFound(err))
}

func TestInsert(t *testing.T) {
	r, mock := newResolver(t)

	mock.ExpectExec(`INSERT INTO filenodes \(path_hash, is_tree, path, filenode, p1, p2\)`).
		WithArgs(pathHash("a/b"), false, []byte("a/b"), hashA, hashB, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.Insert(context.Background(), mpath.FilePath(mpath.MustNew("a/b")), hashA, nodehash.OneParent(hashB))
	require.NoError(t, err)
}

func TestCreateTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS filenodes`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, filenodes.CreateTable(context.Background(), sqlx.NewDb(db, "postgres")))
	require.NoError(t, mock.ExpectationsWereMet())
}

package hgmanifest

import (
	"context"

	"github.com/kezhuw/hgmanifest/internal/errors"
	"github.com/kezhuw/hgmanifest/internal/manifest"
	"github.com/kezhuw/hgmanifest/internal/mpath"
)

// Entry is one manifest item bound to the repo it resolves against.
// Accessors are pure; Parents, RawContent, Content and Size consult the
// store.
type Entry struct {
	repo    *Repo
	path    mpath.RepoPath
	name    mpath.Element
	details manifest.Details
}

func newEntry(repo *Repo, path mpath.Path, details manifest.Details) *Entry {
	e := &Entry{repo: repo, details: details}
	e.name, _ = path.Basename()
	if details.IsTree() {
		e.path = mpath.DirPath(path)
	} else {
		e.path = mpath.FilePath(path)
	}
	return e
}

func (e *Entry) Type() EntryType {
	return e.details.Type
}

func (e *Entry) Hash() EntryID {
	return e.details.ID
}

// Name returns the last path element, false for the root entry.
func (e *Entry) Name() (Element, bool) {
	return e.name, e.name != ""
}

func (e *Entry) Path() RepoPath {
	return e.path
}

func (e *Entry) Details() Details {
	return e.details
}

func (e *Entry) fail(err error) error {
	e.repo.logger.Warnf("hgmanifest: resolve %s node %s: %s", e.path, e.details.ID, err)
	return &errors.ResolutionError{Path: e.path.String(), Hash: e.details.ID.String(), Err: err}
}

// Parents returns the parents of the entry's node as recorded in history
// under the entry's path.
func (e *Entry) Parents(ctx context.Context) (Parents, error) {
	node, err := e.repo.resolveHistory(ctx, e.path, e.details.ID.NodeHash())
	if err != nil {
		return Parents{}, e.fail(err)
	}
	return node.Parents, nil
}

func (e *Entry) fetch(ctx context.Context) (*Node, error) {
	node, err := e.repo.fetchNode(ctx, e.details.ID.NodeHash())
	if err != nil {
		return nil, e.fail(err)
	}
	return node, nil
}

// RawContent returns the node payload. Filelog metadata is stripped for
// everything but trees.
func (e *Entry) RawContent(ctx context.Context) (Blob, error) {
	node, err := e.fetch(ctx)
	if err != nil {
		return Blob{}, err
	}
	if e.details.IsTree() {
		return node.Blob, nil
	}
	return node.Blob.StripMetadata(), nil
}

// Content interprets the node payload according to the entry type. Tree
// content is a manifest whose paths carry this entry's path as prefix.
func (e *Entry) Content(ctx context.Context) (*Content, error) {
	node, err := e.fetch(ctx)
	if err != nil {
		return nil, err
	}
	content, err := e.interpret(node)
	if err != nil {
		return nil, e.fail(err)
	}
	return content, nil
}

func (e *Entry) interpret(node *Node) (*Content, error) {
	typ := e.details.Type
	switch typ {
	case manifest.File, manifest.Executable:
		c := &Content{typ: typ, blob: node.Blob.StripMetadata()}
		c.copyPath, c.copyRev, c.copied = copySource(node.Blob)
		return c, nil
	case manifest.Symlink:
		data, ok := node.Blob.StripMetadata().Bytes()
		if !ok {
			return nil, errors.Wrap(errors.ErrMissingBlobData, "symlink")
		}
		target, err := mpath.New(data)
		if err != nil {
			return nil, errors.Wrap(err, "symlink target")
		}
		return &Content{typ: typ, target: target}, nil
	case manifest.Tree:
		data, ok := node.Blob.Bytes()
		if !ok {
			return nil, errors.Wrap(errors.ErrMissingBlobData, "tree")
		}
		body, err := e.repo.parseBody(data, e.path.Path())
		if err != nil {
			return nil, err
		}
		return &Content{typ: typ, tree: &Manifest{repo: e.repo, parents: node.Parents, body: body}}, nil
	}
	return nil, errors.Errorf("hgmanifest: unknown entry type %d", int(typ))
}

// Size returns the content length in bytes. The boolean is false for trees
// and for payloads the store does not carry.
func (e *Entry) Size(ctx context.Context) (int, bool, error) {
	content, err := e.Content(ctx)
	if err != nil {
		return 0, false, err
	}
	return content.Size()
}

// Package hgmanifest reads flat Mercurial manifests and resolves their
// entries lazily against a content store.
//
// A manifest is a sequence of lines
//
//	<path>\0<40 hex node hash>[<flag>]\n
//
// sorted by path bytes, where flag is empty for regular files, 'x' for
// executables, 'l' for symlinks and 't' for nested manifests. Parse and
// Generate convert between this form and Manifest. A Manifest obtained
// from a Repo can additionally resolve its entries: Entry.Content fetches
// the entry's node and interprets it as file data, a symlink target or a
// nested Manifest whose paths carry the tree entry's path as prefix.
package hgmanifest

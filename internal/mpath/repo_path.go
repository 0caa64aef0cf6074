package mpath

import "fmt"

// Kind tells what a RepoPath points at.
type Kind int

const (
	Root Kind = iota
	Dir
	File
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "root"
	case Dir:
		return "dir"
	case File:
		return "file"
	}
	return fmt.Sprintf("unknown kind: %d", int(k))
}

// RepoPath is a path disambiguated as the root, a directory or a file.
type RepoPath struct {
	kind Kind
	path Path
}

func RootPath() RepoPath {
	return RepoPath{kind: Root}
}

func DirPath(p Path) RepoPath {
	if p.IsEmpty() {
		return RootPath()
	}
	return RepoPath{kind: Dir, path: p}
}

func FilePath(p Path) RepoPath {
	return RepoPath{kind: File, path: p}
}

func (r RepoPath) Kind() Kind {
	return r.kind
}

// Path returns the underlying path, which is empty for the root.
func (r RepoPath) Path() Path {
	return r.path
}

func (r RepoPath) IsRoot() bool {
	return r.kind == Root
}

func (r RepoPath) String() string {
	if r.kind == Root {
		return "root"
	}
	return fmt.Sprintf("%s:%s", r.kind, r.path)
}

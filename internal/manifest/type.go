package manifest

import "fmt"

// EntryType tells what a manifest entry points at and how its content is
// interpreted.
type EntryType int

const (
	// File is a regular file. It is encoded with no flag.
	File EntryType = iota
	// Executable is a file with executable bit, flag 'x'.
	Executable
	// Symlink is a symbolic link whose content is target path, flag 'l'.
	Symlink
	// Tree is a nested manifest, flag 't'.
	Tree
)

// Flag returns the on-wire flag of t, empty for File.
func (t EntryType) Flag() string {
	switch t {
	case Executable:
		return "x"
	case Symlink:
		return "l"
	case Tree:
		return "t"
	}
	return ""
}

func (t EntryType) String() string {
	switch t {
	case File:
		return "file"
	case Executable:
		return "executable"
	case Symlink:
		return "symlink"
	case Tree:
		return "tree"
	}
	return fmt.Sprintf("unknown entry type: %d", int(t))
}

func typeFromFlag(flag byte) (EntryType, bool) {
	switch flag {
	case 'x':
		return Executable, true
	case 'l':
		return Symlink, true
	case 't':
		return Tree, true
	}
	return File, false
}

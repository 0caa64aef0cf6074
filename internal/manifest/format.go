// Package manifest implements the flat manifest format.
//
// A manifest lists every path of a directory snapshot with the revision
// hash of the content occupying it. Each entry is a line:
//
//	<path> NUL <40 hex characters> [<flag>] LF
//
// where flag is 'x' for executables, 'l' for symbolic links, 't' for
// nested manifests and absent for regular files. Paths are non-empty
// byte strings without NUL, ordered by raw bytes. The encoded manifest is
// hashed to identify it, so its bytes must be reproducible exactly: lines
// appear in strictly increasing path order with no duplicates.
//
// A nested manifest ('t') lists paths relative to the directory it
// describes. Parsing it with that directory as prefix yields full paths.
package manifest

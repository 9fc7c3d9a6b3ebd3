// Package fsprobe enumerates filesystem objects for checking engines
// that verify file-based rules (permissions, presence, content refs).
// It is a collaborator for engine implementations; the evaluation core
// never touches the filesystem itself.
package fsprobe

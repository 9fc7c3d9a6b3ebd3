package fsprobe

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Direction controls how List recurses from the start directory.
type Direction string

const (
	// DirectionNone enumerates only the start directory.
	DirectionNone Direction = "none"

	// DirectionDown descends into subdirectories.
	DirectionDown Direction = "down"

	// DirectionUp walks parent directories toward the filesystem root.
	DirectionUp Direction = "up"
)

// Behaviors tunes an enumeration pass.
type Behaviors struct {
	// MaxDepth bounds recursion depth relative to the start directory.
	// Zero means the start directory only; -1 means unlimited.
	MaxDepth int

	// Direction selects the recursion direction. Default: none.
	Direction Direction
}

// DefaultBehaviors returns the default enumeration behaviors.
func DefaultBehaviors() Behaviors {
	return Behaviors{MaxDepth: -1, Direction: DirectionNone}
}

// Entry describes one matched file.
type Entry struct {
	// Path is the full path to the file.
	Path string

	// Dir is the containing directory.
	Dir string

	// Name is the base name.
	Name string

	// Mode is the file mode.
	Mode fs.FileMode

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time.
	ModTime time.Time
}

// Lister enumerates files for checking engines. Implementations must be
// safe for concurrent use.
type Lister interface {
	// List returns files under dir whose base name matches namePattern
	// (a filepath.Match glob; empty matches everything), honoring the
	// recursion behaviors. Results come back sorted by path.
	List(ctx context.Context, dir, namePattern string, b Behaviors) ([]Entry, error)
}

// WalkLister implements Lister on the local filesystem via
// filepath.WalkDir. Symbolic links to directories are not followed.
type WalkLister struct {
	logger *slog.Logger
}

// NewWalkLister creates a filesystem-backed lister.
func NewWalkLister(logger *slog.Logger) *WalkLister {
	if logger == nil {
		logger = slog.Default()
	}
	return &WalkLister{logger: logger.With("component", "fsprobe")}
}

// List enumerates matching files.
func (l *WalkLister) List(ctx context.Context, dir, namePattern string, b Behaviors) ([]Entry, error) {
	if namePattern != "" {
		if _, err := filepath.Match(namePattern, ""); err != nil {
			return nil, fmt.Errorf("fsprobe: bad name pattern %q: %w", namePattern, err)
		}
	}
	if b.Direction == "" {
		b.Direction = DirectionNone
	}

	var entries []Entry
	var err error
	switch b.Direction {
	case DirectionNone:
		entries, err = l.listDir(ctx, dir, namePattern)
	case DirectionDown:
		entries, err = l.walkDown(ctx, dir, namePattern, b.MaxDepth)
	case DirectionUp:
		entries, err = l.walkUp(ctx, dir, namePattern, b.MaxDepth)
	default:
		return nil, fmt.Errorf("fsprobe: unknown recurse direction %q", b.Direction)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	l.logger.Debug("file enumeration finished",
		"dir", dir,
		"pattern", namePattern,
		"direction", string(b.Direction),
		"matches", len(entries),
	)
	return entries, nil
}

// listDir enumerates the immediate children of one directory.
func (l *WalkLister) listDir(ctx context.Context, dir, namePattern string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fsprobe: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if matched := match(namePattern, de.Name()); !matched {
			continue
		}
		entry, err := toEntry(filepath.Join(dir, de.Name()))
		if err != nil {
			// File vanished between listing and stat.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l *WalkLister) walkDown(ctx context.Context, dir, namePattern string, maxDepth int) ([]Entry, error) {
	root := filepath.Clean(dir)
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			l.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if maxDepth >= 0 && depth(root, path) > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if maxDepth >= 0 && depth(root, filepath.Dir(path)) > maxDepth {
			return nil
		}
		if !match(namePattern, d.Name()) {
			return nil
		}
		entry, statErr := toEntry(path)
		if statErr != nil {
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (l *WalkLister) walkUp(ctx context.Context, dir, namePattern string, maxDepth int) ([]Entry, error) {
	var entries []Entry
	current := filepath.Clean(dir)
	for level := 0; ; level++ {
		if maxDepth >= 0 && level > maxDepth {
			break
		}
		found, err := l.listDir(ctx, current, namePattern)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return entries, nil
}

// depth counts path separators between root and path.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func match(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}

func toEntry(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Path:    path,
		Dir:     filepath.Dir(path),
		Name:    filepath.Base(path),
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

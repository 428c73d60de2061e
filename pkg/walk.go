package kushn

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Policy selects how the walk reacts to a directory entry that cannot be
// read (permission denied, broken symlink).
type Policy int

const (
	// PolicyStrict aborts the whole traversal on the first unreadable
	// directory entry.
	PolicyStrict Policy = iota
	// PolicyLenient reports the entry on stderr and keeps walking.
	PolicyLenient
)

// WalkOptions configures a single traversal.
type WalkOptions struct {
	Policy    Policy
	Algorithm *Algorithm // digest algorithm; nil means SHA-256
}

// dirIdentity identifies a directory by device and inode so the walk can
// follow symlinks without descending into a directory twice. A directory
// reachable through two links is recorded once, under the relative path the
// walk saw first, and a symlink cycle terminates instead of looping.
type dirIdentity struct {
	dev uint64
	ino uint64
}

type walker struct {
	root    string
	matcher *Matcher
	policy  Policy
	alg     *Algorithm
	visited map[dirIdentity]struct{}
	list    *entryList
}

// Walk produces one FileEntry per non-excluded regular file reachable from
// root, in relative-path order. Symbolic links are followed for both files
// and directories. Relative paths are computed against root, never against
// the process working directory, and stored slash-normalised.
//
// An excluded directory prunes its whole subtree without visiting the
// descendants. A digest failure on an individual file always aborts, so a
// file that disappears mid-walk is reported rather than silently missing
// from the manifest.
func Walk(root string, matcher *Matcher, opts WalkOptions) ([]FileEntry, error) {
	if matcher == nil {
		matcher = &Matcher{}
	}
	alg := opts.Algorithm
	if alg == nil {
		alg = DefaultAlgorithm()
	}

	rootInfo, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTraversal, root, err)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTraversal, root)
	}

	w := &walker{
		root:    root,
		matcher: matcher,
		policy:  opts.Policy,
		alg:     alg,
		visited: make(map[dirIdentity]struct{}),
		list:    newEntryList(),
	}
	if err := w.walkDir(root, "", rootInfo); err != nil {
		return nil, err
	}

	VerboseLog(1, "walk of %s produced %d entries", root, w.list.length())
	return w.list.entries(), nil
}

func (w *walker) walkDir(dir, rel string, info os.FileInfo) error {
	if id, ok := identity(info); ok {
		if _, seen := w.visited[id]; seen {
			VerboseLog(2, "already visited %s, skipping", dir)
			return nil
		}
		w.visited[id] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return w.entryFailure(dir, err)
	}

	// os.ReadDir returns entries sorted by filename, which fixes both the
	// sibling visit order and the manifest order.
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		childRel := entry.Name()
		if rel != "" {
			childRel = rel + "/" + entry.Name()
		}

		// os.Stat follows symlinks, so a link to a directory walks like a
		// directory and a link to a file hashes the target content.
		childInfo, err := os.Stat(child)
		if err != nil {
			if failErr := w.entryFailure(child, err); failErr != nil {
				return failErr
			}
			continue
		}

		switch {
		case childInfo.IsDir():
			if w.matcher.ExcludesDir(childRel) {
				VerboseLog(2, "pruning excluded directory %s", childRel)
				continue
			}
			if err := w.walkDir(child, childRel, childInfo); err != nil {
				return err
			}
		case childInfo.Mode().IsRegular():
			if w.matcher.ExcludesFile(childRel) {
				VerboseLog(2, "skipping excluded file %s", childRel)
				continue
			}
			hash, err := HashFileHex(child, w.alg)
			if err != nil {
				return err
			}
			if !w.list.insert(FileEntry{Path: childRel, Hash: hash}) {
				return fmt.Errorf("%w: %s", ErrDuplicatePath, childRel)
			}
			if IsDebugEnabled("walk") {
				fmt.Fprintf(os.Stderr, "[WALK] hashed %s\n", childRel)
			}
		default:
			// Sockets, fifos and devices are not manifest material.
			VerboseLog(3, "skipping non-regular file %s", childRel)
		}
	}

	return nil
}

// entryFailure applies the traversal failure policy: strict aborts, lenient
// reports on stderr and continues. Never silent either way.
func (w *walker) entryFailure(path string, err error) error {
	if w.policy == PolicyLenient {
		fmt.Fprintf(os.Stderr, "kushn: skipping %s: %v\n", path, err)
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrTraversal, path, err)
}

// identity returns the device/inode pair for a stat result. FileInfo values
// without an underlying Stat_t get no identity and are never deduplicated.
func identity(info os.FileInfo) (dirIdentity, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return dirIdentity{}, false
	}
	return dirIdentity{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}

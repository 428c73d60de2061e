package kushn

import (
	"strings"

	zcsl "github.com/mattkeenan/zerocopyskiplist"
)

// FileEntry is one manifest record. Path is a slash-normalised path relative
// to the processed root, never absolute. Hash is the lowercase hex digest of
// the file's raw bytes at read time. Field order here fixes the key order in
// the serialized manifest: path before hash.
type FileEntry struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
}

const manifestContext = "manifest"

// entryList keeps FileEntry items sorted by relative path. The walk already
// visits siblings in lexicographic order, but the skiplist makes ordering a
// property of the collection and rejects duplicate paths at insert time,
// which is how the manifest's uniqueness invariant is enforced.
type entryList struct {
	skiplist *zcsl.ZeroCopySkiplist[FileEntry, string, string]
}

func newEntryList() *entryList {
	getKey := func(entry *FileEntry) string {
		return entry.Path
	}
	getSize := func(entry *FileEntry) int {
		return len(entry.Path) + len(entry.Hash)
	}
	return &entryList{
		skiplist: zcsl.MakeZeroCopySkiplist[FileEntry, string, string](
			16,
			getKey,
			getSize,
			strings.Compare,
		),
	}
}

// insert adds an entry, returning false if an entry with the same path is
// already present.
func (el *entryList) insert(entry FileEntry) bool {
	return el.skiplist.Insert(&entry, manifestContext)
}

// entries returns all entries in path order.
func (el *entryList) entries() []FileEntry {
	out := make([]FileEntry, 0, el.skiplist.Length())
	for node := el.skiplist.First(); node != nil; node = node.Next() {
		out = append(out, *node.Item())
	}
	return out
}

func (el *entryList) length() int {
	return el.skiplist.Length()
}

package kushn

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/google/vectorio"
)

// uioMaxIOV is the kernel's writev iovec limit, UIO_MAXIOV in
// <linux/uio.h>. golang.org/x/sys/unix does not export it.
const uioMaxIOV = 1024

// DefaultManifestName is the output filename used when neither the config
// file nor the command line overrides it.
const DefaultManifestName = "kushn_result.json"

// GenerateManifest runs the whole pipeline over root: compile the ignore
// rules, walk the tree, and write the two-phase manifest named name inside
// root.
func GenerateManifest(root, name string, rules []string, opts WalkOptions) error {
	matcher, err := NewMatcher(rules)
	if err != nil {
		return err
	}
	entries, err := Walk(root, matcher, opts)
	if err != nil {
		return err
	}
	return WriteManifest(root, name, entries, opts.Algorithm)
}

// WriteManifest serializes entries to name inside root, then re-hashes the
// written file and rewrites it with one extra entry describing the manifest
// itself.
//
// The self-entry's hash covers the phase-one bytes, before the self-entry
// existed. It cannot describe the final bytes: appending the hash changes
// the file, which changes the hash, with no fixed point. Consumers verifying
// the manifest must strip the last entry, re-serialize the rest, and hash
// that.
func WriteManifest(root, name string, entries []FileEntry, algorithm *Algorithm) error {
	if algorithm == nil {
		algorithm = DefaultAlgorithm()
	}
	target := filepath.Join(root, name)

	// Phase 1: write the collected entries.
	if err := writeEntries(target, entries); err != nil {
		return err
	}

	// Phase 2: hash what was just written.
	selfHash, err := HashFileHex(target, algorithm)
	if err != nil {
		return err
	}
	VerboseLog(2, "manifest %s phase-one digest %s", name, selfHash)

	// Phase 3: rewrite with the self-entry appended. The entry records the
	// filename as given, not the full target path.
	withSelf := make([]FileEntry, 0, len(entries)+1)
	withSelf = append(withSelf, entries...)
	withSelf = append(withSelf, FileEntry{Path: name, Hash: selfHash})
	return writeEntries(target, withSelf)
}

// writeEntries writes the manifest as a pretty-printed JSON array in a
// single truncate-and-rewrite pass: one serialized chunk per entry, gathered
// into iovecs and flushed with writev, chunked to the kernel's iovec limit.
func writeEntries(target string, entries []FileEntry) error {
	chunks, err := marshalChunks(entries)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create manifest file %s: %w", target, err)
	}
	defer file.Close()

	iovecs := make([]syscall.Iovec, 0, len(chunks))
	expected := 0
	for _, chunk := range chunks {
		iovecs = append(iovecs, syscall.Iovec{
			Base: &chunk[0],
			Len:  uint64(len(chunk)),
		})
		expected += len(chunk)
	}

	written := 0
	for offset := 0; offset < len(iovecs); offset += uioMaxIOV {
		end := offset + uioMaxIOV
		if end > len(iovecs) {
			end = len(iovecs)
		}
		nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs[offset:end])
		if err != nil {
			return fmt.Errorf("failed to write manifest %s: %w", target, err)
		}
		written += nw
	}
	if written != expected {
		return fmt.Errorf("manifest write incomplete: wrote %d bytes, expected %d", written, expected)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync manifest %s: %w", target, err)
	}
	if IsDebugEnabled("manifest") {
		fmt.Fprintf(os.Stderr, "[MANIFEST] wrote %d bytes to %s\n", written, target)
	}
	return nil
}

// marshalChunks produces the byte chunks of a pretty-printed JSON array,
// byte-identical to marshalling the whole slice with two-space indentation.
// Key order within an entry is fixed by the FileEntry struct.
func marshalChunks(entries []FileEntry) ([][]byte, error) {
	if len(entries) == 0 {
		return [][]byte{[]byte("[]")}, nil
	}

	chunks := make([][]byte, 0, len(entries)+2)
	chunks = append(chunks, []byte("[\n"))
	for i, entry := range entries {
		encoded, err := json.MarshalIndent(entry, "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		chunk := make([]byte, 0, len(encoded)+4)
		chunk = append(chunk, "  "...)
		chunk = append(chunk, encoded...)
		if i < len(entries)-1 {
			chunk = append(chunk, ',')
		}
		chunk = append(chunk, '\n')
		chunks = append(chunks, chunk)
	}
	chunks = append(chunks, []byte("]"))
	return chunks, nil
}

package kushn

import "errors"

// Error kinds surfaced by the package. Callers discriminate with errors.Is;
// plain I/O failures are returned as wrapped *os.PathError values instead.
var (
	// ErrPatternSyntax reports an ignore rule that is not a valid glob.
	// Raised during Matcher construction, before any traversal starts.
	ErrPatternSyntax = errors.New("invalid ignore pattern")

	// ErrTraversal reports a directory entry that could not be read during
	// the walk. Under PolicyStrict it aborts the whole traversal.
	ErrTraversal = errors.New("directory traversal failed")

	// ErrSerialization reports that the collected entries could not be
	// encoded to JSON.
	ErrSerialization = errors.New("manifest serialization failed")

	// ErrDuplicatePath reports two walk results with the same relative
	// path. Directory trees cannot produce this on their own; it guards the
	// uniqueness invariant of the manifest.
	ErrDuplicatePath = errors.New("duplicate relative path")
)

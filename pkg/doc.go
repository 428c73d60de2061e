// Package kushn generates a self-describing manifest of content hashes for a
// directory tree.
//
// A manifest is a JSON array of {path, hash} entries, one per regular file
// reachable from a root directory, with glob ignore rules excluding single
// files or whole subtrees. After the manifest is written it is hashed itself
// and rewritten with one final entry recording that digest, so the published
// artifact describes its own content.
//
// # Basic Usage
//
// The whole pipeline over a directory:
//
//	rules, err := kushn.ReadIgnoreFile(root)
//	if err != nil {
//		return err
//	}
//	err = kushn.GenerateManifest(root, kushn.DefaultManifestName, rules, kushn.WalkOptions{})
//
// The pieces are also exported separately: NewMatcher compiles ignore rules,
// Walk produces the ordered entry list, WriteManifest performs the two-phase
// self-referential write.
//
// # The Self-Entry
//
// The manifest's final entry names the manifest file itself. Its hash covers
// the bytes as first written, before the final entry existed, not the
// finished file. Hashing the finished file instead would change the file and
// invalidate the hash again, with no fixed point. See WriteManifest.
//
// # Configuration
//
// An optional .kushnrc INI file in the processed root sets the output name,
// digest algorithm, and traversal failure policy. Command-line flags take
// precedence over the config file, which takes precedence over defaults.
package kushn

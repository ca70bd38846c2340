// Package locate resolves a user-supplied file reference to a readable
// path. Upload environments hand the program paths that may be relative
// to a directory that no longer exists, so resolution falls back through
// a fixed set of probes before giving up.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotFound is returned when no probe produced an existing regular file.
var ErrNotFound = errors.New("file not found")

// candidateDirs are probed for the bare filename as a last step.
var candidateDirs = []string{"uploads", ".", ".."}

// Resolve probes for the referenced file, first hit wins:
//
//  1. the reference exactly as given
//  2. the bare filename against the current working directory
//  3. any file in the working directory sharing the reference's extension
//  4. a fixed list of candidate directories probed for the bare filename
//
// The returned error always carries the original reference, not a
// resolved guess. Resolve never touches the filesystem beyond stat/glob.
func Resolve(reference string) (string, error) {
	if isRegularFile(reference) {
		return reference, nil
	}

	base := filepath.Base(reference)
	if base != reference && isRegularFile(base) {
		return base, nil
	}

	// Extension scan, lexical order for determinism. Only reached when
	// the exact probes above found nothing.
	if ext := filepath.Ext(reference); ext != "" {
		matches, _ := filepath.Glob("*" + ext)
		sort.Strings(matches)
		for _, m := range matches {
			if isRegularFile(m) {
				return m, nil
			}
		}
	}

	for _, dir := range candidateDirs {
		candidate := filepath.Join(dir, base)
		if isRegularFile(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, reference)
}

func isRegularFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// Package archive provides read access to the ZIP container of a 3MF file.
// Entry lookup is case-insensitive and tolerates path separator variance
// between slicer vendors.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

// Archive is an open 3MF ZIP container
type Archive struct {
	zr      *zip.ReadCloser
	entries map[string]*zip.File
}

// Open opens a 3MF file for reading. A file that is not a valid ZIP archive
// is a fatal error.
func Open(filename string) (*Archive, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening ZIP: %w", err)
	}

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[normalizeName(f.Name)] = f
	}

	return &Archive{zr: zr, entries: entries}, nil
}

// Close releases the underlying ZIP reader
func (a *Archive) Close() error {
	return a.zr.Close()
}

// Read returns the decoded text of the named entry. The second return value
// is false when the entry does not exist.
func (a *Archive) Read(name string) (string, bool) {
	f, ok := a.entries[normalizeName(name)]
	if !ok {
		return "", false
	}

	rc, err := f.Open()
	if err != nil {
		return "", false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", false
	}

	return string(data), true
}

// ReadFirst returns the decoded text of the first candidate entry that
// exists. Vendors disagree about metadata file names, so callers pass every
// known spelling and degrade when none is present.
func (a *Archive) ReadFirst(candidates ...string) (string, bool) {
	for _, name := range candidates {
		if text, ok := a.Read(name); ok {
			return text, true
		}
	}
	return "", false
}

// normalizeName maps an entry or reference name to its canonical lookup
// form: forward slashes, no leading slash, lower case
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "/")
	return strings.ToLower(name)
}

package rewrite

import (
	"net/url"
	"strings"
)

// PathMapper implements the path-mapping invariant from the data model:
// any path beginning with LocalRoot maps to the same suffix under
// ContainerRoot, and vice versa; paths under neither prefix pass through
// unchanged.
type PathMapper struct {
	LocalRoot     string
	ContainerRoot string
}

// translate swaps the oldRoot prefix of path for newRoot. It reports
// whether a substitution was made.
func translate(path, oldRoot, newRoot string) (string, bool) {
	if oldRoot == "" {
		return path, false
	}
	if path == oldRoot {
		return newRoot, true
	}
	if rest, ok := strings.CutPrefix(path, oldRoot+"/"); ok {
		return newRoot + "/" + rest, true
	}
	return path, false
}

// ToServerPath translates a bare filesystem path from the local view to
// the container view.
func (m PathMapper) ToServerPath(path string) (string, bool) {
	return translate(path, m.LocalRoot, m.ContainerRoot)
}

// ToClientPath translates a bare filesystem path from the container view
// to the local view.
func (m PathMapper) ToClientPath(path string) (string, bool) {
	return translate(path, m.ContainerRoot, m.LocalRoot)
}

// decodeFileURI extracts the percent-decoded path from a file:// URI.
func decodeFileURI(uri string) (path string, ok bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return u.Path, true
}

// encodeFileURI builds a file:// URI from a filesystem path, percent
// encoding it the way net/url encodes URL paths.
func encodeFileURI(path string) string {
	u := &url.URL{Scheme: "file", Path: path}
	return u.String()
}

// ToServerURI translates a file:// URI from the local view to the
// container view. ok is false when the URI is not a file:// URI under
// LocalRoot, in which case uri is returned unchanged.
func (m PathMapper) ToServerURI(uri string) (result string, ok bool) {
	path, isFileURI := decodeFileURI(uri)
	if !isFileURI {
		return uri, false
	}
	newPath, changed := m.ToServerPath(path)
	if !changed {
		return uri, false
	}
	return encodeFileURI(newPath), true
}

// ToClientURI translates a file:// URI from the container view to the
// local view. ok is false when the URI is not a file:// URI under
// ContainerRoot, in which case uri is returned unchanged.
func (m PathMapper) ToClientURI(uri string) (result string, ok bool) {
	path, isFileURI := decodeFileURI(uri)
	if !isFileURI {
		return uri, false
	}
	newPath, changed := m.ToClientPath(path)
	if !changed {
		return uri, false
	}
	return encodeFileURI(newPath), true
}

// ContainerPathOf returns the container-side filesystem path encoded in
// a file:// URI, and whether the URI parsed as one at all. Used by the
// pipeline to decide whether a to-client URI needs materialization.
func ContainerPathOf(uri string) (string, bool) {
	return decodeFileURI(uri)
}

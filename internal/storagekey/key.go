// Package storagekey builds and decomposes the slash-delimited object keys
// under which program documents live: {cnpj}/{program}/{folder tree}/{file}.
package storagekey

import "strings"

// NormalizeCNPJ strips the punctuation of a formatted CNPJ
// ("12.345.678/0001-99" -> "12345678000199").
func NormalizeCNPJ(cnpj string) string {
	r := strings.NewReplacer(".", "", "-", "", "/", "")
	return r.Replace(cnpj)
}

// SanitizeSegment strips path separators from a free-text value so it can be
// used as a single key segment. Program names are user-entered and must not
// move an upload outside its program prefix.
func SanitizeSegment(s string) string {
	r := strings.NewReplacer("/", "", "\\", "")
	return strings.TrimSpace(r.Replace(s))
}

// Derive builds the full storage key for a file. folderTree is used as-is
// apart from trimming; existing keys depend on its exact spelling.
func Derive(cnpj, programName, folderTree, fileName string) string {
	segments := []string{
		NormalizeCNPJ(cnpj),
		SanitizeSegment(programName),
	}
	if tree := strings.Trim(strings.TrimSpace(folderTree), "/"); tree != "" {
		segments = append(segments, tree)
	}
	segments = append(segments, SanitizeSegment(fileName))
	return strings.Join(segments, "/")
}

// ProgramPrefix is the root prefix of a program's subtree, trailing slash
// included so listings do not match sibling programs with a common stem.
func ProgramPrefix(cnpj, programName string) string {
	return NormalizeCNPJ(cnpj) + "/" + SanitizeSegment(programName) + "/"
}

// BaseName returns the display name of a key or prefix: the last non-empty
// path segment.
func BaseName(key string) string {
	trimmed := strings.TrimSuffix(key, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// FolderName returns the name of the folder directly containing the keyed
// object, or "" for a top-level key.
func FolderName(key string) string {
	trimmed := strings.TrimSuffix(key, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	return BaseName(trimmed[:idx])
}

// IsPlaceholder reports whether a key denotes a zero-byte folder marker
// rather than a real file.
func IsPlaceholder(key string) bool {
	return strings.HasSuffix(key, "/")
}

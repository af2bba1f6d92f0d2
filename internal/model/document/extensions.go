package document

import "strings"

var allowedExtensions = map[string]struct{}{
	"pdf":  {},
	"doc":  {},
	"docx": {},
	"ppt":  {},
	"pptx": {},
	"xls":  {},
	"xlsx": {},
	"jpeg": {},
}

// ExtensionOf returns the lowercased extension of a file name, without the dot.
func ExtensionOf(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	return strings.ToLower(fileName[idx+1:])
}

// ExtensionAllowed reports whether the file name carries one of the accepted
// document extensions.
func ExtensionAllowed(fileName string) bool {
	_, ok := allowedExtensions[ExtensionOf(fileName)]
	return ok
}

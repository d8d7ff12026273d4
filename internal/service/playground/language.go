package playground

import "strings"

// PlainText is the language of files with an unknown extension
const PlainText = "plaintext"

var languageByExtension = map[string]string{
	"js":    "javascript",
	"jsx":   "jsx",
	"ts":    "typescript",
	"tsx":   "tsx",
	"css":   "css",
	"scss":  "scss",
	"html":  "html",
	"json":  "json",
	"md":    "markdown",
	"py":    "python",
	"java":  "java",
	"cpp":   "cpp",
	"c":     "c",
	"go":    "go",
	"rs":    "rust",
	"php":   "php",
	"rb":    "ruby",
	"swift": "swift",
	"kt":    "kotlin",
	"sql":   "sql",
	"sh":    "shell",
}

// DetectLanguage maps a file name to an editor language using the token
// after its final dot, case-insensitively.
func DetectLanguage(name string) string {
	ext := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ext = name[i+1:]
	}
	if lang, ok := languageByExtension[strings.ToLower(ext)]; ok {
		return lang
	}
	return PlainText
}

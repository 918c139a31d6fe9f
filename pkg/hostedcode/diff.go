package hostedcode

import (
	"path"
	"strings"
)

// countLines counts newline-delimited lines; empty content has zero lines.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// lineDelta computes added/removed counts for a modify from line counts
// alone. This is a declared heuristic, not a sequence diff: the overlap
// min(old, new) is attributed to both sides, plus the net growth or
// shrinkage. When both come out zero on a real content change (equal line
// counts), added is forced to the new line count so a modify is never
// recorded as a zero-line change.
func lineDelta(oldLines, newLines int) (added, removed int) {
	added = max(0, newLines-oldLines) + min(oldLines, newLines)
	removed = max(0, oldLines-newLines) + min(oldLines, newLines)
	return added, removed
}

var extLanguages = map[string]string{
	".go":    "go",
	".py":    "python",
	".ts":    "typescript",
	".tsx":   "typescript",
	".js":    "javascript",
	".jsx":   "javascript",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".rb":    "ruby",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".swift": "swift",
	".sol":   "solidity",
	".sh":    "shell",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".scss":  "css",
	".md":    "markdown",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
}

// detectLanguage maps a file extension to a language tag; nil when unknown.
func detectLanguage(filePath string) *string {
	ext := strings.ToLower(path.Ext(filePath))
	if lang, ok := extLanguages[ext]; ok {
		return &lang
	}
	return nil
}

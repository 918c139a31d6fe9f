package hostedcode

import (
	"fmt"
	"regexp"
	"strings"
)

const maxPathLen = 512

// scanLimit bounds how much of a file is scanned per pattern pass.
const scanLimit = 1 << 20

type secretPattern struct {
	name     string
	category string
	re       *regexp.Regexp
}

var secretPatterns = []secretPattern{
	{"aws_access_key_id", "cloud", regexp.MustCompile(`\b(A3T[A-Z0-9]|AKIA|ASIA|ABIA|ACCA)[A-Z0-9]{16}\b`)},
	{"aws_secret_access_key", "cloud", regexp.MustCompile(`(?i)aws[^\n]{0,20}['"][0-9a-zA-Z/+]{40}['"]`)},
	{"github_token", "vcs", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,255}\b`)},
	{"slack_token", "chat", regexp.MustCompile(`\bxox[baprs]-[0-9A-Za-z-]{10,}\b`)},
	{"private_key_block", "crypto", regexp.MustCompile(`-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY( BLOCK)?-----`)},
	{"hex_private_key", "crypto", regexp.MustCompile(`\b0x[a-fA-F0-9]{64}\b`)},
	{"generic_api_key", "generic", regexp.MustCompile(`(?i)(api[_-]?key|secret[_-]?key|access[_-]?token)['"]?\s*[:=]\s*['"][0-9a-zA-Z_\-]{20,}['"]`)},
	{"bearer_token", "generic", regexp.MustCompile(`(?i)authorization['"]?\s*[:=]\s*['"]?bearer\s+[0-9a-zA-Z._\-]{20,}`)},
}

var pathCharsRE = regexp.MustCompile(`^[a-zA-Z0-9._/@+ -]+$`)

// PatternScanner is the default path-validity and secret-scanning half of
// the VCS client capability. Pattern rows mirror the gateway's table:
// name, category, compiled expression.
type PatternScanner struct{}

func NewPatternScanner() *PatternScanner { return &PatternScanner{} }

func (s *PatternScanner) ValidatePath(path string) error {
	switch {
	case path == "":
		return &PathError{Path: path, Reason: "empty path"}
	case len(path) > maxPathLen:
		return &PathError{Path: path, Reason: fmt.Sprintf("longer than %d characters", maxPathLen)}
	case strings.HasPrefix(path, "/"):
		return &PathError{Path: path, Reason: "absolute paths are not allowed"}
	case strings.Contains(path, "\\"):
		return &PathError{Path: path, Reason: "backslashes are not allowed"}
	case strings.ContainsRune(path, 0):
		return &PathError{Path: path, Reason: "NUL byte in path"}
	case !pathCharsRE.MatchString(path):
		return &PathError{Path: path, Reason: "path contains invalid characters"}
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			return &PathError{Path: path, Reason: "empty path segment"}
		}
		if seg == "." || seg == ".." {
			return &PathError{Path: path, Reason: "path traversal segment"}
		}
	}
	return nil
}

func (s *PatternScanner) ScanForSecrets(content string) []SecretMatch {
	if content == "" {
		return nil
	}
	if len(content) > scanLimit {
		content = content[:scanLimit]
	}
	var matches []SecretMatch
	for i := range secretPatterns {
		p := &secretPatterns[i]
		if p.re.MatchString(content) {
			matches = append(matches, SecretMatch{Pattern: p.name, Category: p.category})
		}
	}
	return matches
}

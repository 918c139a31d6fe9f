package hostedcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for the commit and review paths. All validation errors
// are raised before any write; transaction failures are returned as-is
// after a full rollback.
var (
	ErrEmptyCommit      = errors.New("commit must include at least one file")
	ErrTooManyFiles     = errors.New("commit exceeds the per-commit file limit")
	ErrMessageRequired  = errors.New("commit message is required")
	ErrMessageTooLong   = errors.New("commit message exceeds the length limit")
	ErrInvalidPath      = errors.New("invalid file path")
	ErrSecretDetected   = errors.New("file content matches a known credential pattern")
	ErrFileTooLarge     = errors.New("file exceeds the per-file size limit")
	ErrProjectTooLarge  = errors.New("project exceeds the total size limit")
	ErrInvalidVerdict   = errors.New("verdict must be approve, request_changes or comment")
	ErrSelfReview       = errors.New("authors cannot review their own commits")
	ErrPermissionDenied = errors.New("insufficient access level")
	ErrProjectNotFound  = errors.New("project not found")
	ErrCommitNotFound   = errors.New("commit not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNoFiles          = errors.New("project has no files to export")
	ErrNoRepoURL        = errors.New("project has no linked repository")
	ErrBadRepoURL       = errors.New("linked repository URL is not parseable")
	ErrNoCredentials    = errors.New("no connected credentials for actor")
)

// PathError names the offending path. The reason is for server-side logs;
// transport layers translate it into a generic response.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid file path %q: %s", e.Path, e.Reason)
}

func (e *PathError) Unwrap() error { return ErrInvalidPath }

// SecretError names the path and the matched pattern. The pattern name is
// for server-side logs only and must not leak to callers.
type SecretError struct {
	Path    string
	Pattern string
}

func (e *SecretError) Error() string {
	return fmt.Sprintf("secret detected in %q (pattern %s)", e.Path, e.Pattern)
}

func (e *SecretError) Unwrap() error { return ErrSecretDetected }

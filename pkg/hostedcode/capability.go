package hostedcode

import "context"

// Limits for the commit engine. These are part of the storage contract,
// not tunables.
const (
	MaxCommitFiles    = 50
	MaxMessageLen     = 1000
	MaxFileBytes      = 1 << 20  // 1 MiB per file
	MaxProjectBytes   = 50 << 20 // 50 MiB per project, checked conservatively
	ApprovalThreshold = 1
)

// SecretMatch is one credential pattern hit inside scanned content.
type SecretMatch struct {
	Pattern  string // pattern name, server-side logging only
	Category string
}

// PushFile is one (path, content) pair handed to the external VCS push.
type PushFile struct {
	Path    string
	Content string
}

// PushResult is what the delegated push produces.
type PushResult struct {
	SHA     string
	URL     string
	Message string
}

// Credentials are decrypted VCS credentials resolved for an actor.
type Credentials struct {
	Token    string
	Username string
}

// VCSClient is the delegated VCS capability: path validity and secret
// scanning guard the commit engine, CommitAndPush backs the export bridge.
// Implementations can be swapped for stricter or test doubles without
// touching the transactional logic.
type VCSClient interface {
	// ValidatePath returns a *PathError when the path is not committable.
	ValidatePath(path string) error
	// ScanForSecrets returns the credential patterns matched by content;
	// an empty slice means clean.
	ScanForSecrets(content string) []SecretMatch
	// CommitAndPush writes the file set to the external repository and
	// returns the resulting commit SHA and URL.
	CommitAndPush(ctx context.Context, creds Credentials, owner, repo string,
		files []PushFile, message, branch string) (*PushResult, error)
}

// CredentialProvider resolves an actor's previously connected credentials.
// A nil result with nil error means none are connected.
type CredentialProvider interface {
	DecryptedCredentials(ctx context.Context, actorID string) (*Credentials, error)
}

// RepoURLParser extracts owner and repo from a linked repository URL.
type RepoURLParser func(url string) (owner, repo string, ok bool)

// ReviewNotifier is the best-effort notification hook invoked after a
// review lands. Failures are logged and dropped; implementations must not
// block the review path for long.
type ReviewNotifier interface {
	ReviewSubmitted(email, projectName, commitID, verdict string) error
}

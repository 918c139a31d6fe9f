// Constants mirrored into database columns. Access levels use fixed ranks
// (not iota) because the values are part of the API contract: callers
// compare them numerically against the export/commit thresholds.
package model

// AccessLevel is an actor's role rank on a project.
type AccessLevel int

const (
	AccessNone   AccessLevel = -1 // project absent, or actor is neither owner nor collaborator
	AccessViewer AccessLevel = 0
	AccessEditor AccessLevel = 1
	AccessAdmin  AccessLevel = 2
	AccessOwner  AccessLevel = 3
)

// Role is an actor's platform-wide role, carried in the JWT. Distinct
// from AccessLevel, which is per project.
type Role uint8

const (
	RoleGuest Role = iota + 1
	RoleUser
	RoleAdmin
)

// ReviewStatus is the aggregate review state of a commit. It is always
// recomputed from the full review set, never patched incrementally.
type ReviewStatus string

const (
	ReviewPending          ReviewStatus = "pending_review"
	ReviewApproved         ReviewStatus = "approved"
	ReviewChangesRequested ReviewStatus = "changes_requested"
)

// Verdict is a reviewer's current position on a commit.
type Verdict string

const (
	VerdictApprove        Verdict = "approve"
	VerdictRequestChanges Verdict = "request_changes"
	VerdictComment        Verdict = "comment"
)

// ChangeType classifies one file's change within a commit.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeModify ChangeType = "modify"
	ChangeDelete ChangeType = "delete"
)

// EventType tags a project activity row.
type EventType string

const (
	EventFileCommitted  EventType = "file_committed"
	EventCommitReviewed EventType = "commit_reviewed"
	EventFileExported   EventType = "file_exported"
)

// TaskStatus is the lifecycle state of a project task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// CommitSourceGateway marks commits created through the hosted store
// (as opposed to rows imported from an external VCS).
const CommitSourceGateway = "gateway"

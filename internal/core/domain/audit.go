package domain

import "time"

// AuditAction names a privileged operation recorded in the audit trail.
type AuditAction string

const (
	AuditRoleChanged       AuditAction = "user.role_changed"
	AuditUserDeleted       AuditAction = "user.deleted"
	AuditJobDeleted        AuditAction = "job.deleted"
	AuditPipelineStarted   AuditAction = "job.pipeline_started"
	AuditApplicationStatus AuditAction = "application.status_changed"
)

// AuditEntry is one immutable record of who did what to which resource.
type AuditEntry struct {
	ActorID    string
	Action     AuditAction
	Resource   string
	ResourceID string
	Details    map[string]any
	OccurredAt time.Time
}

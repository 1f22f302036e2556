package ports

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// AuditRepository writes audit entries to durable storage.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// Auditor records an entry without blocking the caller.
type Auditor interface {
	Record(entry domain.AuditEntry)
}

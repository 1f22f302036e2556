package service

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

func requireRole(roles ...domain.Role) access.Policy {
	return access.Policy{Roles: roles}
}

// ownedJob admits the recruiter who owns jobID. Everyone else, and every
// caller when the job does not exist, gets ErrJobNotFound.
func ownedJob(jobs ports.JobRepository, jobID string) access.Policy {
	return access.Policy{
		Roles: []domain.Role{domain.RoleRecruiter},
		Owner: func(ctx context.Context) (string, error) {
			return jobs.FindOwner(ctx, jobID)
		},
		NotFound: domain.ErrJobNotFound,
	}
}

// ownApplication admits the candidate who submitted applicationID.
func ownApplication(apps ports.ApplicationRepository, applicationID string) access.Policy {
	return access.Policy{
		Owner: func(ctx context.Context) (string, error) {
			return apps.FindCandidate(ctx, applicationID)
		},
		NotFound: domain.ErrApplicationNotFound,
	}
}

// adminActingOn admits admins acting on another account.
func adminActingOn(userID, selfReason string) access.Policy {
	return access.Policy{
		Roles:      []domain.Role{domain.RoleAdmin},
		SelfTarget: userID,
		SelfReason: selfReason,
	}
}

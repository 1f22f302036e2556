package domain

import "strings"

// Role governs which pages and actions an Identity may access.
type Role string

const (
	RoleUnknown   Role = ""
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// legacyAdmin is accepted on read and folded into RoleAdmin. Older rows and
// a few admin endpoints used it for the same elevated role.
const legacyAdmin = "super_admin"

// ParseRole maps a stored or submitted value onto the closed role set.
// Unrecognised values yield RoleUnknown, which satisfies no requirement.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleCandidate):
		return RoleCandidate
	case string(RoleRecruiter):
		return RoleRecruiter
	case string(RoleAdmin), legacyAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// Valid reports whether r is one of the three assignable roles.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleRecruiter || r == RoleAdmin
}

func (r Role) String() string { return string(r) }

// Dashboard returns the landing page for r, or home when r is unknown.
func Dashboard(r Role) string {
	switch r {
	case RoleCandidate:
		return "/dashboard/candidate"
	case RoleRecruiter:
		return "/dashboard/recruiter"
	case RoleAdmin:
		return "/dashboard/admin"
	default:
		return "/"
	}
}

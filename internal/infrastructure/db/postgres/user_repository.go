package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

const userColumns = `id::text, email, password_hash, role, full_name, first_name, last_name,
	company, phone, avatar_url, created_at, updated_at`

// UserRepository implements ports.UserRepository on the users table.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.FullName, &u.FirstName, &u.LastName,
		&u.Company, &u.Phone, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = domain.ParseRole(role)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, full_name, first_name, last_name, company, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+userColumns,
		user.Email, user.PasswordHash, string(user.Role), user.FullName,
		user.FirstName, user.LastName, user.Company, user.Phone)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindRole(ctx context.Context, id string) (domain.Role, error) {
	var role string
	if err := r.db.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role); err != nil {
		if isMissing(err) {
			return domain.RoleUnknown, domain.ErrUserNotFound
		}
		return domain.RoleUnknown, fmt.Errorf("find role: %w", err)
	}
	return domain.ParseRole(role), nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var c conditions
	if filter.Role != domain.RoleUnknown {
		roles := []string{string(filter.Role)}
		if filter.Role == domain.RoleAdmin {
			roles = append(roles, "super_admin")
		}
		c.add("role = ANY($%d::text[])", roles)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		c.add("(email ILIKE $%[1]d OR full_name ILIKE $%[1]d)", containsPattern(s))
	}

	total, err := count(ctx, r.db, `SELECT count(*) FROM users`+c.where(), c.args)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	window, args := c.window(filter.Page, filter.Limit)
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users`+c.where()+
		` ORDER BY created_at DESC, id`+window, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, filter.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list users: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, id, string(role)))
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return u, nil
}

// UpdateDetails changes only the non-nil fields. full_name is kept in step
// with first_name and last_name.
func (r *UserRepository) UpdateDetails(ctx context.Context, id string, d ports.UserDetails) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name  = COALESCE($3, last_name),
			phone      = COALESCE($4, phone),
			company    = COALESCE($5, company),
			avatar_url = COALESCE($6, avatar_url),
			full_name  = CASE WHEN $2::text IS NULL AND $3::text IS NULL THEN full_name
			             ELSE btrim(COALESCE($2, first_name) || ' ' || COALESCE($3, last_name)) END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, d.FirstName, d.LastName, d.Phone, d.Company, d.AvatarURL))
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isMissing(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

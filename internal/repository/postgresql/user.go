package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, password_hash, first_name, last_name, email, role,
		department, position, profile_image, manager_id, phone, address, city, country,
		employee_code, hire_date, skills, languages, created_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Role,
		&u.Department,
		&u.Position,
		&u.ProfileImage,
		&u.ManagerID,
		&u.Phone,
		&u.Address,
		&u.City,
		&u.Country,
		&u.EmployeeCode,
		&u.HireDate,
		&u.Skills,
		&u.Languages,
		&u.CreatedAt,
	)
	return u, err
}

func mapUserError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return user.ErrUserNotFound
	}
	if name, ok := uniqueConstraint(err); ok {
		switch name {
		case "users_username_key":
			return user.ErrUsernameExists
		case "users_email_key":
			return user.ErrUserEmailExists
		}
	}
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			username, password_hash, first_name, last_name, email, role,
			department, position, profile_image, manager_id, phone, address, city, country,
			employee_code, hire_date, skills, languages
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.Username,
		newUser.PasswordHash,
		newUser.FirstName,
		newUser.LastName,
		newUser.Email,
		string(newUser.Role),
		newUser.Department,
		newUser.Position,
		newUser.ProfileImage,
		newUser.ManagerID,
		newUser.Phone,
		newUser.Address,
		newUser.City,
		newUser.Country,
		newUser.EmployeeCode,
		newUser.HireDate,
		nonNil(newUser.Skills),
		nonNil(newUser.Languages),
	))
	if err != nil {
		return user.User{}, mapUserError(err)
	}
	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return user.User{}, mapUserError(err)
	}
	return u, nil
}

// GetByUsername implements user.UserRepository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username))
	if err != nil {
		return user.User{}, mapUserError(err)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return user.User{}, mapUserError(err)
	}
	return u, nil
}

func (r *userRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	return r.list(ctx, "")
}

// ListByRoles implements user.UserRepository.
func (r *userRepositoryImpl) ListByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return r.list(ctx, "WHERE role = ANY($1)", names)
}

// ListByManager implements user.UserRepository.
func (r *userRepositoryImpl) ListByManager(ctx context.Context, managerID int64) ([]user.User, error) {
	return r.list(ctx, "WHERE manager_id = $1", managerID)
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET
			username = $2, password_hash = $3, first_name = $4, last_name = $5, email = $6,
			role = $7, department = $8, position = $9, profile_image = $10, manager_id = $11,
			phone = $12, address = $13, city = $14, country = $15, employee_code = $16,
			hire_date = $17, skills = $18, languages = $19
		WHERE id = $1
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Email,
		string(u.Role),
		u.Department,
		u.Position,
		u.ProfileImage,
		u.ManagerID,
		u.Phone,
		u.Address,
		u.City,
		u.Country,
		u.EmployeeCode,
		u.HireDate,
		nonNil(u.Skills),
		nonNil(u.Languages),
	))
	if err != nil {
		return user.User{}, mapUserError(err)
	}
	return updated, nil
}

// ReassignManager implements user.UserRepository.
func (r *userRepositoryImpl) ReassignManager(ctx context.Context, fromID int64, toID *int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// the promoted report, if any, ends up without a manager
	query := `
		UPDATE users
		SET manager_id = CASE WHEN id = $2 THEN NULL ELSE $2 END
		WHERE manager_id = $1
	`
	tag, err := q.Exec(ctx, query, fromID, toID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete implements user.UserRepository. Owned rows go with the user through
// ON DELETE CASCADE; references are nulled through ON DELETE SET NULL.
func (r *userRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Count implements user.UserRepository.
func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)
	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

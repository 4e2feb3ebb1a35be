package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"facilicar_backend/internal/models"
)

// UserRepository defines the interface for user/profile database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByEstablishment(establishmentID int64) ([]models.User, error)
	CountCollaborators(establishmentID int64) (int, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	DeleteUser(executor SQLExecutor, id int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const selectUserFields = `id, nome, email, telefone, password_hash, role, is_super_admin, establishment_id, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Role, &user.IsSuperAdmin, &user.EstablishmentID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (nome, email, telefone, password_hash, role, is_super_admin, establishment_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	user.CreatedAt = currentTime
	user.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Role,
		user.IsSuperAdmin, user.EstablishmentID, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return 0, wrapWriteError(err, "creating user")
	}
	return user.ID, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE id = $1"
	return scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE lower(email) = lower($1)"
	return scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) GetUsersByEstablishment(establishmentID int64) ([]models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE establishment_id = $1 ORDER BY nome NULLS LAST, email"
	rows, err := r.db.Query(query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

func (r *userRepository) CountCollaborators(establishmentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE establishment_id = $1 AND role = $2`,
		establishmentID, models.RoleColaborador).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting collaborators: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func (r *userRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET
	            nome = $1, email = $2, telefone = $3, password_hash = $4, role = $5,
	            is_super_admin = $6, establishment_id = $7, updated_at = $8
	          WHERE id = $9
	          RETURNING updated_at`
	user.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.Role,
		user.IsSuperAdmin, user.EstablishmentID, user.UpdatedAt, user.ID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return wrapWriteError(err, fmt.Sprintf("updating user ID %d", user.ID))
	}
	return nil
}

func (r *userRepository) DeleteUser(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sourcedupays/terrain-api/internal/domain"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implémentation du port UserRepository sur PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, email, password_hash, role, is_active, created_at`

// Create persiste un nouveau compte.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateSupervisorProfile persiste un profil superviseur.
func (r *UserRepo) CreateSupervisorProfile(ctx context.Context, profile *entity.SupervisorProfile) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO supervisor_profiles (id, user_id) VALUES ($1, $2)`,
		profile.ID, profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert supervisor profile: %w", err)
	}
	return nil
}

// CreateMerchandiserProfile persiste un profil merchandiser rattaché à son
// manager.
func (r *UserRepo) CreateMerchandiserProfile(ctx context.Context, profile *entity.MerchandiserProfile) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO merchandiser_profiles (id, user_id, zone, manager_id) VALUES ($1, $2, $3, $4)`,
		profile.ID, profile.UserID, profile.Zone, profile.ManagerID,
	)
	if err != nil {
		return fmt.Errorf("insert merchandiser profile: %w", err)
	}
	return nil
}

// GetByID retourne un compte par ID, (nil, nil) si absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.q.QueryRow(ctx, query, id), "get user by id")
}

// GetByEmail retourne un compte par email, (nil, nil) si absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanUser(r.q.QueryRow(ctx, query, email), "get user by email")
}

// GetActorByID résout compte + profil métier en un seul aller-retour.
func (r *UserRepo) GetActorByID(ctx context.Context, userID string) (*entity.Actor, error) {
	query := `
		SELECT u.id, u.name, u.email, u.password_hash, u.role, u.is_active, u.created_at,
		       s.id, m.id, m.zone, m.manager_id
		FROM users u
		LEFT JOIN supervisor_profiles s ON s.user_id = u.id
		LEFT JOIN merchandiser_profiles m ON m.user_id = u.id
		WHERE u.id = $1`
	var (
		u            entity.User
		supervisorID *string
		merchID      *string
		merchZone    *string
		merchManager *string
	)
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt,
		&supervisorID, &merchID, &merchZone, &merchManager,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get actor by id: %w", err)
	}

	actor := &entity.Actor{User: u}
	if supervisorID != nil {
		actor.Supervisor = &entity.SupervisorProfile{ID: *supervisorID, UserID: u.ID}
	}
	if merchID != nil {
		actor.Merchandiser = &entity.MerchandiserProfile{
			ID:     *merchID,
			UserID: u.ID,
		}
		if merchZone != nil {
			actor.Merchandiser.Zone = *merchZone
		}
		if merchManager != nil {
			actor.Merchandiser.ManagerID = *merchManager
		}
	}
	return actor, nil
}

// GetSupervisorProfile retourne un profil superviseur par ID de profil.
func (r *UserRepo) GetSupervisorProfile(ctx context.Context, profileID string) (*entity.SupervisorProfile, error) {
	var p entity.SupervisorProfile
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id FROM supervisor_profiles WHERE id = $1`, profileID,
	).Scan(&p.ID, &p.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supervisor profile: %w", err)
	}
	return &p, nil
}

// ListSupervisors liste les profils superviseurs actifs avec l'identité du
// compte.
func (r *UserRepo) ListSupervisors(ctx context.Context) ([]repository.SupervisorInfo, error) {
	query := `
		SELECT s.id, u.id, u.name, u.email
		FROM supervisor_profiles s
		JOIN users u ON u.id = s.user_id
		WHERE u.is_active
		ORDER BY u.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list supervisors: %w", err)
	}
	defer rows.Close()
	var list []repository.SupervisorInfo
	for rows.Next() {
		var s repository.SupervisorInfo
		if err := rows.Scan(&s.ProfileID, &s.UserID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("scan supervisor: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// List liste tous les comptes, les plus récents d'abord.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return r.queryUsers(ctx, query)
}

// Search recherche par nom ou email. La requête arrive déjà repliée par
// l'appelant ; les colonnes sont repliées de la même façon pour que la
// comparaison soit insensible aux accents des deux côtés.
func (r *UserRepo) Search(ctx context.Context, query string) ([]*entity.User, error) {
	sql := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ` + foldedColumn("name") + ` LIKE '%' || $1 || '%'
		   OR ` + foldedColumn("email") + ` LIKE '%' || $1 || '%'
		ORDER BY created_at DESC`
	return r.queryUsers(ctx, sql, query)
}

// Update met à jour les champs mutables du compte.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `UPDATE users SET name = $2, email = $3, is_active = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, user.ID, user.Name, user.Email, user.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete supprime un compte ; les profils suivent par cascade.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanUser(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

func (r *UserRepo) queryUsers(ctx context.Context, sql string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

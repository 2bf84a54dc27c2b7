package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sourcedupays/terrain-api/internal/application/usecase"
	"github.com/sourcedupays/terrain-api/internal/application/visit"
	"github.com/sourcedupays/terrain-api/internal/domain/repository"
)

var (
	_ visit.TxRunner       = (*TxRunner)(nil)
	_ usecase.UserTxRunner = (*TxRunner)(nil)
)

// TxRunner exécute des callbacks dans une transaction PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run démarre une transaction, exécute fn avec des repositories visites et
// journal liés à la tx, puis Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	visits repository.VisitRepository,
	activity repository.ActivityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewVisitRepository(tx), NewActivityRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunUsers démarre une transaction avec des repositories comptes et journal
// liés à la tx (création complète et suppression journalisée d'utilisateurs).
func (r *TxRunner) RunUsers(ctx context.Context, fn func(
	users repository.UserRepository,
	activity repository.ActivityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewActivityRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

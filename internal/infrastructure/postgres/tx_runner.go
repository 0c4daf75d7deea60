package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dparedes/sial-api/internal/application/despacho"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

var _ despacho.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	despachoRepo repository.DespachoRepository,
	serialRepo repository.SerialRepository,
	renglonRepo repository.RenglonRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	despachoRepo := NewDespachoRepository(tx)
	serialRepo := NewSerialRepository(tx)
	renglonRepo := NewRenglonRepository(tx)

	if err := fn(despachoRepo, serialRepo, renglonRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

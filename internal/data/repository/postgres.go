package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"popcorn-palace/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

// NewRepository builds the Postgres-backed repositories. Atomic units run in
// a read-committed transaction that first takes a transaction-scoped
// advisory lock per key, so check-then-insert sequences on the same theater
// or showtime are serialised across every instance sharing the database.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	txLog := log.With(zap.String("repository", "tx"))

	var atomic AtomicFunc
	atomic = func(ctx context.Context, keys []string, fn func(repo *Repository) error) error {
		tx, err := db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() {
			if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
				txLog.Warn("Rollback failed", zap.Error(err))
			}
		}()

		if err := advisoryLock(ctx, tx, keys); err != nil {
			return err
		}

		scoped := newPostgresRepository(tx, log, atomic)
		if err := fn(scoped); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", mapPgError(err))
		}
		return nil
	}

	return newPostgresRepository(db, log, atomic)
}

func newPostgresRepository(q database.Querier, log *zap.Logger, atomic AtomicFunc) *Repository {
	return New(
		NewMovieRepository(q, log),
		NewShowtimeRepository(q, log),
		NewBookingRepository(q, log),
		atomic,
	)
}

// advisoryLock acquires keys in sorted order so two units locking the same
// set cannot deadlock. Locks are released on commit or rollback.
func advisoryLock(ctx context.Context, tx pgx.Tx, keys []string) error {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	for i, key := range sorted {
		if i > 0 && key == sorted[i-1] {
			continue
		}
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
			return fmt.Errorf("acquire lock %q: %w", key, err)
		}
	}
	return nil
}

// mapPgError translates unique violations into ErrDuplicate and leaves every
// other error untouched.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

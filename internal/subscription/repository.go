package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/beheryahmed1991/subscription-tracker/internal/db"
	"github.com/beheryahmed1991/subscription-tracker/internal/dbx"
)

const (
	columns = `id, owner_id, name, description, price, currency, billing_cycle, next_billing_date, category, status, created_at, updated_at`

	// timestampLayout is fixed width so that SQLite TEXT columns sort in
	// time order.
	timestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Repository handles persistence for subscriptions.
type Repository struct {
	db      *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

func NewRepository(database *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{db: database, dialect: dialect, now: utcNow}
}

func (r *Repository) Create(ctx context.Context, owner uuid.UUID, f Fields) (Subscription, error) {
	sub, err := newRecord(owner, f, r.now())
	if err != nil {
		return Subscription{}, err
	}

	query := r.dialect.Rebind(`
		INSERT INTO subscriptions (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query,
		sub.ID.String(),
		sub.Owner.String(),
		sub.Name,
		sub.Description,
		sub.Price.String(),
		sub.Currency,
		sub.BillingCycle.String(),
		sub.NextBillingDate.String(),
		sub.Category,
		sub.Status.String(),
		formatTimestamp(sub.CreatedAt),
		formatTimestamp(sub.UpdatedAt),
	); err != nil {
		return Subscription{}, storageErr("insert subscription", err)
	}

	return sub, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Subscription, error) {
	query := r.dialect.Rebind(`SELECT ` + columns + ` FROM subscriptions WHERE id = ?`)

	sub, err := scanSubscription(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscription{}, ErrNotFound
		}
		return Subscription{}, storageErr("select subscription", err)
	}
	return sub, nil
}

func (r *Repository) FindAllByOwner(ctx context.Context, owner uuid.UUID) ([]Subscription, error) {
	query := r.dialect.Rebind(`
		SELECT ` + columns + `
		FROM subscriptions
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC`)

	rows, err := r.db.QueryContext(ctx, query, owner.String())
	if err != nil {
		return nil, storageErr("list subscriptions", err)
	}
	defer rows.Close()

	subs := make([]Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, storageErr("scan subscription", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate subscriptions", err)
	}

	return subs, nil
}

// Update reads, merges and writes the record in one transaction. On
// Postgres the row is locked for the duration.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, f Fields) (Subscription, error) {
	selectQuery := r.dialect.Rebind(`SELECT `+columns+` FROM subscriptions WHERE id = ?`) + r.dialect.LockClause()
	updateQuery := r.dialect.Rebind(`
		UPDATE subscriptions
		SET name = ?, description = ?, price = ?, currency = ?, billing_cycle = ?,
			next_billing_date = ?, category = ?, status = ?, updated_at = ?
		WHERE id = ?`)

	var updated Subscription
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cur, err := scanSubscription(tx.QueryRowContext(ctx, selectQuery, id.String()))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return storageErr("select subscription for update", err)
		}

		next, err := applyFields(cur, f, r.now())
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, updateQuery,
			next.Name,
			next.Description,
			next.Price.String(),
			next.Currency,
			next.BillingCycle.String(),
			next.NextBillingDate.String(),
			next.Category,
			next.Status.String(),
			formatTimestamp(next.UpdatedAt),
			id.String(),
		); err != nil {
			return storageErr("update subscription", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) || errors.As(err, &verr) {
			return Subscription{}, err
		}
		return Subscription{}, storageErr("update subscription", err)
	}

	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.dialect.Rebind(`DELETE FROM subscriptions WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return storageErr("delete subscription", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete rows affected", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (Subscription, error) {
	var (
		sub              Subscription
		created, updated any
	)
	if err := row.Scan(
		&sub.ID,
		&sub.Owner,
		&sub.Name,
		&sub.Description,
		&sub.Price,
		&sub.Currency,
		&sub.BillingCycle,
		&sub.NextBillingDate,
		&sub.Category,
		&sub.Status,
		&created,
		&updated,
	); err != nil {
		return Subscription{}, err
	}

	var err error
	if sub.CreatedAt, err = parseTimestamp(created); err != nil {
		return Subscription{}, fmt.Errorf("created_at: %w", err)
	}
	if sub.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return Subscription{}, fmt.Errorf("updated_at: %w", err)
	}
	return sub, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp accepts a native timestamp (Postgres) or the text
// written by formatTimestamp (SQLite).
func parseTimestamp(src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		return time.Parse(time.RFC3339Nano, v)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(v))
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp type %T", src)
}

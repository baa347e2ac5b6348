package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

type PushSubscription struct {
	ID        int64
	Endpoint  string
	P256dh    string
	Auth      string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UpsertPushSubscriptionParams struct {
	Endpoint  string
	P256dh    string
	Auth      string
	UserAgent string
}

const upsertPushSubscription = `
INSERT INTO push_subscriptions (endpoint, p256dh, auth, user_agent)
VALUES (?, ?, ?, ?)
ON CONFLICT(endpoint) DO UPDATE SET
    p256dh = excluded.p256dh,
    auth = excluded.auth,
    user_agent = excluded.user_agent,
    updated_at = CURRENT_TIMESTAMP
RETURNING id, endpoint, p256dh, auth, user_agent, created_at, updated_at
`

func (q *Queries) UpsertPushSubscription(ctx context.Context, arg UpsertPushSubscriptionParams) (PushSubscription, error) {
	row := q.db.QueryRowContext(ctx, upsertPushSubscription,
		arg.Endpoint,
		arg.P256dh,
		arg.Auth,
		arg.UserAgent,
	)
	var i PushSubscription
	err := row.Scan(
		&i.ID,
		&i.Endpoint,
		&i.P256dh,
		&i.Auth,
		&i.UserAgent,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPushSubscriptions = `
SELECT id, endpoint, p256dh, auth, user_agent, created_at, updated_at
FROM push_subscriptions
ORDER BY id
`

func (q *Queries) ListPushSubscriptions(ctx context.Context) ([]PushSubscription, error) {
	rows, err := q.db.QueryContext(ctx, listPushSubscriptions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PushSubscription
	for rows.Next() {
		var i PushSubscription
		if err := rows.Scan(
			&i.ID,
			&i.Endpoint,
			&i.P256dh,
			&i.Auth,
			&i.UserAgent,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deletePushSubscriptionByEndpoint = `
DELETE FROM push_subscriptions WHERE endpoint = ?
`

func (q *Queries) DeletePushSubscriptionByEndpoint(ctx context.Context, endpoint string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePushSubscriptionByEndpoint, endpoint)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countPushSubscriptions = `
SELECT COUNT(*) FROM push_subscriptions
`

func (q *Queries) CountPushSubscriptions(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPushSubscriptions).Scan(&count)
	return count, err
}

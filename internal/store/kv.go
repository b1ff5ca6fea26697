package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlKV implements KV on the kv_entries table.
type sqlKV struct {
	db *sql.DB
	q  querier
	tx bool
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (s *sqlKV) Get(ctx context.Context, bucket, key string, dst any) (bool, error) {
	query, args := builder().
		Select("value").
		From(entsql.Table(KvTable.Name)).
		Where(entsql.And(entsql.EQ("bucket", bucket), entsql.EQ("key", key))).
		Query()

	var raw string
	err := s.q.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

func (s *sqlKV) Put(ctx context.Context, bucket, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}

	query, args := builder().
		Insert(KvTable.Name).
		Columns("bucket", "key", "value", "updated_at").
		Values(bucket, key, string(raw), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("bucket", "key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *sqlKV) Delete(ctx context.Context, bucket, key string) error {
	query, args := builder().
		Delete(KvTable.Name).
		Where(entsql.And(entsql.EQ("bucket", bucket), entsql.EQ("key", key))).
		Query()

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *sqlKV) Clear(ctx context.Context, bucket string) (int, error) {
	query, args := builder().
		Delete(KvTable.Name).
		Where(entsql.EQ("bucket", bucket)).
		Query()

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", bucket, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", bucket, err)
	}
	return int(n), nil
}

func (s *sqlKV) Keys(ctx context.Context, bucket string) ([]string, error) {
	query, args := builder().
		Select("key").
		From(entsql.Table(KvTable.Name)).
		Where(entsql.EQ("bucket", bucket)).
		OrderBy("key").
		Query()

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", bucket, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *sqlKV) Update(ctx context.Context, fn func(tx KV) error) error {
	// Nested updates join the enclosing transaction.
	if s.tx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&sqlKV{db: s.db, q: tx, tx: true}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

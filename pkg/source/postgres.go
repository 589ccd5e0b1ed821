package source

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/mailmerge/pkg/db"
	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryRecords runs query and turns every row into a record.
// Column order follows the select list; NULL becomes an empty string.
func QueryRecords(ctx context.Context, q Querier, query string, args ...any) ([]recipient.Fields, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var records []recipient.Fields
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}

		var rec recipient.Fields
		for i, name := range names {
			rec.Set(name, formatValue(values[i]))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return records, nil
}

// LoadPostgres connects with cfg, runs query and closes the pool.
func LoadPostgres(ctx context.Context, cfg db.Config, query string) ([]recipient.Fields, error) {
	if query == "" {
		return nil, ErrMissingQuery
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	qctx, cancel := db.QueryContext(ctx, cfg)
	defer cancel()
	return QueryRecords(qctx, pool, query)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case [16]byte:
		return uuid.UUID(x).String()
	case fmt.Stringer:
		return x.String()
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return ""
		}
		return formatValue(dv)
	}
	return fmt.Sprint(v)
}

package clickhouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/Khangithub17/real-estate-project/internal/analytics"
)

// ViewSink implements analytics.ViewSink on ClickHouse. View events land in
// the record_views table for trend reporting.
type ViewSink struct {
	db *sql.DB
}

var _ analytics.ViewSink = (*ViewSink)(nil)

func NewViewSink(addr, dbName string) (*ViewSink, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &ViewSink{db: conn}, nil
}

// LogBatch inserts a batch of view events. ClickHouse performs best with
// batched inserts, so one transaction covers the whole slice.
func (s *ViewSink) LogBatch(ctx context.Context, events []analytics.ViewEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO record_views (kind, record_id, viewed_at)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, evt := range events {
		if _, err := stmt.ExecContext(ctx, evt.Kind, evt.RecordID, evt.ViewedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for %s %s: %w", evt.Kind, evt.RecordID, err)
		}
	}

	return tx.Commit()
}

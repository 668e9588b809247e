package timers

import (
	"context"
	"fmt"
	"time"

	"github.com/soukbid/soukbid-cli/internal/storex"
)

type SQLiteRepository struct {
	db storex.Querier
}

func NewSQLiteRepository(db storex.Querier) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) All(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT auction_id, remaining_seconds, captured_at FROM timers`)
	if err != nil {
		return nil, fmt.Errorf("failed to list timers: %w", err)
	}
	defer rows.Close()

	var result []Snapshot
	for rows.Next() {
		var s Snapshot
		var capturedAt int64
		if err := rows.Scan(&s.AuctionID, &s.RemainingSeconds, &capturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timer row: %w", err)
		}
		s.CapturedAt = time.Unix(capturedAt, 0)
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timer rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timers (auction_id, remaining_seconds, captured_at) VALUES (?, ?, ?)
		ON CONFLICT(auction_id) DO UPDATE SET
			remaining_seconds = excluded.remaining_seconds,
			captured_at = excluded.captured_at
	`, s.AuctionID, s.RemainingSeconds, s.CapturedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save timer[%s]: %w", s.AuctionID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, auctionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM timers WHERE auction_id = ?`, auctionID)
	if err != nil {
		return fmt.Errorf("failed to delete timer[%s]: %w", auctionID, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM timers`)
	if err != nil {
		return fmt.Errorf("failed to clear timers: %w", err)
	}
	return nil
}

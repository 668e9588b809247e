package participation

import (
	"context"
	"fmt"

	"github.com/soukbid/soukbid-cli/internal/storex"
)

type SQLiteRepository struct {
	db storex.Querier
}

func NewSQLiteRepository(db storex.Querier) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) All(ctx context.Context) (map[string]Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT auction_id, joined, bid_amount FROM participation`)
	if err != nil {
		return nil, fmt.Errorf("failed to list participation: %w", err)
	}
	defer rows.Close()

	result := make(map[string]Record)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.AuctionID, &rec.Joined, &rec.BidAmount); err != nil {
			return nil, fmt.Errorf("failed to scan participation row: %w", err)
		}
		result[rec.AuctionID] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participation rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) MarkJoined(ctx context.Context, auctionID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO participation (auction_id, joined, bid_amount) VALUES (?, 1, 0)
		ON CONFLICT(auction_id) DO UPDATE SET joined = 1
	`, auctionID)
	if err != nil {
		return fmt.Errorf("failed to mark joined[%s]: %w", auctionID, err)
	}
	return nil
}

func (r *SQLiteRepository) SetBid(ctx context.Context, auctionID string, amount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO participation (auction_id, joined, bid_amount) VALUES (?, 1, ?)
		ON CONFLICT(auction_id) DO UPDATE SET bid_amount = excluded.bid_amount
	`, auctionID, amount)
	if err != nil {
		return fmt.Errorf("failed to set bid[%s]: %w", auctionID, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM participation`)
	if err != nil {
		return fmt.Errorf("failed to clear participation: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"priceScope/internal/model"
)

// Store provides Postgres persistence for quote snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertQuotes inserts or updates quote snapshots.
func (s *Store) UpsertQuotes(ctx context.Context, quotes []model.QuoteSnapshot) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(`
			INSERT INTO quote_snapshots (
				chain_id, pool_address, base_token, quote_token, fee,
				sqrt_price_x96, tick, price, captured_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			ON CONFLICT (chain_id, pool_address, captured_at)
			DO UPDATE SET
				base_token = EXCLUDED.base_token,
				quote_token = EXCLUDED.quote_token,
				fee = EXCLUDED.fee,
				sqrt_price_x96 = EXCLUDED.sqrt_price_x96,
				tick = EXCLUDED.tick,
				price = EXCLUDED.price,
				updated_at = now()
		`,
			int64(q.ChainID),
			q.PoolAddress,
			q.BaseToken.Address,
			q.QuoteToken.Address,
			int64(q.Fee),
			q.SqrtPriceX96,
			q.Tick,
			q.Price,
			q.Timestamp,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

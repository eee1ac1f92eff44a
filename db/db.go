package db

import (
	"context"
	"fmt"

	"restaurante/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is shared by every services call; each query borrows a connection.
var Pool *pgxpool.Pool

func Init(ctx context.Context, cfg config.DBConfig) error {
	p, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return fmt.Errorf("ping: %w", err)
	}
	Pool = p
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}

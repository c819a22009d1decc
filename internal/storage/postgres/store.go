package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"groStats/internal/model"
)

var (
	ErrPoolAcquire  = errors.New("postgres pool acquire failure")
	ErrQuery        = errors.New("postgres query failure")
	ErrInvalidQuery = errors.New("invalid query file")
)

// Query files.
const (
	CreateApySnapshots = "create_apy_snapshots.sql"
	InsertApySnapshot  = "insert_apy_snapshot.sql"
	SelectApySnapshots = "select_apy_snapshots.sql"
)

// Query files live under queries/<command>/ and are named <command>_*.sql.
var commands = map[string]struct{}{
	"select": {},
	"insert": {},
	"update": {},
	"delete": {},
	"create": {},
}

//go:embed queries
var queryFiles embed.FS

// Config configures the connection pool.
type Config struct {
	DSN      string
	MaxConns int32
}

// Result is the outcome of a named query.
type Result struct {
	Tag  pgconn.CommandTag
	Rows []map[string]any
}

// Store provides Postgres persistence for APY snapshots.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewStore(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse pg dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, logger: logger}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the snapshot table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Query(ctx, CreateApySnapshots)
	return err
}

// Query runs a named query file with one pooled connection and collects its rows.
func (s *Store) Query(ctx context.Context, file string, params ...any) (Result, error) {
	var result Result
	err := s.run(ctx, file, params, func(rows pgx.Rows) error {
		collected, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			return err
		}
		result.Rows = collected
		result.Tag = rows.CommandTag()
		return nil
	})
	return result, err
}

func (s *Store) run(ctx context.Context, file string, params []any, scan func(pgx.Rows) error) error {
	sql, err := loadQuery(file)
	if err != nil {
		return err
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		s.logger.Error("pool acquire failed", zap.String("query", file), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPoolAcquire, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, params...)
	if err == nil {
		err = scan(rows)
		rows.Close()
	}
	if err != nil {
		s.logger.Error("query failed",
			zap.String("query", file),
			zap.Int("params", len(params)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s: %w", ErrQuery, file, err)
	}
	return nil
}

// loadQuery resolves a file name to its embedded SQL. The command prefix of
// the name selects the directory.
func loadQuery(file string) (string, error) {
	if file == "" || file != path.Base(file) || !strings.HasSuffix(file, ".sql") {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuery, file)
	}
	command := strings.ToLower(strings.SplitN(file, "_", 2)[0])
	if _, ok := commands[command]; !ok {
		return "", fmt.Errorf("%w: unknown command %q", ErrInvalidQuery, command)
	}
	data, err := fs.ReadFile(queryFiles, path.Join("queries", command, file))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return string(data), nil
}

// PutApySnapshot upserts one snapshot keyed by network and timestamp.
func (s *Store) PutApySnapshot(ctx context.Context, snap model.ApySnapshot) error {
	_, err := s.Query(ctx, InsertApySnapshot,
		snap.Network,
		int64(snap.Timestamp),
		numeric(snap.ApyPwrd),
		numeric(snap.ApyGvt),
		numeric(snap.TvlPwrd),
		numeric(snap.TvlGvt),
		numeric(snap.TvlTotal),
		numeric(snap.Last3dApy),
	)
	return err
}

// ListApySnapshots returns stored snapshots newest first; limit 0 means all.
func (s *Store) ListApySnapshots(ctx context.Context, network string, limit int) ([]model.ApySnapshot, error) {
	out := []model.ApySnapshot{}
	err := s.run(ctx, SelectApySnapshots, []any{network, limit}, func(rows pgx.Rows) error {
		for rows.Next() {
			var (
				snap model.ApySnapshot
				ts   int64
			)
			if err := rows.Scan(
				&snap.Network,
				&ts,
				&snap.ApyPwrd,
				&snap.ApyGvt,
				&snap.TvlPwrd,
				&snap.TvlGvt,
				&snap.TvlTotal,
				&snap.Last3dApy,
				&snap.CreatedAtTs,
			); err != nil {
				return err
			}
			snap.Timestamp = uint64(ts)
			out = append(out, snap)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// numeric maps the N/A sentinel to zero so the row still stores.
func numeric(value string) string {
	if value == "" || value == model.NA {
		return "0"
	}
	return value
}

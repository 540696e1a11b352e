package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"chanBot/internal/domain"
	"chanBot/internal/infrastructure/telemetry"
)

var ErrEmptyPath = errors.New("sqlite: empty db path")

// defaultAliasAuth es el permiso que reciben los aliases creados antes de que
// existiera la columna auth.
const defaultAliasAuth = domain.PermStreamer | domain.PermMod | domain.PermReadOnly

// Store guarda las citas y los aliases de un canal.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, ErrEmptyPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: creating dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewStore envuelve una conexión ya abierta y migrada.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func migrate(db *sql.DB) error {
	const quoteTable = `
CREATE TABLE IF NOT EXISTS quote (
	id INTEGER PRIMARY KEY,
	quote TEXT NOT NULL
);`

	if _, err := db.Exec(quoteTable); err != nil {
		return fmt.Errorf("sqlite: migrate quote: %w", err)
	}

	const aliasTable = `
CREATE TABLE IF NOT EXISTS alias (
	id INTEGER PRIMARY KEY,
	auth INTEGER,
	alias TEXT NOT NULL,
	command TEXT NOT NULL
);`

	if _, err := db.Exec(aliasTable); err != nil {
		return fmt.Errorf("sqlite: migrate alias: %w", err)
	}

	addAuth := fmt.Sprintf(`ALTER TABLE alias ADD COLUMN auth INTEGER DEFAULT %d;`, uint8(defaultAliasAuth))
	if _, err := db.Exec(addAuth); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return fmt.Errorf("sqlite: add auth column: %w", err)
		}
	}

	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) GetAlias(ctx context.Context, name string) (*domain.Alias, error) {
	const query = `
SELECT auth, command
FROM alias
WHERE alias = ?
LIMIT 1;
`

	s.mu.Lock()
	defer s.mu.Unlock()

	var auth sql.NullInt64
	var command string
	if err := s.db.QueryRowContext(ctx, query, name).Scan(&auth, &command); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: get alias: %w", err)
	}

	perms := defaultAliasAuth
	if auth.Valid {
		// un auth fuera de rango o con bits desconocidos deja el alias inutilizable
		if auth.Int64 < 0 || auth.Int64 > 0xFF || !domain.Permissions(auth.Int64).Valid() {
			slog.Warn("sqlite: alias with invalid auth ignored",
				slog.String("alias", name),
				slog.Int64("auth", auth.Int64),
			)
			telemetry.ObserveStoreError("get_alias")
			return nil, nil
		}
		perms = domain.Permissions(auth.Int64)
	}

	return &domain.Alias{
		Name:        name,
		Permissions: perms,
		Command:     command,
	}, nil
}

func (s *Store) PutAlias(ctx context.Context, alias *domain.Alias) error {
	if alias == nil {
		return errors.New("sqlite: nil alias")
	}

	const stmt = `INSERT INTO alias (auth, alias, command) VALUES (?, ?, ?);`

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, stmt, int64(alias.Permissions), alias.Name, alias.Command); err != nil {
		return fmt.Errorf("sqlite: put alias: %w", err)
	}
	return nil
}

func (s *Store) RemoveAlias(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM alias WHERE alias = ?;`, name); err != nil {
		return fmt.Errorf("sqlite: remove alias: %w", err)
	}
	return nil
}

func (s *Store) UpdateAliasPermissions(ctx context.Context, name string, perms domain.Permissions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `UPDATE alias SET auth = ? WHERE alias = ?;`, int64(perms), name); err != nil {
		return fmt.Errorf("sqlite: update alias: %w", err)
	}
	return nil
}

func (s *Store) AddQuote(ctx context.Context, text string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `INSERT INTO quote (quote) VALUES (?);`, text)
	if err != nil {
		return 0, fmt.Errorf("sqlite: add quote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite: add quote id: %w", err)
	}
	return id, nil
}

func (s *Store) GetQuote(ctx context.Context, id int64) (*domain.Quote, error) {
	return s.scanQuote(ctx, `SELECT id, quote FROM quote WHERE id = ? LIMIT 1;`, id)
}

func (s *Store) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	return s.scanQuote(ctx, `SELECT id, quote FROM quote ORDER BY RANDOM() LIMIT 1;`)
}

func (s *Store) scanQuote(ctx context.Context, query string, args ...any) (*domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var q domain.Quote
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&q.ID, &q.Text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: get quote: %w", err)
	}
	return &q, nil
}

func (s *Store) RemoveQuote(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM quote WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("sqlite: remove quote: %w", err)
	}
	return nil
}

var (
	_ domain.AliasRepository = (*Store)(nil)
	_ domain.QuoteRepository = (*Store)(nil)
)

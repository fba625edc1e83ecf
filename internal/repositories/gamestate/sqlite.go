package gamestate

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/arena-bot/internal/entities"
	dnderr "github.com/KirkDiggler/arena-bot/internal/errors"
	"github.com/KirkDiggler/arena-bot/internal/repositories/gamestate/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLiteRepoConfig holds configuration for the SQLite repository
type SQLiteRepoConfig struct {
	Path   string
	GameID string
}

// SQLiteRepository persists a game in a SQLite file. Several games can share
// one file; every row is keyed by game ID.
type SQLiteRepository struct {
	sqlDB  *sql.DB
	gameID string
	lock   localLock
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens the database and applies embedded migrations
func NewSQLiteRepository(ctx context.Context, cfg *SQLiteRepoConfig) (*SQLiteRepository, error) {
	if cfg == nil || strings.TrimSpace(cfg.Path) == "" {
		return nil, dnderr.InvalidArgument("sqlite path is required")
	}
	if cfg.GameID == "" {
		return nil, dnderr.InvalidArgument("game ID is required")
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, dnderr.Wrap(err, "open sqlite db")
	}
	// one writer keeps read-your-writes simple inside a game lock
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "ping sqlite db")
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "run migrations")
	}

	return &SQLiteRepository{
		sqlDB:  sqlDB,
		gameID: cfg.GameID,
		lock:   newLocalLock(),
	}, nil
}

// Close closes the SQLite handle
// wrap stamps store faults with the game they happened in
func (s *SQLiteRepository) wrap(err error, message string) *dnderr.Error {
	return dnderr.Wrap(err, message).ForGame(s.gameID)
}

func (s *SQLiteRepository) wrapf(err error, format string, args ...any) *dnderr.Error {
	return dnderr.Wrapf(err, format, args...).ForGame(s.gameID)
}

func (s *SQLiteRepository) wrapWithCode(err error, code dnderr.Code, message string) *dnderr.Error {
	return dnderr.WrapWithCode(err, code, message).ForGame(s.gameID)
}

func (s *SQLiteRepository) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// sqlExecutor is satisfied by both the pool and a connection holding a
// transaction
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// db returns the connection of the open game transaction when ctx is inside
// WithGameLock, the pool otherwise
func (s *SQLiteRepository) db(ctx context.Context) sqlExecutor {
	if conn, ok := stagedFrom(ctx, s).(*sql.Conn); ok {
		return conn
	}
	return s.sqlDB
}

func isBusy(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3lib.SQLITE_BUSY
	}
	return false
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func fieldColumn(field entities.Field) string {
	if field == entities.FieldStrength {
		return "strength"
	}
	return "life"
}

func (s *SQLiteRepository) exists(ctx context.Context, table, name string) (bool, error) {
	var found int
	err := s.db(ctx).QueryRowContext(ctx,
		"SELECT 1 FROM "+table+" WHERE game_id = ? AND name = ?", s.gameID, name,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, s.wrapf(err, "failed to check %s %s", table, name)
	}
	return true, nil
}

func (s *SQLiteRepository) CharacterExists(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, "characters", name)
}

func (s *SQLiteRepository) CreatureExists(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, "creatures", name)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*entities.Character, error) {
	var (
		char           entities.Character
		variety, reach string
	)
	if err := row.Scan(&char.Name, &variety, &reach, &char.Strength, &char.Life); err != nil {
		return nil, err
	}

	var err error
	if char.Variety, err = entities.ParseVariety(variety); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "corrupt character "+char.Name)
	}
	if char.Reach, err = entities.ParseReach(reach); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "corrupt character "+char.Name)
	}

	return &char, nil
}

func scanCreature(row rowScanner) (*entities.Creature, error) {
	var (
		creature entities.Creature
		reach    string
	)
	if err := row.Scan(&creature.Name, &reach, &creature.Strength, &creature.Life); err != nil {
		return nil, err
	}

	var err error
	if creature.Reach, err = entities.ParseReach(reach); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "corrupt creature "+creature.Name)
	}

	return &creature, nil
}

func (s *SQLiteRepository) GetCharacter(ctx context.Context, name string) (*entities.Character, error) {
	row := s.db(ctx).QueryRowContext(ctx,
		`SELECT name, variety, reach, strength, life FROM characters WHERE game_id = ? AND name = ?`,
		s.gameID, name,
	)

	char, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dnderr.NotFoundf("character not found: %s", name).About(name)
		}
		return nil, s.wrapf(err, "failed to get character %s", name)
	}

	return char, nil
}

func (s *SQLiteRepository) GetCreature(ctx context.Context, name string) (*entities.Creature, error) {
	row := s.db(ctx).QueryRowContext(ctx,
		`SELECT name, reach, strength, life FROM creatures WHERE game_id = ? AND name = ?`,
		s.gameID, name,
	)

	creature, err := scanCreature(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dnderr.NotFoundf("creature not found: %s", name).About(name)
		}
		return nil, s.wrapf(err, "failed to get creature %s", name)
	}

	return creature, nil
}

func (s *SQLiteRepository) CreateCharacter(ctx context.Context, char *entities.Character) error {
	if err := validateCharacter(char); err != nil {
		return err
	}

	_, err := s.db(ctx).ExecContext(ctx,
		`INSERT INTO characters (game_id, name, variety, reach, strength, life) VALUES (?, ?, ?, ?, ?, ?)`,
		s.gameID, char.Name, char.Variety.String(), char.Reach.String(), char.Strength, char.Life,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dnderr.AlreadyExistsf("character %s already exists", char.Name).About(char.Name)
		}
		return s.wrapf(err, "failed to create character %s", char.Name)
	}

	return nil
}

func (s *SQLiteRepository) CreateCreature(ctx context.Context, creature *entities.Creature) error {
	if err := validateCreature(creature); err != nil {
		return err
	}

	_, err := s.db(ctx).ExecContext(ctx,
		`INSERT INTO creatures (game_id, name, reach, strength, life) VALUES (?, ?, ?, ?, ?)`,
		s.gameID, creature.Name, creature.Reach.String(), creature.Strength, creature.Life,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return dnderr.AlreadyExistsf("creature %s already exists", creature.Name).About(creature.Name)
		}
		return s.wrapf(err, "failed to create creature %s", creature.Name)
	}

	return nil
}

func (s *SQLiteRepository) setField(ctx context.Context, table, kind, name string, field entities.Field, value int) error {
	if err := validateField(field, value); err != nil {
		return err
	}

	res, err := s.db(ctx).ExecContext(ctx,
		"UPDATE "+table+" SET "+fieldColumn(field)+" = ? WHERE game_id = ? AND name = ?",
		value, s.gameID, name,
	)
	if err != nil {
		return s.wrapf(err, "failed to set %s of %s %s", field, kind, name)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return s.wrapf(err, "failed to set %s of %s %s", field, kind, name)
	}
	if n == 0 {
		return dnderr.NotFoundf("%s not found: %s", kind, name).About(name)
	}

	return nil
}

func (s *SQLiteRepository) SetCharacterField(ctx context.Context, name string, field entities.Field, value int) error {
	return s.setField(ctx, "characters", "character", name, field, value)
}

func (s *SQLiteRepository) SetCreatureField(ctx context.Context, name string, field entities.Field, value int) error {
	return s.setField(ctx, "creatures", "creature", name, field, value)
}

func (s *SQLiteRepository) RemoveCreature(ctx context.Context, name string) error {
	res, err := s.db(ctx).ExecContext(ctx,
		`DELETE FROM creatures WHERE game_id = ? AND name = ?`, s.gameID, name,
	)
	if err != nil {
		return s.wrapf(err, "failed to remove creature %s", name)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return s.wrapf(err, "failed to remove creature %s", name)
	}
	if n == 0 {
		return dnderr.NotFoundf("creature not found: %s", name).About(name)
	}

	return nil
}

func (s *SQLiteRepository) getTeamColumn(ctx context.Context, column string) (int, error) {
	var value int
	err := s.db(ctx).QueryRowContext(ctx,
		"SELECT "+column+" FROM teams WHERE game_id = ?", s.gameID,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, s.wrapf(err, "failed to get team %s", column)
	}
	return value, nil
}

func (s *SQLiteRepository) setTeamColumn(ctx context.Context, column string, value int) error {
	if err := validateCounter(column, value); err != nil {
		return err
	}

	_, err := s.db(ctx).ExecContext(ctx,
		"INSERT INTO teams (game_id, "+column+") VALUES (?, ?) "+
			"ON CONFLICT(game_id) DO UPDATE SET "+column+" = excluded."+column,
		s.gameID, value,
	)
	if err != nil {
		return s.wrapf(err, "failed to set team %s", column)
	}
	return nil
}

func (s *SQLiteRepository) GetTeamCurrency(ctx context.Context) (int, error) {
	return s.getTeamColumn(ctx, "currency")
}

func (s *SQLiteRepository) SetTeamCurrency(ctx context.Context, currency int) error {
	return s.setTeamColumn(ctx, "currency", currency)
}

func (s *SQLiteRepository) GetKillCount(ctx context.Context) (int, error) {
	return s.getTeamColumn(ctx, "kill_count")
}

func (s *SQLiteRepository) SetKillCount(ctx context.Context, kills int) error {
	return s.setTeamColumn(ctx, "kill_count", kills)
}

func (s *SQLiteRepository) ListCharacters(ctx context.Context) ([]*entities.Character, error) {
	rows, err := s.db(ctx).QueryContext(ctx,
		`SELECT name, variety, reach, strength, life FROM characters WHERE game_id = ? ORDER BY name`,
		s.gameID,
	)
	if err != nil {
		return nil, s.wrap(err, "failed to list characters")
	}
	defer rows.Close()

	result := []*entities.Character{}
	for rows.Next() {
		char, err := scanCharacter(rows)
		if err != nil {
			return nil, s.wrap(err, "failed to scan character")
		}
		result = append(result, char)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(err, "failed to list characters")
	}

	return result, nil
}

func (s *SQLiteRepository) ListCreatures(ctx context.Context) ([]*entities.Creature, error) {
	rows, err := s.db(ctx).QueryContext(ctx,
		`SELECT name, reach, strength, life FROM creatures WHERE game_id = ? ORDER BY name`,
		s.gameID,
	)
	if err != nil {
		return nil, s.wrap(err, "failed to list creatures")
	}
	defer rows.Close()

	result := []*entities.Creature{}
	for rows.Next() {
		creature, err := scanCreature(rows)
		if err != nil {
			return nil, s.wrap(err, "failed to scan creature")
		}
		result = append(result, creature)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(err, "failed to list creatures")
	}

	return result, nil
}

func (s *SQLiteRepository) Reset(ctx context.Context) error {
	if conn, ok := stagedFrom(ctx, s).(*sql.Conn); ok {
		return s.deleteGame(ctx, conn)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return s.wrap(err, "failed to begin reset")
	}
	if err := s.deleteGame(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return s.wrap(err, "failed to commit reset")
	}
	return nil
}

func (s *SQLiteRepository) deleteGame(ctx context.Context, ex sqlExecutor) error {
	for _, table := range []string{"characters", "creatures", "teams"} {
		if _, err := ex.ExecContext(ctx, "DELETE FROM "+table+" WHERE game_id = ?", s.gameID); err != nil {
			return s.wrapf(err, "failed to reset %s", table)
		}
	}
	return nil
}

// WithGameLock runs fn inside one BEGIN IMMEDIATE transaction on a dedicated
// connection. IMMEDIATE takes the file's write lock up front, so another
// process sharing the database waits on busy_timeout and then gets Conflict.
// Every store call made with fn's context joins the transaction, which
// commits only when fn returns nil.
func (s *SQLiteRepository) WithGameLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return dnderr.InvalidArgument("lock function cannot be nil")
	}

	return s.lock.run(ctx, func(ctx context.Context) error {
		conn, err := s.sqlDB.Conn(ctx)
		if err != nil {
			return s.wrap(err, "failed to get sqlite connection")
		}
		defer conn.Close()

		if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
			if isBusy(err) {
				return dnderr.Conflictf("game %s is busy", s.gameID).ForGame(s.gameID)
			}
			return s.wrap(err, "failed to begin game transaction")
		}

		committed := false
		defer func() {
			if !committed {
				_, _ = conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
			}
		}()

		if err := fn(withStaged(ctx, s, conn)); err != nil {
			return err
		}

		if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
			return s.wrap(err, "failed to commit game transaction")
		}
		committed = true
		return nil
	})
}

// Package store persists verification sessions and verdicts in MySQL/MariaDB.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/util"
	"github.com/xor-shift/rngeasy/util/rng"
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS sessions (" +
		"session_id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY" +
		", seed INT UNSIGNED NOT NULL" +
		", initial_state CHAR(16) NOT NULL" +
		", created_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
	"CREATE TABLE IF NOT EXISTS verdicts (" +
		"verdict_id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY" +
		", session_id BIGINT UNSIGNED NOT NULL" +
		", seq BIGINT UNSIGNED NOT NULL" +
		", op VARCHAR(32) NOT NULL" +
		", expected VARCHAR(64) NOT NULL" +
		", got VARCHAR(64) NOT NULL" +
		", ok BOOLEAN NOT NULL" +
		", reason TEXT NOT NULL" +
		", insert_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP" +
		", INDEX (session_id, seq))",
}

const (
	insertSessionQuery = "INSERT INTO sessions (seed, initial_state) VALUES (?, ?) RETURNING session_id"
	selectSeedQuery    = "SELECT seed FROM sessions WHERE session_id=?"
	insertVerdictQuery = "INSERT INTO verdicts (session_id, seq, op, expected, got, ok, reason) VALUES (?, ?, ?, ?, ?, ?, ?)"
	selectVerdictQuery = "SELECT seq, op, expected, got, ok, reason, insert_time FROM verdicts WHERE session_id=? ORDER BY seq, verdict_id"
)

// Row is a stored verdict.
type Row struct {
	common.Verdict
	InsertTime time.Time
}

type Store struct {
	db *sql.DB
}

func DSN(cfg common.Config) string {
	dbConfig := mysql.Config{
		User:                 cfg.DBUser,
		Passwd:               cfg.DBPassword,
		Addr:                 cfg.DBAddress,
		DBName:               cfg.DBName,
		Collation:            "utf8mb4_general_ci",
		Net:                  "tcp",
		AllowNativePasswords: true,
		ParseTime:            true,
	}

	return dbConfig.FormatDSN()
}

func Open(cfg common.Config) (*Store, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "opening the database")
	}

	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migrating")
		}
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, seed uint32, initial rng.State) (uint64, error) {
	rows, err := s.db.QueryContext(ctx, insertSessionQuery, seed, initial.String())
	if err != nil {
		return 0, errors.Wrap(err, "inserting a session")
	}

	defer rows.Close()

	if !rows.Next() {
		return 0, errors.New("no rows returned from sql insert query")
	}

	var id uint64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Store) SessionSeed(ctx context.Context, id uint64) (uint32, error) {
	var seed uint32

	err := s.db.QueryRowContext(ctx, selectSeedQuery, id).Scan(&seed)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, common.ErrNoSession
	}
	if err != nil {
		return 0, errors.Wrapf(err, "looking up session %d", id)
	}

	return seed, nil
}

// InsertVerdicts writes a batch of verdicts in one transaction.
func (s *Store) InsertVerdicts(ctx context.Context, verdicts []common.Verdict) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertVerdictQuery)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range verdicts {
		if _, err = stmt.ExecContext(ctx,
			v.SessionID, v.Sequence, v.Op,
			util.ArrayToString(v.Expected), util.ArrayToString(v.Got),
			v.OK, v.Reason,
		); err != nil {
			return errors.Wrapf(err, "inserting verdict for seq %d", v.Sequence)
		}
	}

	return tx.Commit()
}

// Verdicts returns every stored verdict of a session ordered by sequence.
func (s *Store) Verdicts(ctx context.Context, sessionID uint64) ([]Row, error) {
	sqlRows, err := s.db.QueryContext(ctx, selectVerdictQuery, sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching verdicts for session %d", sessionID)
	}
	defer sqlRows.Close()

	var rows []Row
	for i := 0; sqlRows.Next(); i++ {
		row := Row{Verdict: common.Verdict{SessionID: sessionID}}

		var expected, got string
		if err = sqlRows.Scan(&row.Sequence, &row.Op, &expected, &got, &row.OK, &row.Reason, &row.InsertTime); err != nil {
			return nil, errors.Wrapf(err, "reading row %d of session %d", i, sessionID)
		}

		if row.Expected, err = parseWords(expected); err != nil {
			return nil, errors.Wrapf(err, "parsing expected words of row %d", i)
		}
		if row.Got, err = parseWords(got); err != nil {
			return nil, errors.Wrapf(err, "parsing reported words of row %d", i)
		}

		rows = append(rows, row)
	}

	return rows, sqlRows.Err()
}

func parseWords(s string) ([]uint32, error) {
	if len(s)%8 != 0 {
		return nil, errors.Errorf("bad word string length %d", len(s))
	}

	words := make([]uint32, len(s)/8)
	if err := util.StringToArray(s, words); err != nil {
		return nil, err
	}
	return words, nil
}

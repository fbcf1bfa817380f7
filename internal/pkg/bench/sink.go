package bench

import (
	"database/sql"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// CSVSink writes results as "k,run,elapsed_ms" rows.
type CSVSink struct {
	f *os.File
	w *csv.Writer
}

// NewCSVSink creates or truncates the file at path and writes the header.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s failed", path)
	}
	s := &CSVSink{f: f, w: csv.NewWriter(f)}
	if err := s.w.Write([]string{"k", "run", "elapsed_ms"}); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "write header failed")
	}
	return s, nil
}

func (s *CSVSink) Write(res Result) error {
	row := []string{
		strconv.Itoa(res.K),
		strconv.Itoa(res.Run),
		strconv.FormatInt(res.ElapsedMS, 10),
	}
	if err := s.w.Write(row); err != nil {
		return errors.Wrap(err, "write row failed")
	}
	s.w.Flush()
	return errors.Wrap(s.w.Error(), "flush row failed")
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.f.Close()
		return errors.Wrap(err, "flush failed")
	}
	return errors.Wrap(s.f.Close(), "close failed")
}

const createResultsTable = `CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	k INTEGER NOT NULL,
	run INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteSink appends results to the results table of a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens the database at path, creating the results table if needed.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s failed", path)
	}
	if _, err := db.Exec(createResultsTable); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create results table failed")
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Write(res Result) error {
	_, err := s.db.Exec(`INSERT INTO results (k, run, elapsed_ms) VALUES (?, ?, ?)`, res.K, res.Run, res.ElapsedMS)
	return errors.Wrap(err, "insert result failed")
}

// Results returns every stored result in insertion order.
func (s *SQLiteSink) Results() ([]Result, error) {
	rows, err := s.db.Query(`SELECT k, run, elapsed_ms FROM results ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query results failed")
	}
	defer rows.Close()
	var results []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.K, &res.Run, &res.ElapsedMS); err != nil {
			return nil, errors.Wrap(err, "scan result failed")
		}
		results = append(results, res)
	}
	return results, errors.Wrap(rows.Err(), "iterate results failed")
}

func (s *SQLiteSink) Close() error {
	return errors.Wrap(s.db.Close(), "close database failed")
}

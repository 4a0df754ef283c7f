// Adapted from the teacher's SQLiteTraceWriter (tracing/sqlite.go): same
// batched-insert-then-flush shape, the same xid-generated database name and
// atexit-registered final flush, but writing a single "events" table for
// paging events instead of the teacher's four tables (tasks, delays,
// progresses, dependencies) built around akita's task/event model, which
// has no equivalent here — a paging event has no parent, no duration, and
// no dependency graph.
package trace

import (
	"database/sql"
	"fmt"
	"os"

	// Needed to register the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLite batches paging events into a SQLite database, so a completed run
// can be queried afterward (e.g. `SELECT * FROM events WHERE op='FOUT'`).
// This is the pagesim-specific -oD extension beyond spec.md's O P F S x y f
// option set (see SPEC_FULL.md §4).
type SQLite struct {
	db        *sql.DB
	stmt      *sql.Stmt
	dbName    string
	buffered  []Event
	batchSize int
}

// NewSQLite returns a SQLite sink. If path is empty, a name is generated
// with xid.
func NewSQLite(path string) *SQLite {
	s := &SQLite{dbName: path, batchSize: 10000}
	atexit.Register(func() { s.Flush() })
	return s
}

// Init opens (creating) the database file and the events table.
func (s *SQLite) Init() error {
	if s.dbName == "" {
		s.dbName = "pagesim_trace_" + xid.New().String()
	}

	filename := s.dbName + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return fmt.Errorf("opening sqlite database: %w", err)
	}
	s.db = db

	if _, err := db.Exec(`
		create table events (
			inst_count integer not null,
			op         varchar(10) not null,
			pid        integer not null,
			vpage      integer not null,
			frame      integer not null
		)`); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	stmt, err := db.Prepare(
		"insert into events(inst_count, op, pid, vpage, frame) values (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	s.stmt = stmt

	return nil
}

// Instruction is a no-op: the SQLite sink only records paging events.
func (s *SQLite) Instruction(Instruction) {}

// Event buffers e, flushing once batchSize events have accumulated.
func (s *SQLite) Event(e Event) {
	s.buffered = append(s.buffered, e)
	if len(s.buffered) >= s.batchSize {
		s.Flush()
	}
}

// Flush writes all buffered events to the database inside one transaction.
func (s *SQLite) Flush() {
	if len(s.buffered) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		panic(err)
	}

	for _, e := range s.buffered {
		if _, err := tx.Stmt(s.stmt).Exec(e.InstCount, string(e.Op), e.PID, e.VPage, e.Frame); err != nil {
			panic(fmt.Errorf("inserting event %+v: %w", e, err))
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	s.buffered = nil
}

// Close flushes remaining events and closes the database connection.
func (s *SQLite) Close() error {
	s.Flush()
	return s.db.Close()
}

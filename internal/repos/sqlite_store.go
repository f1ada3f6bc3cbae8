package repos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
	"modernc.org/sqlite"

	"kidzplay/internal/domain"
)

// SQLiteStore keeps every collection in one table of JSON bodies.
type SQLiteStore struct {
	db *sqlx.DB
}

type docRow struct {
	ID   string `db:"id"`
	Body string `db:"body"`
}

// busyTimeoutMs bounds how long a writer waits on a lock held by another
// process sharing the file.
const busyTimeoutMs = 5000

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction("casefold", 1, casefold); err != nil {
		panic(err)
	}
}

// OpenSQLite opens (or creates) the document table at dsn. All statements go
// through a single connection, so writers in this process queue instead of
// failing with SQLITE_BUSY; an in-memory database also needs this to stay
// one database.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	log.Printf("[store] sqlite document store at %s", dsn)
	return &SQLiteStore{db: db}, nil
}

func withPragmas(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate", dsn, sep, busyTimeoutMs)
}

// casefold folds Unicode case so substring search matches the way the Mongo
// store's case-insensitive regex does. SQLite's LOWER only folds ASCII.
func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents(
  collection TEXT NOT NULL,
  id TEXT NOT NULL,
  body TEXT NOT NULL CHECK (json_valid(body)),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) Find(ctx context.Context, coll string, q Query) ([]domain.Document, error) {
	where := []string{`collection = ?`}
	args := []any{coll}
	for _, c := range q.Filter {
		if c.Contains {
			where = append(where, `instr(casefold(json_extract(body, ?)), casefold(?)) > 0`)
		} else {
			where = append(where, `json_extract(body, ?) = ?`)
		}
		args = append(args, jsonPath(c.Field), c.Value)
	}

	order := `rowid`
	if q.SortBy != "" && q.SortDir != 0 {
		dir := "ASC"
		if q.SortDir < 0 {
			dir = "DESC"
		}
		order = `json_extract(body, ?) ` + dir + `, rowid`
		args = append(args, jsonPath(q.SortBy))
	}

	query := `SELECT id, body FROM documents WHERE ` + strings.Join(where, ` AND `) + ` ORDER BY ` + order
	if q.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, q.Limit)
	}

	var rows []docRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find %s: %w", coll, err)
	}
	out := make([]domain.Document, 0, len(rows))
	for _, r := range rows {
		doc, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", coll, r.ID, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *SQLiteStore) FindOne(ctx context.Context, coll, id string) (domain.Document, error) {
	var r docRow
	err := s.db.GetContext(ctx, &r, `SELECT id, body FROM documents WHERE collection = ? AND id = ?`, coll, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s/%s: %w", coll, id, err)
	}
	return r.decode()
}

func (s *SQLiteStore) Insert(ctx context.Context, coll string, doc domain.Document) (domain.InsertResult, error) {
	id, _ := doc[domain.IDField].(string)
	if id == "" {
		id = uuid.NewString()
	}
	body, err := encodeBody(doc)
	if err != nil {
		return domain.InsertResult{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(collection, id, body) VALUES(?,?,?)`, coll, id, body); err != nil {
		return domain.InsertResult{}, fmt.Errorf("insert %s: %w", coll, err)
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, coll, id string, fields domain.Document) (domain.UpdateResult, error) {
	if id == "" {
		return domain.UpdateResult{}, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	err = tx.GetContext(ctx, &current, `SELECT body FROM documents WHERE collection = ? AND id = ?`, coll, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		body, err := encodeBody(fields)
		if err != nil {
			return domain.UpdateResult{}, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents(collection, id, body) VALUES(?,?,?)`, coll, id, body); err != nil {
			return domain.UpdateResult{}, fmt.Errorf("upsert %s/%s: %w", coll, id, err)
		}
		if err := tx.Commit(); err != nil {
			return domain.UpdateResult{}, err
		}
		return domain.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
	case err != nil:
		return domain.UpdateResult{}, fmt.Errorf("upsert %s/%s: %w", coll, id, err)
	}

	doc := domain.Document{}
	if err := json.Unmarshal([]byte(current), &doc); err != nil {
		return domain.UpdateResult{}, fmt.Errorf("decode %s/%s: %w", coll, id, err)
	}
	for k, v := range fields {
		doc[k] = v
	}
	body, err := encodeBody(doc)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	res := domain.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if body == current {
		return res, nil
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND id = ?`,
		body, coll, id); err != nil {
		return domain.UpdateResult{}, fmt.Errorf("upsert %s/%s: %w", coll, id, err)
	}
	if err := tx.Commit(); err != nil {
		return domain.UpdateResult{}, err
	}
	res.ModifiedCount = 1
	return res, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, coll, id string) (domain.DeleteResult, error) {
	r, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, coll, id)
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete %s/%s: %w", coll, id, err)
	}
	n, err := r.RowsAffected()
	if err != nil {
		return domain.DeleteResult{}, err
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteStore) Close(context.Context) error { return s.db.Close() }

func (r docRow) decode() (domain.Document, error) {
	doc := domain.Document{}
	if err := json.Unmarshal([]byte(r.Body), &doc); err != nil {
		return nil, err
	}
	doc[domain.IDField] = r.ID
	return doc, nil
}

// encodeBody stores everything but the id, which lives in its own column.
func encodeBody(doc domain.Document) (string, error) {
	body := make(domain.Document, len(doc))
	for k, v := range doc {
		if k != domain.IDField {
			body[k] = v
		}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(b), nil
}

func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, ``) + `"`
}

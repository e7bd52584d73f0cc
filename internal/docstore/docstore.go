// Package docstore is a collection-of-JSON-documents store backed by a
// single sqlite file. It stands in for the managed document database the
// rest of the code treats as an external collaborator: repositories see
// collections, string ids and map filters, never tables.
package docstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Update and Delete when the target document
// does not exist. Reads report a miss as (nil, nil) instead.
var ErrNotFound = errors.New("docstore: document not found")

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	doc TEXT NOT NULL,
	PRIMARY KEY (collection, id)
);
`

// Open opens (creating if needed) the store at path. ":memory:" gives a
// private in-memory store, which the tests use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("docstore: open %s: %w", path, err)
	}
	// Single connection: sqlite allows one writer, and an in-memory
	// database exists per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores doc in collection under a freshly generated id. The
// document's own "_id" key, if any, is not stored.
func (s *Store) Insert(collection string, doc map[string]any) (string, error) {
	id := uuid.NewString()
	payload, err := marshalDoc(doc)
	if err != nil {
		return "", err
	}
	if _, err := s.db.Exec(
		`INSERT INTO documents (collection, id, doc) VALUES (?, ?, ?)`,
		collection, id, payload,
	); err != nil {
		return "", fmt.Errorf("docstore: insert into %s: %w", collection, err)
	}
	return id, nil
}

// Get returns the document with the given id, or (nil, nil) when it does
// not exist.
func (s *Store) Get(collection, id string) (map[string]any, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT doc FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: get %s/%s: %w", collection, id, err)
	}
	return unmarshalDoc(id, payload)
}

// FindOptions controls ordering and pagination. Sort maps a top-level
// document key to 1 (ascending) or -1 (descending).
type FindOptions struct {
	Sort  map[string]int
	Skip  int
	Limit int
}

// Find returns the documents of collection matching filter. Filter keys
// are top-level document keys; a plain value means equality, nil means
// the key is absent or null, and a map value holds comparison operators
// ($gt, $gte, $lt, $lte, $ne).
func (s *Store) Find(collection string, filter map[string]any, opts *FindOptions) ([]map[string]any, error) {
	where, args, err := buildWhere(collection, filter)
	if err != nil {
		return nil, err
	}
	q := `SELECT id, doc FROM documents WHERE ` + where
	if opts != nil {
		if clause := orderClause(opts.Sort); clause != "" {
			q += ` ORDER BY ` + clause
		}
		if opts.Limit > 0 || opts.Skip > 0 {
			limit := opts.Limit
			if limit <= 0 {
				limit = -1
			}
			q += fmt.Sprintf(` LIMIT %d OFFSET %d`, limit, opts.Skip)
		}
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("docstore: find in %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []map[string]any
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("docstore: scan %s: %w", collection, err)
		}
		doc, err := unmarshalDoc(id, payload)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Count returns the number of documents of collection matching filter.
func (s *Store) Count(collection string, filter map[string]any) (int, error) {
	where, args, err := buildWhere(collection, filter)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("docstore: count %s: %w", collection, err)
	}
	return n, nil
}

// Update merges partial into the stored document. Keys present in
// partial overwrite stored keys; other stored keys are preserved.
func (s *Store) Update(collection, id string, partial map[string]any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("docstore: update %s/%s: %w", collection, id, err)
	}
	defer tx.Rollback()

	var payload string
	err = tx.QueryRow(
		`SELECT doc FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("docstore: update %s/%s: %w", collection, id, err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return fmt.Errorf("docstore: update %s/%s: corrupt document: %w", collection, id, err)
	}
	for k, v := range partial {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	merged, err := marshalDoc(doc)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(
		`UPDATE documents SET doc = ? WHERE collection = ? AND id = ?`,
		merged, collection, id,
	); err != nil {
		return fmt.Errorf("docstore: update %s/%s: %w", collection, id, err)
	}
	return tx.Commit()
}

// Delete removes the document with the given id.
func (s *Store) Delete(collection, id string) error {
	res, err := s.db.Exec(`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("docstore: delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalDoc(doc map[string]any) (string, error) {
	clean := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		clean[k] = v
	}
	payload, err := json.Marshal(clean)
	if err != nil {
		return "", fmt.Errorf("docstore: marshal document: %w", err)
	}
	return string(payload), nil
}

func unmarshalDoc(id, payload string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("docstore: corrupt document %s: %w", id, err)
	}
	doc["_id"] = id
	return doc, nil
}

var operators = map[string]string{
	"$gt":  ">",
	"$gte": ">=",
	"$lt":  "<",
	"$lte": "<=",
	"$ne":  "!=",
}

func buildWhere(collection string, filter map[string]any) (string, []any, error) {
	clauses := []string{"collection = ?"}
	args := []any{collection}

	for _, key := range sortedKeys(filter) {
		path := "$." + key
		switch v := filter[key].(type) {
		case nil:
			clauses = append(clauses, `json_extract(doc, ?) IS NULL`)
			args = append(args, path)
		case map[string]any:
			for _, op := range sortedKeys(v) {
				sqlOp, ok := operators[op]
				if !ok {
					return "", nil, fmt.Errorf("docstore: unknown operator %q", op)
				}
				clauses = append(clauses, `json_extract(doc, ?) `+sqlOp+` ?`)
				args = append(args, path, v[op])
			}
		default:
			clauses = append(clauses, `json_extract(doc, ?) = ?`)
			args = append(args, path, v)
		}
	}
	return strings.Join(clauses, " AND "), args, nil
}

func orderClause(sortSpec map[string]int) string {
	var parts []string
	for _, key := range sortedKeys(sortSpec) {
		dir := "ASC"
		if sortSpec[key] < 0 {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf(`json_extract(doc, '$.%s') %s`, key, dir))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/tidwall/gjson"

	"github.com/rlaig/ezorder/internal/filter"
)

// MySQL keeps every collection in one records table with the document in a
// JSON text column. See database.Migrate for the schema.
type MySQL struct {
	DB  *sql.DB
	now func() time.Time
}

func NewMySQL(db *sql.DB) *MySQL { return &MySQL{DB: db, now: time.Now} }

const mysqlDuplicate = 1062

func (s *MySQL) GetOne(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var data []byte
	err := s.DB.QueryRowContext(ctx,
		"SELECT data FROM records WHERE collection=? AND id=? LIMIT 1",
		collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *MySQL) where(collection string, q Query) (string, []any, string, error) {
	node, err := filter.Parse(q.Filter)
	if err != nil {
		return "", nil, "", err
	}
	order, err := filter.ParseSort(q.Sort)
	if err != nil {
		return "", nil, "", err
	}
	cond, args := compileFilter(node)
	return "collection=? AND " + cond, append([]any{collection}, args...), compileSort(order), nil
}

func (s *MySQL) GetList(ctx context.Context, collection string, page, perPage int, q Query) (ListResult, error) {
	page, perPage = normalizePage(page, perPage)
	cond, args, order, err := s.where(collection, q)
	if err != nil {
		return ListResult{}, err
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE "+cond, args...).Scan(&total); err != nil {
		return ListResult{}, err
	}
	items, err := s.query(ctx,
		"SELECT data FROM records WHERE "+cond+" ORDER BY "+order+" LIMIT ? OFFSET ?",
		append(args, perPage, (page-1)*perPage)...)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages(total, perPage),
		Items:      items,
	}, nil
}

func (s *MySQL) GetFullList(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	cond, args, order, err := s.where(collection, q)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, "SELECT data FROM records WHERE "+cond+" ORDER BY "+order, args...)
}

func (s *MySQL) query(ctx context.Context, q string, args ...any) ([]json.RawMessage, error) {
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (s *MySQL) Create(ctx context.Context, collection string, data map[string]any) (json.RawMessage, error) {
	doc, id := newDocument(data, s.now())
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	field, uniq, hasUniq := uniqueValue(collection, doc)
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO records (collection, id, data, created, updated, uniq_key) VALUES (?,?,?,?,?,?)",
		collection, id, raw, doc["created"], doc["updated"], nullable(uniq, hasUniq))
	if err != nil {
		return nil, duplicateError(err, collection, field, raw)
	}
	return raw, nil
}

func (s *MySQL) Update(ctx context.Context, collection, id string, data map[string]any) (json.RawMessage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var existing []byte
	err = tx.QueryRowContext(ctx,
		"SELECT data FROM records WHERE collection=? AND id=? FOR UPDATE",
		collection, id).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc, err := mergeDocument(existing, data, s.now())
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	field, uniq, hasUniq := uniqueValue(collection, doc)
	_, err = tx.ExecContext(ctx,
		"UPDATE records SET data=?, updated=?, uniq_key=? WHERE collection=? AND id=?",
		raw, doc["updated"], nullable(uniq, hasUniq), collection, id)
	if err != nil {
		return nil, duplicateError(err, collection, field, raw)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *MySQL) Delete(ctx context.Context, collection, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM records WHERE collection=? AND id=?", collection, id)
	if err != nil {
		return err
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

func nullable(s string, ok bool) sql.NullString {
	return sql.NullString{String: s, Valid: ok}
}

// duplicateError maps a MySQL duplicate key error onto a FieldError. The
// primary key collides only when the caller supplied an id.
func duplicateError(err error, collection, field string, raw []byte) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicate {
		return err
	}
	if field == "" || strings.Contains(me.Message, "PRIMARY") || !gjson.GetBytes(raw, field).Exists() {
		field = "id"
	}
	return &FieldError{Collection: collection, Fields: map[string]string{field: uniqueMsg}}
}

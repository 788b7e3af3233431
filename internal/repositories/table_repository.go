package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tunitour/pkg/utils"
)

// Row is a loosely-shaped record from a table whose columns are only known at runtime.
type Row map[string]interface{}

// TableRepository probes and reads tables by name. Table and column names are always
// quoted; callers must still only pass names that came from ListTables.
type TableRepository interface {
	ListTables(ctx context.Context) ([]string, error)
	CityTables(ctx context.Context, category utils.Category) ([]string, error)
	HasTable(ctx context.Context, table string) (bool, error)
	Columns(ctx context.Context, table string) ([]string, error)
	HasColumn(ctx context.Context, table, column string) (bool, error)

	FindRowByID(ctx context.Context, table, id string) (Row, error)
	ListRows(ctx context.Context, table, orderBy string) ([]Row, error)
	RowsMissing(ctx context.Context, table, column string) ([]Row, error)

	AddColumn(ctx context.Context, table, column, sqlType string) error
	BackfillColumn(ctx context.Context, table, column string, value interface{}) (int64, error)
	UpdateColumnByIDs(ctx context.Context, table, column string, values map[string]string) (int64, error)
	UpdateColumnForID(ctx context.Context, table, column, id string, value interface{}) error
}

type tableRepository struct {
	db  *gorm.DB
	sdb *sqlx.DB
}

func NewTableRepository(db *gorm.DB, sdb *sqlx.DB) TableRepository {
	return &tableRepository{db: db, sdb: sdb}
}

func quote(name string) string { return pq.QuoteIdentifier(name) }

func (r *tableRepository) ListTables(ctx context.Context) ([]string, error) {
	tables, err := r.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	sort.Strings(tables)
	return tables, nil
}

func (r *tableRepository) CityTables(ctx context.Context, category utils.Category) ([]string, error) {
	tables, err := r.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0)
	for _, t := range tables {
		if category.IsCityTable(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *tableRepository) HasTable(ctx context.Context, table string) (bool, error) {
	tables, err := r.ListTables(ctx)
	if err != nil {
		return false, err
	}
	i := sort.SearchStrings(tables, table)
	return i < len(tables) && tables[i] == table, nil
}

func (r *tableRepository) Columns(ctx context.Context, table string) ([]string, error) {
	rows, err := r.sdb.QueryxContext(ctx, "SELECT * FROM "+quote(table)+" WHERE 1 = 0")
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", table, err)
	}
	return cols, nil
}

func (r *tableRepository) HasColumn(ctx context.Context, table, column string) (bool, error) {
	cols, err := r.Columns(ctx, table)
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if strings.EqualFold(c, column) {
			return true, nil
		}
	}
	return false, nil
}

// FindRowByID compares ids as text so uuid and integer keyed tables behave alike.
func (r *tableRepository) FindRowByID(ctx context.Context, table, id string) (Row, error) {
	q := r.sdb.Rebind("SELECT * FROM " + quote(table) + " WHERE CAST(id AS TEXT) = ? LIMIT 1")
	rows, err := r.scan(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("find %s in %s: %w", id, table, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *tableRepository) ListRows(ctx context.Context, table, orderBy string) ([]Row, error) {
	q := "SELECT * FROM " + quote(table)
	if orderBy != "" {
		q += " ORDER BY " + quote(orderBy)
	}
	rows, err := r.scan(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}

func (r *tableRepository) RowsMissing(ctx context.Context, table, column string) ([]Row, error) {
	col := quote(column)
	q := "SELECT * FROM " + quote(table) + " WHERE " + col + " IS NULL OR " + col + " = ''"
	rows, err := r.scan(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("rows of %s missing %s: %w", table, column, err)
	}
	return rows, nil
}

func (r *tableRepository) AddColumn(ctx context.Context, table, column, sqlType string) error {
	q := "ALTER TABLE " + quote(table) + " ADD COLUMN " + quote(column) + " " + sqlType
	if _, err := r.sdb.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

func (r *tableRepository) BackfillColumn(ctx context.Context, table, column string, value interface{}) (int64, error) {
	col := quote(column)
	q := r.sdb.Rebind("UPDATE " + quote(table) + " SET " + col + " = ? WHERE " + col + " IS NULL OR " + col + " = ''")
	res, err := r.sdb.ExecContext(ctx, q, value)
	if err != nil {
		return 0, fmt.Errorf("backfill %s.%s: %w", table, column, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// UpdateColumnByIDs writes all values in a single CASE statement.
func (r *tableRepository) UpdateColumnByIDs(ctx context.Context, table, column string, values map[string]string) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	args := make([]interface{}, 0, len(ids)*3)
	b.WriteString("UPDATE " + quote(table) + " SET " + quote(column) + " = CASE CAST(id AS TEXT)")
	for _, id := range ids {
		b.WriteString(" WHEN ? THEN ?")
		args = append(args, id, values[id])
	}
	b.WriteString(" END WHERE CAST(id AS TEXT) IN (?" + strings.Repeat(", ?", len(ids)-1) + ")")
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := r.sdb.ExecContext(ctx, r.sdb.Rebind(b.String()), args...)
	if err != nil {
		return 0, fmt.Errorf("batch update %s.%s: %w", table, column, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *tableRepository) UpdateColumnForID(ctx context.Context, table, column, id string, value interface{}) error {
	q := r.sdb.Rebind("UPDATE " + quote(table) + " SET " + quote(column) + " = ? WHERE CAST(id AS TEXT) = ?")
	if _, err := r.sdb.ExecContext(ctx, q, value, id); err != nil {
		return fmt.Errorf("update %s.%s for %s: %w", table, column, id, err)
	}
	return nil
}

func (r *tableRepository) scan(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	rows, err := r.sdb.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		m := map[string]interface{}{}
		if err := rows.MapScan(m); err != nil {
			return nil, err
		}
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				m[k] = string(b)
			}
		}
		out = append(out, Row(m))
	}
	return out, rows.Err()
}

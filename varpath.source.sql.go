package varpath

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database defaults
const (
	PostgresDriverName         = "postgres"
	DefaultPostgresPingTimeout = 5 * time.Second
)

// RowSet is a materialised SQL result. It is registered as an ordered
// container: index i is the i-th row, and each row is an ordered Mapping of
// column name to value, so {{ rows.0.name }} and loops over rows work like
// any other sequence.
type RowSet struct {
	Columns []string
	Rows    []*Mapping
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// Value wraps the row set as an Opaque value for a context scope.
func (rs *RowSet) Value() Value {
	return Opaque(rs)
}

func registerRowSet(r *Registry) {
	mustRegister(r.RegisterOrderedContainer(TypeOf[*RowSet](), func(v Value) Iteration {
		ref, _ := v.Ref()
		rs, ok := ref.(*RowSet)
		if !ok || rs == nil {
			return NotIterable()
		}
		rows := make([]Value, len(rs.Rows))
		for i, row := range rs.Rows {
			rows[i] = MappingValue(row)
		}
		return Elements(rows...)
	}))
}

// QueryRows runs query on db and materialises every row. Column values are
// converted with ValueOf, except []byte which becomes Text and NULL which
// becomes Invalid.
func QueryRows(ctx context.Context, db *sql.DB, query string, args ...any) (*RowSet, error) {
	if db == nil {
		return nil, NewSourceError(ErrMsgNilDB, nil)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewQueryError(ErrMsgQueryFailed, query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, NewQueryError(ErrMsgQueryFailed, query, err)
	}

	rs := &RowSet{Columns: columns}
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, NewQueryError(ErrMsgScanFailed, query, err)
		}
		row := NewMapping()
		for i, col := range columns {
			row.Set(col, columnValue(raw[i]))
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, NewQueryError(ErrMsgQueryFailed, query, err)
	}

	return rs, nil
}

func columnValue(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Invalid()
	case []byte:
		return Text(string(v))
	default:
		return ValueOf(v)
	}
}

// OpenPostgres opens a PostgreSQL handle through lib/pq and verifies the
// connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(PostgresDriverName, dsn)
	if err != nil {
		return nil, NewSourceError(ErrMsgOpenFailed, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPostgresPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, NewSourceError(ErrMsgOpenFailed, err)
	}
	return db, nil
}

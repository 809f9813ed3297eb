package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"sales-report/src/helpers"
	"sales-report/src/logger"
	"sales-report/src/models"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// -----------------------------------------------------------------------------

// SQLSource reads input tables from a database/sql connection. Every value is
// scanned as text; typing happens in the record store.
type SQLSource struct {
	Driver string
	DSN    string
	Schema string
	DB     *sql.DB
	Logger *logger.Logger

	quote func(string) string
}

// -----------------------------------------------------------------------------

func (s *SQLSource) Name() string {
	return s.Driver
}

// -----------------------------------------------------------------------------

// Initialize opens the connection and checks it is alive.
func (s *SQLSource) Initialize(ctx context.Context) error {
	db, err := sql.Open(s.Driver, s.DSN)
	if err != nil {
		return helpers.NewDatabaseError(fmt.Sprintf("open %s", s.Driver), err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return helpers.NewDatabaseError(fmt.Sprintf("ping %s", s.Driver), err)
	}

	s.DB = db
	s.Logger.Info("%s source initialized", s.Driver)
	return nil
}

// -----------------------------------------------------------------------------

func (s *SQLSource) ReadTable(ctx context.Context, ref string) (*models.MTable, error) {
	if s.DB == nil {
		return nil, helpers.NewDatabaseError(fmt.Sprintf("%s source not initialized", s.Driver), nil)
	}
	if !identifierPattern.MatchString(ref) {
		return nil, helpers.NewDatabaseError(fmt.Sprintf("invalid table name %q", ref), nil)
	}

	table := s.quoteIdent(ref)
	if s.Schema != "" {
		if !identifierPattern.MatchString(s.Schema) {
			return nil, helpers.NewDatabaseError(fmt.Sprintf("invalid schema name %q", s.Schema), nil)
		}
		table = s.quoteIdent(s.Schema) + "." + table
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, helpers.NewDatabaseError(fmt.Sprintf("query %s", ref), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, helpers.NewDatabaseError(fmt.Sprintf("columns of %s", ref), err)
	}

	out := &models.MTable{Name: ref, Header: columns}

	cells := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, helpers.NewDatabaseError(fmt.Sprintf("scan %s", ref), err)
		}
		row := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, helpers.NewDatabaseError(fmt.Sprintf("iterate %s", ref), err)
	}

	s.Logger.Debug("Read %d rows from %s", len(out.Rows), ref)
	return out, nil
}

// -----------------------------------------------------------------------------

func (s *SQLSource) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *SQLSource) quoteIdent(name string) string {
	if s.quote != nil {
		return s.quote(name)
	}
	return `"` + name + `"`
}

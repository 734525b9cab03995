package remote

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(dsn string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

var identRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// validIdent guards collection and column names interpolated into SQL.
// Values always go through placeholders.
func validIdent(name string) error {
	if !identRegex.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// sortedColumns returns the record's column names in a stable order.
func sortedColumns(record Record) []string {
	columns := make([]string, 0, len(record))
	for column := range record {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

func (p *Postgres) Upsert(ctx context.Context, collection string, records []Record, conflictKey string) error {
	if len(records) == 0 {
		return nil
	}
	if err := validIdent(collection); err != nil {
		return err
	}

	columns := sortedColumns(records[0])
	for _, column := range columns {
		if err := validIdent(column); err != nil {
			return err
		}
	}

	conflictColumns := strings.Split(conflictKey, ",")
	for _, column := range conflictColumns {
		if err := validIdent(strings.TrimSpace(column)); err != nil {
			return err
		}
	}

	var (
		placeholders []string
		args         []interface{}
	)
	n := 1
	for _, record := range records {
		row := make([]string, 0, len(columns))
		for _, column := range columns {
			row = append(row, fmt.Sprintf("$%d", n))
			args = append(args, record[column])
			n++
		}
		placeholders = append(placeholders, "("+strings.Join(row, ", ")+")")
	}

	var updates []string
	conflictSet := make(map[string]bool, len(conflictColumns))
	for _, column := range conflictColumns {
		conflictSet[strings.TrimSpace(column)] = true
	}
	for _, column := range columns {
		if conflictSet[column] {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s ON CONFLICT (%s) DO UPDATE SET %s",
		collection,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		conflictKey,
		strings.Join(updates, ", "),
	)
	if len(updates) == 0 {
		query = fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES %s ON CONFLICT (%s) DO NOTHING",
			collection,
			strings.Join(columns, ", "),
			strings.Join(placeholders, ", "),
			conflictKey,
		)
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", collection, err)
	}
	return nil
}

func (p *Postgres) Insert(ctx context.Context, collection string, record Record) error {
	if err := validIdent(collection); err != nil {
		return err
	}

	columns := sortedColumns(record)
	var (
		placeholders []string
		args         []interface{}
	)
	for i, column := range columns {
		if err := validIdent(column); err != nil {
			return err
		}
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, record[column])
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		collection,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

func (p *Postgres) Update(ctx context.Context, collection string, filter Filter, fields Record) error {
	if err := validIdent(collection); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	var (
		sets []string
		args []interface{}
	)
	n := 1
	for _, column := range sortedColumns(fields) {
		if err := validIdent(column); err != nil {
			return err
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, fields[column])
		n++
	}

	where, whereArgs, err := buildWhere(filter, n)
	if err != nil {
		return err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", collection, strings.Join(sets, ", "), where)
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update %s: %w", collection, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, collection string, filter Filter) error {
	if err := validIdent(collection); err != nil {
		return err
	}

	where, args, err := buildWhere(filter, 1)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s%s", collection, where)
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}

func (p *Postgres) Select(ctx context.Context, collection string, filter Filter, orderBy string, limit int) ([]Record, error) {
	if err := validIdent(collection); err != nil {
		return nil, err
	}

	where, args, err := buildWhere(filter, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s%s", collection, where)
	if orderBy != "" {
		if err := validIdent(orderBy); err != nil {
			return nil, err
		}
		query += " ORDER BY " + orderBy
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", collection, err)
	}
	defer rows.Close()

	descriptions := rows.FieldDescriptions()
	var result []Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", collection, err)
		}
		record := make(Record, len(descriptions))
		for i, description := range descriptions {
			record[description.Name] = values[i]
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", collection, err)
	}
	return result, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}

func buildWhere(filter Filter, firstArg int) (string, []interface{}, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	var (
		conditions []string
		args       []interface{}
	)
	n := firstArg
	for _, column := range sortedColumns(Record(filter)) {
		if err := validIdent(column); err != nil {
			return "", nil, err
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, filter[column])
		n++
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// Package repository stores contacts in a relational table:
//
//	contacts(id PK autoincrement, name, email, address, phone, favorite boolean, avatar nullable)
//
// MySQL is the default row store. PostgreSQL and SQLite are supported as well; statements are
// written with '?' placeholders and rebound for the driver in use.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/config"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/model"
	public "gitlab.com/dirk.krummacker/contactbook-service/pkg/model"
)

// ErrNotFound is returned when no contact has the requested id.
var ErrNotFound = errors.New("contact not found")

// contactColumns are the columns of a contact in the order of the table definition.
const contactColumns = "id, name, email, address, phone, favorite, avatar"

// ContactRepository executes the contact statements against the row store.
type ContactRepository struct {
	db *sqlx.DB

	// returning is set for drivers that cannot report the last insert id.
	returning bool

	// insert is a prepared statement for creating a contact.
	insert *sqlx.NamedStmt

	// selectWhereId is a prepared statement for selecting the contact with a given id.
	selectWhereId *sqlx.Stmt

	// selectAll is a prepared statement for selecting every contact.
	selectAll *sqlx.Stmt

	// deleteWhereId is a prepared statement for deleting the contact with a given id.
	deleteWhereId *sqlx.Stmt

	// deleteAll is a prepared statement for deleting every contact.
	deleteAll *sqlx.Stmt
}

// countedContact is a contact row of a listing together with the number of rows matching the
// listing's filter.
type countedContact struct {
	RecordCount int `db:"record_count"`
	public.Contact
}

// CreateDatabase opens the database described by the configuration and applies the connection
// pool settings. The connection itself is established lazily.
func CreateDatabase(cfg config.Database) (*sql.DB, error) {
	sqlDB, err := sql.Open(cfg.Driver, cfg.DataSourceName())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return sqlDB, nil
}

// NewContactRepository wraps the sql database with sqlx and prepares all statements. The database
// argument can be a real database for production use or a mock database within unit tests.
func NewContactRepository(sqlDB *sql.DB, driverName string) (*ContactRepository, error) {
	db := sqlx.NewDb(sqlDB, driverName)
	r := &ContactRepository{
		db:        db,
		returning: sqlx.BindType(driverName) == sqlx.DOLLAR,
	}

	var err error
	insertSQL := `
		INSERT INTO contacts (name, email, address, phone, favorite, avatar)
		VALUES (:name, :email, :address, :phone, :favorite, :avatar)`
	if r.returning {
		insertSQL += " RETURNING id"
	}
	// Prepared statements offer a significant speed increase if executed many times.
	if r.insert, err = db.PrepareNamed(insertSQL); err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	if r.selectWhereId, err = db.Preparex(db.Rebind(`
		SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`)); err != nil {
		return nil, fmt.Errorf("prepare select by id: %w", err)
	}
	if r.selectAll, err = db.Preparex(`
		SELECT ` + contactColumns + ` FROM contacts ORDER BY id`); err != nil {
		return nil, fmt.Errorf("prepare select all: %w", err)
	}
	if r.deleteWhereId, err = db.Preparex(db.Rebind(`
		DELETE FROM contacts WHERE id = ?`)); err != nil {
		return nil, fmt.Errorf("prepare delete by id: %w", err)
	}
	if r.deleteAll, err = db.Preparex(`
		DELETE FROM contacts`); err != nil {
		return nil, fmt.Errorf("prepare delete all: %w", err)
	}
	return r, nil
}

// DB returns the underlying sqlx handle.
func (r *ContactRepository) DB() *sqlx.DB {
	return r.db
}

// Insert stores a new contact and returns its generated id.
func (r *ContactRepository) Insert(ctx context.Context, contact *public.Contact) (int64, error) {
	if r.returning {
		var id int64
		if err := r.insert.QueryRowxContext(ctx, contact).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert contact: %w", err)
		}
		return id, nil
	}
	result, err := r.insert.ExecContext(ctx, contact)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	return id, nil
}

// FindByID returns the contact with the given id or ErrNotFound.
func (r *ContactRepository) FindByID(ctx context.Context, id int64) (*public.Contact, error) {
	var contacts []public.Contact
	if err := r.selectWhereId.SelectContext(ctx, &contacts, id); err != nil {
		return nil, fmt.Errorf("select contact %d: %w", id, err)
	}
	if len(contacts) == 0 {
		return nil, ErrNotFound
	}
	return &contacts[0], nil
}

// Find returns one page of the contacts matching the filter, ordered by id, together with the
// number of all matching contacts.
//
// A non-empty name matches case-insensitively anywhere in the contact's name. If onlyFavorites
// is set, only favorite contacts match.
func (r *ContactRepository) Find(ctx context.Context, name string, onlyFavorites bool, limit int, offset int) ([]public.Contact, int, error) {
	var conditions []string
	var args []interface{}
	if name != "" {
		conditions = append(conditions, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(name)+"%")
	}
	if onlyFavorites {
		conditions = append(conditions, "favorite = ?")
		args = append(args, true)
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// The window function counts all rows matching the filter, not only those of the page.
	query := r.db.Rebind(`
		SELECT COUNT(id) OVER() AS record_count, ` + contactColumns + `
		FROM contacts` + where + `
		ORDER BY id
		LIMIT ?
		OFFSET ?`)
	var rows []countedContact
	if err := r.db.SelectContext(ctx, &rows, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("select contacts: %w", err)
	}

	contacts := make([]public.Contact, 0, len(rows))
	total := 0
	for _, row := range rows {
		total = row.RecordCount
		contacts = append(contacts, row.Contact)
	}

	// A page behind the last one has no rows to carry the count.
	if len(rows) == 0 && offset > 0 {
		countQuery := r.db.Rebind("SELECT COUNT(*) FROM contacts" + where)
		if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
			return nil, 0, fmt.Errorf("count contacts: %w", err)
		}
	}
	return contacts, total, nil
}

// FindAll returns every contact ordered by id.
func (r *ContactRepository) FindAll(ctx context.Context) ([]public.Contact, error) {
	contacts := []public.Contact{}
	if err := r.selectAll.SelectContext(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("select all contacts: %w", err)
	}
	return contacts, nil
}

// Update sets the fields present in the input (and only those) on the contact with the given id.
// An input without any field is a no-op.
func (r *ContactRepository) Update(ctx context.Context, id int64, in model.UpdateContactInput) error {
	var args []interface{}
	sql := "UPDATE contacts SET "
	if in.Name != nil {
		args = append(args, *in.Name)
		sql += "name=?, "
	}
	if in.Email != nil {
		args = append(args, *in.Email)
		sql += "email=?, "
	}
	if in.Address != nil {
		args = append(args, *in.Address)
		sql += "address=?, "
	}
	if in.Phone != nil {
		args = append(args, *in.Phone)
		sql += "phone=?, "
	}
	if in.Favorite != nil {
		args = append(args, *in.Favorite)
		sql += "favorite=?, "
	}
	if in.Avatar != nil {
		args = append(args, *in.Avatar)
		sql += "avatar=?, "
	}
	if len(args) == 0 {
		return nil
	}

	sql = sql[:len(sql)-2]
	sql += " WHERE id=?"
	args = append(args, id)
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(sql), args...); err != nil {
		return fmt.Errorf("update contact %d: %w", id, err)
	}
	return nil
}

// Delete removes the contact with the given id. It returns ErrNotFound if no row was deleted.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.deleteWhereId.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every contact and returns the number of deleted rows.
func (r *ContactRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.deleteAll.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all contacts: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all contacts: %w", err)
	}
	return rowsAffected, nil
}

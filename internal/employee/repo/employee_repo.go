package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/crewdeck/crewdeck/internal/employee/entity"
)

// ErrDuplicateEmail is returned when an insert or update hits the unique
// email constraint.
var ErrDuplicateEmail = errors.New("duplicate employee email")

const uniqueViolation = "23505"

// EmployeeRepo provides data access for the employees table using sqlx.
type EmployeeRepo struct {
	db *sqlx.DB
}

func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

// EnsureTable creates the employees table if not exists (idempotent).
func (r *EmployeeRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE EXTENSION IF NOT EXISTS citext;
CREATE TABLE IF NOT EXISTS employees (
  id VARCHAR(27) PRIMARY KEY,
  name TEXT NOT NULL,
  email CITEXT UNIQUE NOT NULL,
  designation TEXT NOT NULL,
  phone_number TEXT NOT NULL,
  active BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	const q = `SELECT id, name, email, designation, phone_number, active, created_at, updated_at
	  FROM employees ORDER BY created_at`
	rows := []*entity.Employee{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches one employee or sql.ErrNoRows.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	const q = `SELECT id, name, email, designation, phone_number, active, created_at, updated_at
	  FROM employees WHERE id=$1`
	var row entity.Employee
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	const q = `INSERT INTO employees (id, name, email, designation, phone_number, active)
	  VALUES (:id, :name, :email, :designation, :phone_number, :active)
	  RETURNING created_at, updated_at`
	stmt, err := r.db.PrepareNamedContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()
	if err := stmt.QueryRowxContext(ctx, e).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update rewrites the mutable fields and returns the affected row count.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) (int64, error) {
	const q = `UPDATE employees SET name=$2, email=$3, designation=$4, phone_number=$5,
	  active=$6, updated_at=NOW() WHERE id=$1`
	res, err := r.db.ExecContext(ctx, q, e.ID, e.Name, e.Email, e.Designation, e.PhoneNumber, e.Active)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return res.RowsAffected()
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

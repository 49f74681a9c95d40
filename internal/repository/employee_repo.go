package repository

import (
	"context"
	"errors"

	"employee-directory/internal/db"
	"employee-directory/internal/employees"
	"employee-directory/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"

	documentNumberConstraint = "employees_document_number_key"
	emailConstraint          = "employees_email_key"
	managerConstraint        = "employees_manager_id_fkey"
)

const selectEmployeeSQL = `
SELECT e.id, e.document_number, e.first_name, e.last_name, e.email, e.birth_date,
       e.gender, e.role, e.manager_id, m.first_name || ' ' || m.last_name,
       e.password_hash, e.created_at, e.updated_at
  FROM employees e
  LEFT JOIN employees m ON m.id = e.manager_id`

const (
	findByIDSQL             = selectEmployeeSQL + ` WHERE e.id = $1`
	findByDocumentNumberSQL = selectEmployeeSQL + ` WHERE e.document_number = $1`
	findByEmailSQL          = selectEmployeeSQL + ` WHERE e.email = $1`
	listSQL                 = selectEmployeeSQL + ` ORDER BY e.id`

	existsAnySQL = `SELECT EXISTS (SELECT 1 FROM employees)`

	insertEmployeeSQL = `
INSERT INTO employees (document_number, first_name, last_name, email, birth_date,
                       gender, role, manager_id, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

	updateEmployeeSQL = `
UPDATE employees
   SET first_name = $1, last_name = $2, email = $3, birth_date = $4, gender = $5,
       role = $6, manager_id = $7, password_hash = $8, updated_at = $9
 WHERE id = $10`

	deleteEmployeeSQL = `DELETE FROM employees WHERE id = $1`

	phonesByEmployeeSQL = `SELECT id, number FROM employee_phones WHERE employee_id = $1 ORDER BY id`
	phonesForListSQL    = `SELECT employee_id, id, number FROM employee_phones ORDER BY employee_id, id`

	insertPhonesSQL = `
INSERT INTO employee_phones (employee_id, number)
SELECT $1, t.number FROM unnest($2::bigint[]) WITH ORDINALITY AS t(number, ord) ORDER BY t.ord`

	deleteStalePhonesSQL = `DELETE FROM employee_phones WHERE employee_id = $1 AND NOT (id = ANY($2))`
)

// EmployeeRepository stores employees and their phones in PostgreSQL.
// Writes touch two tables and should run inside a transaction from db.TransactionManager.
type EmployeeRepository struct {
	pool db.Queryer
}

func NewEmployeeRepository(pool db.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	return r.findOne(ctx, findByIDSQL, id)
}

func (r *EmployeeRepository) FindByDocumentNumber(ctx context.Context, documentNumber int64) (*models.Employee, error) {
	return r.findOne(ctx, findByDocumentNumberSQL, documentNumber)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	return r.findOne(ctx, findByEmailSQL, email)
}

func (r *EmployeeRepository) findOne(ctx context.Context, query string, arg any) (*models.Employee, error) {
	exec := db.QueryerFromContext(ctx, r.pool)

	e, err := scanEmployee(exec.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translatePgError(err)
	}
	if e.Phones, err = loadPhones(ctx, exec, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EmployeeRepository) ExistsAny(ctx context.Context) (bool, error) {
	var exists bool
	err := db.QueryerFromContext(ctx, r.pool).QueryRow(ctx, existsAnySQL).Scan(&exists)
	return exists, err
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	exec := db.QueryerFromContext(ctx, r.pool)

	rows, err := exec.Query(ctx, listSQL)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Employee, len(list))
	for _, e := range list {
		e.Phones = []models.Phone{}
		byID[e.ID] = e
	}

	phoneRows, err := exec.Query(ctx, phonesForListSQL)
	if err != nil {
		return nil, err
	}
	defer phoneRows.Close()
	for phoneRows.Next() {
		var (
			employeeID int64
			p          models.Phone
		)
		if err := phoneRows.Scan(&employeeID, &p.ID, &p.Number); err != nil {
			return nil, err
		}
		if e, ok := byID[employeeID]; ok {
			e.Phones = append(e.Phones, p)
		}
	}
	if err := phoneRows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *EmployeeRepository) Insert(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	exec := db.QueryerFromContext(ctx, r.pool)

	var id int64
	err := exec.QueryRow(ctx, insertEmployeeSQL,
		e.DocumentNumber,
		e.FirstName,
		e.LastName,
		e.Email,
		e.BirthDate,
		int16(e.Gender),
		int16(e.Role),
		e.ManagerID,
		e.PasswordHash,
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return nil, translatePgError(err)
	}

	if err := insertPhones(ctx, exec, id, e.PhoneNumbers()); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	exec := db.QueryerFromContext(ctx, r.pool)

	tag, err := exec.Exec(ctx, updateEmployeeSQL,
		e.FirstName,
		e.LastName,
		e.Email,
		e.BirthDate,
		int16(e.Gender),
		int16(e.Role),
		e.ManagerID,
		e.PasswordHash,
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return nil, translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, employees.ErrEmployeeNotFound
	}

	keep := make([]int64, 0, len(e.Phones))
	var added []int64
	for _, p := range e.Phones {
		if p.ID == 0 {
			added = append(added, p.Number)
			continue
		}
		keep = append(keep, p.ID)
	}
	if _, err := exec.Exec(ctx, deleteStalePhonesSQL, e.ID, keep); err != nil {
		return nil, err
	}
	if err := insertPhones(ctx, exec, e.ID, added); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, e.ID)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := db.QueryerFromContext(ctx, r.pool).Exec(ctx, deleteEmployeeSQL, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employees.ErrEmployeeNotFound
	}
	return nil
}

func insertPhones(ctx context.Context, exec db.Queryer, employeeID int64, numbers []int64) error {
	if len(numbers) == 0 {
		return nil
	}
	_, err := exec.Exec(ctx, insertPhonesSQL, employeeID, numbers)
	return err
}

func loadPhones(ctx context.Context, exec db.Queryer, employeeID int64) ([]models.Phone, error) {
	rows, err := exec.Query(ctx, phonesByEmployeeSQL, employeeID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Phone, error) {
		var p models.Phone
		err := row.Scan(&p.ID, &p.Number)
		return p, err
	})
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var (
		e           models.Employee
		gender      int16
		role        int16
		managerID   pgtype.Int8
		managerName pgtype.Text
	)
	err := row.Scan(
		&e.ID,
		&e.DocumentNumber,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.BirthDate,
		&gender,
		&role,
		&managerID,
		&managerName,
		&e.PasswordHash,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Gender = models.Gender(gender)
	e.Role = models.Role(role)
	if managerID.Valid {
		id := managerID.Int64
		e.ManagerID = &id
	}
	if managerName.Valid {
		name := managerName.String
		e.ManagerName = &name
	}
	return &e, nil
}

func translatePgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return employees.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolationCode:
		switch pgErr.ConstraintName {
		case documentNumberConstraint:
			return employees.ErrDuplicateDocumentNumber
		case emailConstraint:
			return employees.ErrDuplicateEmail
		}
	case foreignKeyViolationCode:
		if pgErr.ConstraintName == managerConstraint {
			return employees.ErrManagerNotFound
		}
	}
	return err
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
)

const (
	uniqueViolationCode      = "23505"
	employeesEmailConstraint = "employees_email_key"
)

const employeeColumns = `id, first_name, last_name, email`

var errEmployeeRequired = errors.New("postgres: employee is required")

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
// 書き込みとネイティブ SQL による検索は pgx で、構造化クエリは gorm で実行します。
type EmployeeRepository struct {
	pool pgdb.Queryer
	orm  *gorm.DB
}

var _ employee.Repository = (*EmployeeRepository)(nil)

// NewEmployeeRepository は EmployeeRepository を生成します。
// orm が nil の場合、構造化クエリ形式の検索はエラーになります。
func NewEmployeeRepository(pool pgdb.Queryer, orm *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{pool: pool, orm: orm}
}

// Insert は社員を新規作成し、採番された ID を含めて返します。
func (r *EmployeeRepository) Insert(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	if e == nil {
		return nil, errEmployeeRequired
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (first_name, last_name, email)
        VALUES ($1, $2, $3)
        RETURNING `+employeeColumns,
		e.FirstName,
		e.LastName,
		e.Email,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError("insert", err)
	}
	return created, nil
}

// Save は ID 未設定なら Insert し、設定済みなら全フィールドを置き換えます。
func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	if e == nil {
		return nil, errEmployeeRequired
	}
	if e.ID == 0 {
		return r.Insert(ctx, e)
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET first_name = $1,
               last_name = $2,
               email = $3
         WHERE id = $4
        RETURNING `+employeeColumns,
		e.FirstName,
		e.LastName,
		e.Email,
		e.ID,
	)

	saved, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, translateEmployeePgError("save", err)
	}
	return saved, nil
}

// FindByID は ID で社員を取得します。存在しない場合は nil, nil を返します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id = $1
    `, id)

	return findOne("find_by_id", row)
}

// FindAll は全社員を ID 昇順で返します。
func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         ORDER BY id ASC
    `)
	if err != nil {
		return nil, translateEmployeePgError("find_all", err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError("find_all", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError("find_all", err)
	}

	return employees, nil
}

// FindByEmail はメールアドレスの完全一致で社員を取得します。存在しない場合は nil, nil を返します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE email = $1
         ORDER BY id ASC
         LIMIT 1
    `, email)

	return findOne("find_by_email", row)
}

// FindByName は form で指定された形式のクエリで姓名検索を行います。
func (r *EmployeeRepository) FindByName(ctx context.Context, form employee.QueryForm, firstName, lastName string) (*employee.Employee, error) {
	switch form {
	case employee.QueryStructuredPositional:
		return r.findByNameStructuredPositional(ctx, firstName, lastName)
	case employee.QueryStructuredNamed:
		return r.findByNameStructuredNamed(ctx, firstName, lastName)
	case employee.QueryNativePositional:
		return r.findByNameNativePositional(ctx, firstName, lastName)
	case employee.QueryNativeNamed:
		return r.findByNameNativeNamed(ctx, firstName, lastName)
	default:
		return nil, employee.ErrInvalidQueryForm
	}
}

// DeleteByID は社員を削除します。存在しない ID でもエラーにはなりません。
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id); err != nil {
		return translateEmployeePgError("delete", err)
	}
	return nil
}

func (r *EmployeeRepository) findByNameNativePositional(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE first_name = $1 AND last_name = $2
         ORDER BY id ASC
         LIMIT 1
    `, firstName, lastName)

	return findOne("find_by_name", row)
}

func (r *EmployeeRepository) findByNameNativeNamed(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE first_name = @first_name AND last_name = @last_name
         ORDER BY id ASC
         LIMIT 1
    `, pgx.NamedArgs{
		"first_name": firstName,
		"last_name":  lastName,
	})

	return findOne("find_by_name", row)
}

func findOne(op string, row pgx.Row) (*employee.Employee, error) {
	found, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateEmployeePgError(op, err)
	}
	return found, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email); err != nil {
		return nil, err
	}
	return &e, nil
}

func translateEmployeePgError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if pgErr.ConstraintName == "" || pgErr.ConstraintName == employeesEmailConstraint {
			return employee.ErrDuplicateEmail
		}
	}

	return employee.NewStorageError(op, fmt.Errorf("postgres: %w", err))
}

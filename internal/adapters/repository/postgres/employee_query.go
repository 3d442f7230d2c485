package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

var errStructuredQueryUnavailable = errors.New("postgres: structured query requires gorm")

// employeeRecord は gorm が扱う employees テーブルの行です。
type employeeRecord struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Email     string `gorm:"column:email"`
}

func (employeeRecord) TableName() string {
	return "employees"
}

func (r employeeRecord) toDomain() *employee.Employee {
	return &employee.Employee{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

func (r *EmployeeRepository) findByNameStructuredPositional(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findFirstStructured(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("first_name = ? AND last_name = ?", firstName, lastName)
	})
}

func (r *EmployeeRepository) findByNameStructuredNamed(ctx context.Context, firstName, lastName string) (*employee.Employee, error) {
	return r.findFirstStructured(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("first_name = @first_name AND last_name = @last_name", map[string]any{
			"first_name": firstName,
			"last_name":  lastName,
		})
	})
}

// findFirstStructured は scope を適用したクエリの先頭 1 件を ID 昇順で返します。
// Find を使うため、該当なしはエラーではなく nil, nil になります。
func (r *EmployeeRepository) findFirstStructured(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (*employee.Employee, error) {
	if r.orm == nil {
		return nil, employee.NewStorageError("find_by_name", errStructuredQueryUnavailable)
	}

	var records []employeeRecord
	err := r.orm.WithContext(ctx).
		Scopes(scope).
		Order("id").
		Limit(1).
		Find(&records).Error
	if err != nil {
		return nil, translateEmployeePgError("find_by_name", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	return records[0].toDomain(), nil
}

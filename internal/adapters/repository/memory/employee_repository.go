// Package memory はプロセス内メモリに社員を保持する Repository 実装です。
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

var errEmployeeRequired = errors.New("memory: employee is required")

// EmployeeRepository は map と RWMutex による社員リポジトリです。
// メールアドレスは PostgreSQL の一意制約と同様に重複を拒否します。
type EmployeeRepository struct {
	mu     sync.RWMutex
	nextID int64
	store  map[int64]*employee.Employee
}

var _ employee.Repository = (*EmployeeRepository)(nil)

// NewEmployeeRepository は空のリポジトリを生成します。
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		nextID: 1,
		store:  make(map[int64]*employee.Employee),
	}
}

func (r *EmployeeRepository) Insert(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	if e == nil {
		return nil, errEmployeeRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(e)
}

func (r *EmployeeRepository) Save(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	if e == nil {
		return nil, errEmployeeRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == 0 {
		return r.insertLocked(e)
	}
	if _, ok := r.store[e.ID]; !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	if r.emailTakenLocked(e.Email, e.ID) {
		return nil, employee.ErrDuplicateEmail
	}

	r.store[e.ID] = e.Clone()
	return e.Clone(), nil
}

func (r *EmployeeRepository) FindByID(_ context.Context, id int64) (*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store[id].Clone(), nil
}

// FindAll は ID 昇順のコピーを返します。
func (r *EmployeeRepository) FindAll(_ context.Context) ([]*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *EmployeeRepository) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.firstLocked(func(e *employee.Employee) bool { return e.Email == email }), nil
}

// FindByName は全ての形式で同じ完全一致条件を評価し、最小 ID の 1 件を返します。
func (r *EmployeeRepository) FindByName(_ context.Context, form employee.QueryForm, firstName, lastName string) (*employee.Employee, error) {
	if !form.Valid() {
		return nil, employee.ErrInvalidQueryForm
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.firstLocked(func(e *employee.Employee) bool {
		return e.FirstName == firstName && e.LastName == lastName
	}), nil
}

func (r *EmployeeRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, id)
	return nil
}

func (r *EmployeeRepository) insertLocked(e *employee.Employee) (*employee.Employee, error) {
	if r.emailTakenLocked(e.Email, 0) {
		return nil, employee.ErrDuplicateEmail
	}

	stored := e.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.store[stored.ID] = stored

	return stored.Clone(), nil
}

func (r *EmployeeRepository) emailTakenLocked(email string, exceptID int64) bool {
	for id, e := range r.store {
		if id != exceptID && e.Email == email {
			return true
		}
	}
	return false
}

func (r *EmployeeRepository) firstLocked(match func(*employee.Employee) bool) *employee.Employee {
	var found *employee.Employee
	for _, e := range r.store {
		if match(e) && (found == nil || e.ID < found.ID) {
			found = e
		}
	}
	return found.Clone()
}

func (r *EmployeeRepository) sortedLocked() []*employee.Employee {
	result := make([]*employee.Employee, 0, len(r.store))
	for _, e := range r.store {
		result = append(result, e.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

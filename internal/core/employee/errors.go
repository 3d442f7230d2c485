package employee

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID        = errors.New("employee: invalid id")
	ErrInvalidFirstName = errors.New("employee: invalid first name")
	ErrInvalidLastName  = errors.New("employee: invalid last name")
	ErrInvalidEmail     = errors.New("employee: invalid email")
	ErrInvalidQueryForm = errors.New("employee: invalid query form")
	ErrEmployeeNotFound = errors.New("employee: not found")
	// ErrDuplicateEmail は同じメールアドレスの社員が既に存在する場合に返却されます。
	ErrDuplicateEmail = errors.New("employee: email already exists")
)

// StorageError は永続化層での障害を表します。
// 接続断やクエリ失敗はこの型でラップされ、リトライは行いません。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("employee: storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError は op を付与した StorageError を返します。err が nil の場合は nil を返します。
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

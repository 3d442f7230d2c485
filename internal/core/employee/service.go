package employee

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	UpdateEmployee(ctx context.Context, existing *Employee, patch UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
	FindEmployeeByName(ctx context.Context, in FindEmployeeByNameInput) (*Employee, error)
}

var _ UseCase = (*Service)(nil)

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
}

// UpdateEmployeeInput は社員更新時の入力です。全フィールドが既存値を置き換えます。
type UpdateEmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
}

// FindEmployeeByNameInput は氏名検索時の入力です。Form がゼロ値の場合は DefaultQueryForm を使います。
type FindEmployeeByNameInput struct {
	FirstName string
	LastName  string
	Form      QueryForm
}

// CreateEmployee は新しい社員を作成します。
// 同じメールアドレスの社員が存在する場合は書き込みを行わず ErrDuplicateEmail を返します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	candidate, err := normalizeFields(in.FirstName, in.LastName, in.Email)
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmailNotExists(txCtx, candidate.Email); err != nil {
			return err
		}

		result, err := s.repo.Insert(txCtx, candidate)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// ListEmployees は全社員を取得します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []*Employee{}
	}
	return employees, nil
}

// GetEmployee は ID で社員を取得します。存在しない場合は nil, nil を返します。
func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateEmployee は existing に patch の氏名とメールアドレスを上書きして保存します。
// existing は呼び出し側が GetEmployee で解決済みである前提です。
// メールアドレスの一意性はここでは再検証しません。
func (s *Service) UpdateEmployee(ctx context.Context, existing *Employee, patch UpdateEmployeeInput) (*Employee, error) {
	if existing == nil || existing.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	fields, err := normalizeFields(patch.FirstName, patch.LastName, patch.Email)
	if err != nil {
		return nil, err
	}

	merged := existing.Clone()
	merged.FirstName = fields.FirstName
	merged.LastName = fields.LastName
	merged.Email = fields.Email

	return s.repo.Save(ctx, merged)
}

// DeleteEmployee は社員を削除します。存在しない ID でもエラーにはなりません。
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.DeleteByID(ctx, id)
}

// FindEmployeeByName は姓名で社員を検索します。存在しない場合は nil, nil を返します。
func (s *Service) FindEmployeeByName(ctx context.Context, in FindEmployeeByNameInput) (*Employee, error) {
	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		return nil, ErrInvalidFirstName
	}
	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		return nil, ErrInvalidLastName
	}

	form := in.Form
	if form == 0 {
		form = DefaultQueryForm
	}
	if !form.Valid() {
		return nil, ErrInvalidQueryForm
	}

	return s.repo.FindByName(ctx, form, firstName, lastName)
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	found, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if found != nil {
		return ErrDuplicateEmail
	}
	return nil
}

func normalizeFields(firstName, lastName, email string) (*Employee, error) {
	first := strings.TrimSpace(firstName)
	if first == "" {
		return nil, ErrInvalidFirstName
	}

	last := strings.TrimSpace(lastName)
	if last == "" {
		return nil, ErrInvalidLastName
	}

	addr, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &Employee{FirstName: first, LastName: last, Email: addr}, nil
}

// normalizeEmail は前後の空白を除去します。大文字小文字は保持します。
func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}

	return trimmed, nil
}

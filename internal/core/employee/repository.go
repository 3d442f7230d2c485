package employee

import "context"

// Repository は社員永続化の抽象です。
//
// 検索系メソッドは該当なしの場合 nil, nil を返します。メールアドレスの一意性は
// Service が保証しますが、媒体側の一意制約に違反した書き込みは ErrDuplicateEmail を返します。
// それ以外の媒体レベルの障害は *StorageError として返却します。
type Repository interface {
	// Insert は新しい社員を保存し、ID を採番した結果を返します。
	Insert(ctx context.Context, employee *Employee) (*Employee, error)
	// Save は ID 未採番なら Insert と同様に動作し、採番済みなら全フィールドを置き換えます。
	// 採番済みの ID が存在しない場合は ErrEmployeeNotFound を返します。
	Save(ctx context.Context, employee *Employee) (*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	// FindAll は全社員を ID 昇順で返します。該当なしの場合は空スライスです。
	FindAll(ctx context.Context) ([]*Employee, error)
	// FindByEmail は大文字小文字を区別した完全一致で検索します。
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	// FindByName は姓名の完全一致で検索します。複数件該当する場合は ID が最小のものを返します。
	FindByName(ctx context.Context, form QueryForm, firstName, lastName string) (*Employee, error)
	// DeleteByID は社員を削除します。存在しない ID でもエラーにはなりません。
	DeleteByID(ctx context.Context, id int64) error
}

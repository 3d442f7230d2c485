package employee

// Employee は社員エンティティです。
// ID はゼロ値の場合は未採番であることを表します。
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// Clone は Employee のコピーを返します。
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

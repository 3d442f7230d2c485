package employee

import "strings"

// QueryForm は氏名検索に用いるクエリ形式です。
// 4 つの形式はいずれも同じ入力に対して同じ結果を返します。
type QueryForm int

const (
	// QueryStructuredPositional はエンジン非依存の構造化クエリを位置パラメータで実行します。
	QueryStructuredPositional QueryForm = iota + 1
	// QueryStructuredNamed はエンジン非依存の構造化クエリを名前付きパラメータで実行します。
	QueryStructuredNamed
	// QueryNativePositional は PostgreSQL ネイティブ SQL を位置パラメータで実行します。
	QueryNativePositional
	// QueryNativeNamed は PostgreSQL ネイティブ SQL を名前付きパラメータで実行します。
	QueryNativeNamed
)

// DefaultQueryForm は形式が指定されなかった場合に使われます。
const DefaultQueryForm = QueryNativePositional

var queryFormNames = map[QueryForm]string{
	QueryStructuredPositional: "structured-positional",
	QueryStructuredNamed:      "structured-named",
	QueryNativePositional:     "native-positional",
	QueryNativeNamed:          "native-named",
}

// QueryForms はサポートされる全形式を返します。
func QueryForms() []QueryForm {
	return []QueryForm{
		QueryStructuredPositional,
		QueryStructuredNamed,
		QueryNativePositional,
		QueryNativeNamed,
	}
}

func (f QueryForm) String() string {
	if name, ok := queryFormNames[f]; ok {
		return name
	}
	return "unknown"
}

// Valid は既知の形式かどうかを返します。
func (f QueryForm) Valid() bool {
	_, ok := queryFormNames[f]
	return ok
}

// IsNative はネイティブ SQL 形式かどうかを返します。
func (f QueryForm) IsNative() bool {
	return f == QueryNativePositional || f == QueryNativeNamed
}

// ParseQueryForm は文字列表現から QueryForm を解決します。空文字列は DefaultQueryForm になります。
func ParseQueryForm(raw string) (QueryForm, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return DefaultQueryForm, nil
	}
	for form, name := range queryFormNames {
		if name == trimmed {
			return form, nil
		}
	}
	return 0, ErrInvalidQueryForm
}

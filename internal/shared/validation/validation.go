// Package validation はフィールド単位のルール検証を提供します。
// ルールは宣言順に評価され、違反はフィールド名ごとにまとめて返されます。
package validation

// FieldErrors はフィールド名から違反メッセージ一覧へのマップです。
// 違反のないフィールドはキーとして含まれません。
type FieldErrors map[string][]string

// Constraint は単一の制約です。Test が false を返した場合に Message が違反として記録されます。
type Constraint struct {
	Message string
	Test    func(value any) bool
}

// FieldRule は1フィールドに対する制約の並びです。
// Optional が true の場合、値が nil ならすべての制約をスキップします。
type FieldRule struct {
	Field       string
	Optional    bool
	Constraints []Constraint
}

// RuleSet は宣言順に評価されるフィールドルールの集合です。
type RuleSet []FieldRule

// Validate は data に対して rules を評価し、違反をまとめて返します。
// 違反がなければ nil を返します。data が nil の場合はすべての値を未設定として扱います。
func Validate(rules RuleSet, data map[string]any) FieldErrors {
	var errs FieldErrors
	for _, rule := range rules {
		value := data[rule.Field]
		if rule.Optional && value == nil {
			continue
		}
		for _, c := range rule.Constraints {
			if c.Test(value) {
				continue
			}
			if errs == nil {
				errs = FieldErrors{}
			}
			errs[rule.Field] = append(errs[rule.Field], c.Message)
		}
	}
	return errs
}

// Validator は直近の検証結果を保持します。エンティティに埋め込んで使います。
type Validator struct {
	errors FieldErrors
}

// Validate は検証を実行し、成功なら true を返します。
// 実行のたびに前回の結果は破棄されます。
func (v *Validator) Validate(rules RuleSet, data map[string]any) bool {
	v.errors = Validate(rules, data)
	return v.errors == nil
}

// Errors は直近の検証で記録された違反を返します。成功時は nil です。
func (v *Validator) Errors() FieldErrors {
	return v.errors
}

// Messages は違反メッセージをルールの宣言順に平坦化します。
func (e FieldErrors) Messages(rules RuleSet) []string {
	var out []string
	for _, rule := range rules {
		out = append(out, e[rule.Field]...)
	}
	return out
}

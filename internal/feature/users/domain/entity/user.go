// Package entity はユーザーのドメインエンティティを定義します。
package entity

import (
	"time"

	"user_backend/internal/feature/users/domain/rules"
	"user_backend/internal/shared/domainerr"
	sharedentity "user_backend/internal/shared/entity"
	"user_backend/internal/shared/validation"
)

// UserProps はユーザーの属性です。Password は検証中の平文か、保存時のハッシュを保持します。
type UserProps struct {
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

// Fields は属性名から値へのマップを返します。キーは JSON 表現と同じ camelCase です。
func (p UserProps) Fields() map[string]any {
	return map[string]any{
		"name":      p.Name,
		"email":     p.Email,
		"password":  p.Password,
		"createdAt": p.CreatedAt,
	}
}

// User はユーザーエンティティです。
type User struct {
	sharedentity.Entity[UserProps]
	validator validation.Validator
}

// NewUser は新しいユーザーを生成します。id が空なら採番し、CreatedAt が未設定なら現在時刻を設定します。
func NewUser(props UserProps, id string) *User {
	if props.CreatedAt.IsZero() {
		props.CreatedAt = time.Now()
	}
	return &User{Entity: sharedentity.New(props, id)}
}

func (u *User) Name() string         { return u.Props.Name }
func (u *User) Email() string        { return u.Props.Email }
func (u *User) Password() string     { return u.Props.Password }
func (u *User) CreatedAt() time.Time { return u.Props.CreatedAt }

func (u *User) SetName(name string) {
	u.Props.Name = name
}

func (u *User) SetPassword(password string) {
	u.Props.Password = password
}

// Validate は UserRules で属性を検証し、違反があれば EntityValidationError を返します。
func (u *User) Validate() error {
	if u.validator.Validate(rules.UserRules(), u.Props.Fields()) {
		return nil
	}
	return domainerr.NewEntityValidation(u.validator.Errors())
}

// ValidationErrors は直近の Validate で記録された違反を返します。
func (u *User) ValidationErrors() validation.FieldErrors {
	return u.validator.Errors()
}

// Clone はユーザーの複製を返します。
func (u *User) Clone() *User {
	c := *u
	return &c
}

// Equal は ID と属性が等しい場合に true を返します。
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Entity.Equal(other.Entity)
}

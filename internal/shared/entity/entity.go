// Package entity は ID を持つドメインエンティティの共通部分を提供します。
package entity

import (
	"reflect"

	"github.com/google/uuid"
)

// Props はエンティティの属性です。Fields はシリアライズ・検証・ソートに使う
// 属性名から値へのマップを返します。
type Props interface {
	Fields() map[string]any
}

// Entity は不変の ID と属性を保持します。具体的なエンティティに埋め込んで使います。
type Entity[P Props] struct {
	id    string
	Props P
}

// New は Entity を生成します。id が空の場合は UUID v4 を採番します。
func New[P Props](props P, id string) Entity[P] {
	if id == "" {
		id = uuid.NewString()
	}
	return Entity[P]{id: id, Props: props}
}

func (e Entity[P]) ID() string {
	return e.id
}

// ToJSON は属性に id を加えたマップを返します。
func (e Entity[P]) ToJSON() map[string]any {
	out := e.Props.Fields()
	if out == nil {
		out = make(map[string]any, 1)
	}
	out["id"] = e.id
	return out
}

// Equal は ID と属性がともに等しい場合に true を返します。
func (e Entity[P]) Equal(other Entity[P]) bool {
	return e.id == other.id && reflect.DeepEqual(e.Props, other.Props)
}

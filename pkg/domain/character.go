package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Character は漫画に登場するキャラクターの定義を保持します。
// ID は作成時に一度だけ採番され、以降は変更されません。
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Appearance  string `json:"appearance"`
	Personality string `json:"personality"`
	Backstory   string `json:"backstory"` // 空でも可
}

// NewCharacter は入力値からキャラクターを生成し、新しい ID を採番するのだ。
func NewCharacter(name, appearance, personality, backstory string) Character {
	return Character{
		ID:          uuid.NewString(),
		Name:        name,
		Appearance:  appearance,
		Personality: personality,
		Backstory:   backstory,
	}
}

// Valid は必須項目（名前・外見・性格）が埋まっているかを返します。
func (c Character) Valid() bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Appearance) != "" &&
		strings.TrimSpace(c.Personality) != ""
}

// String はキャラクターの情報を文字列で返すのだ。
func (c Character) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// Cast はキャラクターの順序付き集合です。
// 生成された本文や台本の中では名前でしか参照されないため、
// ここでの ID と本文中の名前は突き合わせません（リネームや AI の創作名はそのまま通す）。
type Cast []Character

// DescribeFull は物語の肉付けプロンプトに流し込む詳細な説明文を組み立てます。
func (cs Cast) DescribeFull() string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, fmt.Sprintf("%s: %s. Personality: %s. Backstory: %s", c.Name, c.Appearance, c.Personality, c.Backstory))
	}
	return strings.Join(lines, "\n")
}

// DescribeForScript は台本生成用に、外見と性格だけの説明文を組み立てます。
func (cs Cast) DescribeForScript() string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, fmt.Sprintf("%s: %s. Personality: %s.", c.Name, c.Appearance, c.Personality))
	}
	return strings.Join(lines, "\n")
}

// DescribeBrief は表紙プロンプト用に「名前 (外見)」のカンマ区切りを組み立てます。
func (cs Cast) DescribeBrief() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, c.Appearance))
	}
	return strings.Join(parts, ", ")
}

// FindByID は ID からキャラクターを探します。見つからなければ nil を返すのだ。
func (cs Cast) FindByID(id string) *Character {
	for i := range cs {
		if cs[i].ID == id {
			res := cs[i]
			return &res
		}
	}
	return nil
}

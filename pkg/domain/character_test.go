package domain

import (
	"strings"
	"testing"
)

func TestNewCharacter(t *testing.T) {
	a := NewCharacter("Maya", "tall, silver coat", "sharp", "ex-cop")
	b := NewCharacter("Maya", "tall, silver coat", "sharp", "ex-cop")

	if a.ID == "" || b.ID == "" {
		t.Fatal("IDが採番されていないのだ")
	}
	if a.ID == b.ID {
		t.Error("別々に作ったキャラクターのIDが衝突しています")
	}
	if !a.Valid() {
		t.Error("必須項目が揃っているのに無効扱いです")
	}
}

func TestCharacter_Valid(t *testing.T) {
	c := NewCharacter("  ", "coat", "sharp", "")
	if c.Valid() {
		t.Error("名前が空白のみなのに有効扱いなのだ")
	}
	c = NewCharacter("Maya", "coat", "sharp", "")
	if !c.Valid() {
		t.Error("経歴は任意項目のはずなのだ")
	}
}

func TestCast_Describe(t *testing.T) {
	cast := Cast{
		NewCharacter("Maya", "silver coat", "sharp", "ex-cop"),
		NewCharacter("Ravi", "red scarf", "loyal", "street kid"),
	}

	t.Run("詳細記述に全項目が含まれること", func(t *testing.T) {
		full := cast.DescribeFull()
		for _, want := range []string{"Maya: silver coat", "Personality: sharp", "Backstory: ex-cop", "Ravi: red scarf"} {
			if !strings.Contains(full, want) {
				t.Errorf("%q が含まれていないのだ: %s", want, full)
			}
		}
	})

	t.Run("台本用記述に経歴が含まれないこと", func(t *testing.T) {
		s := cast.DescribeForScript()
		if strings.Contains(s, "Backstory") {
			t.Errorf("台本用の記述に経歴が混ざっています: %s", s)
		}
	})

	t.Run("表紙用の短い記述が名前(外見)形式であること", func(t *testing.T) {
		brief := cast.DescribeBrief()
		if brief != "Maya (silver coat), Ravi (red scarf)" {
			t.Errorf("想定外の形式なのだ: %s", brief)
		}
	})
}

func TestFindStyle(t *testing.T) {
	if s := FindStyle("Indian Noir"); s == nil || s.Prompt == "" {
		t.Error("カタログに存在する画風が解決できないのだ")
	}
	if s := FindStyle("indian noir"); s != nil {
		t.Error("画風名は完全一致で解決するはずなのだ")
	}
	if s := FindStyle("Unknown Style"); s != nil {
		t.Error("存在しない画風が解決されています")
	}
}

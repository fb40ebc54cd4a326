package workflow

import (
	"context"
	"errors"
	"testing"
)

func editorSession(t *testing.T, gw *fakeGateway) *Session {
	t.Helper()
	s := displaySession(t, gw)
	if err := s.FillPanels(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPanelEditor_DraftLifecycle(t *testing.T) {
	gw := &fakeGateway{edit: func(_ context.Context, image, instruction string) (string, error) {
		return image + "+" + instruction, nil
	}}
	s := editorSession(t, gw)
	ctx := context.Background()

	e, err := s.OpenPanelEditor(3)
	if err != nil {
		t.Fatal(err)
	}
	committed, _ := s.Project().Panel(3)

	t.Run("編集結果は下書きに入り確定分は変わらないこと", func(t *testing.T) {
		if err := e.GenerateEdit(ctx, "make the sky red"); err != nil {
			t.Fatal(err)
		}
		if !e.HasDraft() {
			t.Fatal("下書きができていないのだ")
		}
		if now, _ := s.Project().Panel(3); now != committed {
			t.Error("保存前なのに確定済みの画像が書き換わっています")
		}
	})

	t.Run("続けての編集は下書きを元にすること", func(t *testing.T) {
		if err := e.GenerateEdit(ctx, "add rain"); err != nil {
			t.Fatal(err)
		}
		want := committed + "+make the sky red+add rain"
		if e.Current() != want {
			t.Errorf("編集の積み重ねが違うのだ: %s", e.Current())
		}
	})

	t.Run("Discard で確定済みの画像に戻ること", func(t *testing.T) {
		e.Discard()
		if e.HasDraft() {
			t.Error("下書きが残っています")
		}
		if e.Current() != committed {
			t.Errorf("確定済みの画像に戻っていないのだ: %s", e.Current())
		}
	})

	t.Run("Save で下書きがスロットへ確定されること", func(t *testing.T) {
		if err := e.GenerateEdit(ctx, "final touch"); err != nil {
			t.Fatal(err)
		}
		if err := e.Save(); err != nil {
			t.Fatal(err)
		}
		if now, _ := s.Project().Panel(3); now != committed+"+final touch" {
			t.Errorf("保存結果が違うのだ: %s", now)
		}
		// 隣のスロットは無傷であること
		if img, _ := s.Project().Panel(2); img == "" {
			t.Error("無関係なスロットが壊れています")
		}
	})

	t.Run("下書きが無い状態の Save はエラーであること", func(t *testing.T) {
		if err := e.Save(); !errors.Is(err, ErrNoDraft) {
			t.Errorf("想定外のエラーなのだ: %v", err)
		}
	})
}

func TestPanelEditor_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("未生成スロットにはエディタを開けないこと", func(t *testing.T) {
		s := displaySession(t, &fakeGateway{})
		if _, err := s.OpenPanelEditor(0); !errors.Is(err, ErrPanelNotReady) {
			t.Errorf("想定外のエラーなのだ: %v", err)
		}
	})

	t.Run("空の指示文は弾かれること", func(t *testing.T) {
		s := editorSession(t, &fakeGateway{})
		e, _ := s.OpenPanelEditor(0)
		if err := e.GenerateEdit(ctx, "   "); !errors.Is(err, ErrEmptyInstruction) {
			t.Errorf("想定外のエラーなのだ: %v", err)
		}
	})

	t.Run("実行中の再投入は黙って無視されること", func(t *testing.T) {
		calls := 0
		var e *PanelEditor
		gw := &fakeGateway{}
		gw.edit = func(_ context.Context, image, _ string) (string, error) {
			calls++
			// 実行中に同じエディタへもう1件投げてみるのだ
			if err := e.GenerateEdit(ctx, "interrupt"); err != nil {
				t.Errorf("割り込みはエラーにならず無視のはずなのだ: %v", err)
			}
			return image + "+done", nil
		}
		s := editorSession(t, gw)
		e, _ = s.OpenPanelEditor(0)
		if err := e.GenerateEdit(ctx, "first"); err != nil {
			t.Fatal(err)
		}
		if calls != 1 {
			t.Errorf("編集が %d 回走っています", calls)
		}
	})
}

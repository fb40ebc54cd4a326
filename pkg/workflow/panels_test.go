package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

// displaySession は台本と表紙まで揃えて Display 段階に入ったセッションを返すのだ。
func displaySession(t *testing.T, gw *fakeGateway) *Session {
	t.Helper()
	s := approvalSession(t, gw)
	ctx := context.Background()
	if err := s.ApproveStory(); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectStyle("Indian Noir"); err != nil {
		t.Fatal(err)
	}
	if err := s.GenerateScript(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.GenerateCover(ctx); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFillPanels_SequentialFill(t *testing.T) {
	var order []string
	gw := &fakeGateway{panel: func(_ context.Context, description, _ string) (string, error) {
		order = append(order, description)
		return "img:" + description, nil
	}}
	s := displaySession(t, gw)

	if err := s.FillPanels(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(order) != domain.TotalPanels {
		t.Fatalf("呼び出し回数が違うのだ: %d", len(order))
	}
	for i, desc := range order {
		if desc != fmt.Sprintf("panel %d", i+1) {
			t.Fatalf("生成順序が昇順ではないのだ: %v", order)
		}
	}
	if s.Project().StillGenerating() {
		t.Error("全スロットが埋まったのに生成中扱いなのだ")
	}
}

func TestFillPanels_AbortPreservesPrefix(t *testing.T) {
	failAt := 2 // 0始まり。3枚目で失敗させる
	calls := 0
	gw := &fakeGateway{panel: func(_ context.Context, description, _ string) (string, error) {
		if calls == failAt {
			return "", errors.New("画像データが返ってこなかったのだ")
		}
		calls++
		return "img:" + description, nil
	}}
	s := displaySession(t, gw)

	err := s.FillPanels(context.Background())
	if err == nil {
		t.Fatal("失敗が返っていないのだ")
	}
	if !strings.Contains(err.Error(), "パネル 3") {
		t.Errorf("失敗したパネル番号（1始まり）が報告されていないのだ: %v", err)
	}

	// 失敗より前のスロットは残り、以降はすべて未生成のままであること
	for i := 0; i < failAt; i++ {
		if !s.Project().PanelFilled(i) {
			t.Errorf("成功済みのスロット %d が消えています", i)
		}
	}
	for i := failAt; i < domain.TotalPanels; i++ {
		if s.Project().PanelFilled(i) {
			t.Errorf("中断後のスロット %d が埋まっています", i)
		}
	}

	if s.Stage() != domain.StageStyleSelection {
		t.Errorf("Display での失敗は StyleSelection へ巻き戻るはずなのだ: %s", s.Stage())
	}
	if s.ErrMessage() == "" {
		t.Error("バナーが立っていないのだ")
	}
}

func TestFillPanels_ResumeOnlyMissing(t *testing.T) {
	var generated []string
	gw := &fakeGateway{panel: func(_ context.Context, description, _ string) (string, error) {
		generated = append(generated, description)
		return "new:" + description, nil
	}}
	s := displaySession(t, gw)

	// 一部のスロットを生成済みにしておく
	s.Project().SetPanel(0, "old:first")
	s.Project().SetPanel(5, "old:sixth")

	if err := s.FillPanels(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(generated) != domain.TotalPanels-2 {
		t.Errorf("生成済みスロットまで再生成しているのだ: %d 回", len(generated))
	}
	if img, _ := s.Project().Panel(0); img != "old:first" {
		t.Errorf("生成済みスロットの値が変わっています: %s", img)
	}
	if img, _ := s.Project().Panel(5); img != "old:sixth" {
		t.Errorf("生成済みスロットの値が変わっています: %s", img)
	}
	if img, _ := s.Project().Panel(1); img != "new:panel 2" {
		t.Errorf("未生成スロットが埋まっていないのだ: %s", img)
	}
}

func TestFillPanels_NoopOutsideDisplay(t *testing.T) {
	called := false
	gw := &fakeGateway{panel: func(context.Context, string, string) (string, error) {
		called = true
		return "img", nil
	}}
	s := approvalSession(t, gw)
	if err := s.FillPanels(context.Background()); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("Display 以外の段階で生成ループが走っています")
	}
}

func TestFillPanels_StaleEpochStopsLoop(t *testing.T) {
	var s *Session
	calls := 0
	gw := &fakeGateway{}
	gw.panel = func(_ context.Context, description, _ string) (string, error) {
		calls++
		if calls == 2 {
			s.Reset() // 2枚目の生成中にセッションが作り直された想定なのだ
		}
		return "img:" + description, nil
	}
	s = displaySession(t, gw)

	if err := s.FillPanels(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("世代交代後もループが続いています: %d 回", calls)
	}
	if s.Stage() != domain.StageWelcome {
		t.Errorf("Reset 後の段階が違うのだ: %s", s.Stage())
	}
	// 新しいプロジェクトには何も書き込まれていないこと
	if len(s.Project().GeneratedPanels) != 0 {
		t.Error("世代交代後のプロジェクトに古い結果が書き込まれています")
	}
}

package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

var (
	ErrPanelNotReady    = errors.New("そのパネルはまだ生成されていないのだ")
	ErrEmptyInstruction = errors.New("編集の指示を入力してほしいのだ")
	ErrNoDraft          = errors.New("保存できる下書きが無いのだ")
)

// PanelEditor は生成済みパネル1枚に対する編集のサブワークフローです。
// 編集結果はまず下書きとして保持され、Save されるまでプロジェクト側の
// スロットには一切触れません。エラーもエディタ内に閉じ、セッションの
// バナーや段階には影響しないのだ。
type PanelEditor struct {
	session *Session
	index   int
	draft   string
	busy    bool
}

// OpenPanelEditor は Display 段階で生成済みスロットに対するエディタを開きます。
func (s *Session) OpenPanelEditor(index int) (*PanelEditor, error) {
	if s.stage != domain.StageDisplay {
		return nil, ErrWrongStage
	}
	if !s.project.PanelFilled(index) {
		return nil, ErrPanelNotReady
	}
	return &PanelEditor{session: s, index: index}, nil
}

// Index は編集対象のスロット添字を返します。
func (e *PanelEditor) Index() int { return e.index }

// HasDraft は未保存の下書きがあるかを返します。
func (e *PanelEditor) HasDraft() bool { return e.draft != "" }

// Current は表示すべき画像を返します。下書きがあれば下書き、無ければ確定済みの画像です。
func (e *PanelEditor) Current() string {
	if e.draft != "" {
		return e.draft
	}
	image, _ := e.session.project.Panel(e.index)
	return image
}

// GenerateEdit は現在の画像（下書き優先）に指示文を適用し、結果を下書きに置きます。
// 1つのエディタで同時に走れる編集は1件だけで、実行中の再投入は黙って無視するのだ。
func (e *PanelEditor) GenerateEdit(ctx context.Context, instruction string) error {
	if e.busy {
		return nil
	}
	if strings.TrimSpace(instruction) == "" {
		return ErrEmptyInstruction
	}

	e.busy = true
	defer func() { e.busy = false }()

	edited, err := e.session.gateway.EditImage(ctx, e.Current(), instruction)
	if err != nil {
		return err
	}
	e.draft = edited
	return nil
}

// Discard は下書きを捨て、確定済みの画像に表示を戻します。
func (e *PanelEditor) Discard() {
	e.draft = ""
}

// Save は下書きをプロジェクトのスロットへ確定します。
// 書き込むのは自分のスロットだけで、他のスロットには触れません。
func (e *PanelEditor) Save() error {
	if e.draft == "" {
		return ErrNoDraft
	}
	e.session.project.SetPanel(e.index, e.draft)
	e.draft = ""
	return nil
}

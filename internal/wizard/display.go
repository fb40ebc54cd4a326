package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/workflow"
)

// showDisplay は完成画面なのだ。入場のたびに未生成パネルの充填を試み、
// 途中で失敗したらワークフローが決めた復帰先ステージへ戻ります。
func (w *Wizard) showDisplay(ctx context.Context) (bool, error) {
	if err := w.session.FillPanels(ctx); err != nil {
		return false, err
	}
	if w.session.Stage() != domain.StageDisplay {
		return false, nil
	}

	p := w.session.Project()
	filled := len(p.GeneratedPanels) - len(p.PendingPanels())

	w.showError()
	fmt.Fprintln(w.out, "\n--- 完成した漫画 ---")
	fmt.Fprintf(w.out, "タイトル: %s\n", p.ComicTitle)
	fmt.Fprintf(w.out, "画風: %s / パネル: %d枚中%d枚\n", p.Style.Name, len(p.GeneratedPanels), filled)
	fmt.Fprintln(w.out, "[s]プロジェクトを保存 [p]書き出し（画像+Markdown+HTML） [e]パネルを編集 [n]新しい漫画を作る [q]終了")

	choice, ok := w.readLine("選択")
	if !ok {
		return true, nil
	}
	switch choice {
	case "s":
		w.saveProject(ctx)
	case "p":
		w.publish(ctx)
	case "e":
		w.editPanel(ctx)
	case "n":
		w.session.Reset()
	case "q":
		return true, nil
	}
	return false, nil
}

func (w *Wizard) saveProject(ctx context.Context) {
	path := w.opts.ProjectFile
	if input, ok := w.readLine(fmt.Sprintf("保存先 [%s]", path)); ok && input != "" {
		path = input
	}
	if err := w.store.Export(ctx, path, w.session.Project()); err != nil {
		fmt.Fprintf(w.out, "⚠ 保存に失敗したのだ: %v\n", err)
		return
	}
	fmt.Fprintf(w.out, "保存したのだ: %s\n", path)
}

func (w *Wizard) publish(ctx context.Context) {
	result, err := w.publisher.Publish(ctx, w.session.Project(), w.opts.OutputDir)
	if err != nil {
		fmt.Fprintf(w.out, "⚠ 書き出しに失敗したのだ: %v\n", err)
		return
	}
	fmt.Fprintf(w.out, "書き出したのだ: %s\n", result.MarkdownPath)
	if result.HTMLPath != "" {
		fmt.Fprintf(w.out, "HTML版: %s\n", result.HTMLPath)
	}
}

// editPanel はパネル一枚の編集サブワークフローなのだ。下書きに指示を重ねがけして、
// 納得したら保存、やめるなら破棄で元の絵に戻ります。
func (w *Wizard) editPanel(ctx context.Context) {
	raw, ok := w.readLine(fmt.Sprintf("編集するパネル番号 [1-%d]", domain.TotalPanels))
	if !ok {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > domain.TotalPanels {
		fmt.Fprintln(w.out, "その番号のパネルはないのだ。")
		return
	}

	editor, err := w.session.OpenPanelEditor(n - 1)
	if err != nil {
		if errors.Is(err, workflow.ErrPanelNotReady) {
			fmt.Fprintln(w.out, "そのパネルはまだ生成されていないのだ。")
			return
		}
		fmt.Fprintf(w.out, "⚠ %v\n", err)
		return
	}

	for {
		state := "元の絵"
		if editor.HasDraft() {
			state = "下書きあり"
		}
		fmt.Fprintf(w.out, "\nパネル %d（%s）: 指示を入力すると描き直すのだ。[k]下書きを保存 [d]下書きを破棄 [q]戻る\n", n, state)

		input, ok := w.readLine("指示")
		if !ok {
			return
		}
		switch input {
		case "k":
			if err := editor.Save(); err != nil {
				fmt.Fprintln(w.out, "保存できる下書きがないのだ。")
				continue
			}
			fmt.Fprintln(w.out, "パネルを更新したのだ！")
			return
		case "d":
			editor.Discard()
			fmt.Fprintln(w.out, "下書きを捨てて元の絵に戻したのだ。")
		case "q":
			return
		default:
			if err := editor.GenerateEdit(ctx, input); err != nil {
				if errors.Is(err, workflow.ErrEmptyInstruction) {
					fmt.Fprintln(w.out, "指示が空っぽなのだ。")
					continue
				}
				fmt.Fprintf(w.out, "⚠ 編集に失敗したのだ: %v\n", err)
				continue
			}
			fmt.Fprintln(w.out, "描き直したのだ。続けて指示もできるのだよ。")
		}
	}
}

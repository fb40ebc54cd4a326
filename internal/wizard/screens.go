package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/workflow"

	"github.com/jedib0t/go-pretty/v6/table"
)

func (w *Wizard) showWelcome() (bool, error) {
	fmt.Fprintln(w.out, "")
	fmt.Fprintln(w.out, "========================================")
	fmt.Fprintln(w.out, "  AI Comic Creator")
	fmt.Fprintln(w.out, "  アイデアひとつで漫画が一冊できるのだ！")
	fmt.Fprintln(w.out, "========================================")
	if _, ok := w.readLine("Enterで開始（q で終了）"); !ok {
		return true, nil
	}
	return false, w.session.Start()
}

func (w *Wizard) showStoryInput() (bool, error) {
	w.showError()
	fmt.Fprintln(w.out, "\n--- 物語のアイデア ---")

	if w.prefilledStory != "" {
		story := w.prefilledStory
		w.prefilledStory = ""
		fmt.Fprintf(w.out, "URLから取得した本文（%d文字）を使うのだ。\n", len([]rune(story)))
		return false, w.session.SubmitStory(story)
	}

	story, ok := w.readBlock("どんな漫画にしたい？アイデアを書いてほしいのだ")
	if !ok {
		return true, nil
	}
	if err := w.session.SubmitStory(story); err != nil {
		if errors.Is(err, workflow.ErrEmptyStory) {
			fmt.Fprintln(w.out, "アイデアが空っぽなのだ。一文でもいいから書いてほしいのだ。")
			return false, nil
		}
		return false, err
	}
	return false, nil
}

// showCharacterCreation は登場人物の台帳を編集するサブメニューなのだ。
func (w *Wizard) showCharacterCreation(ctx context.Context) (bool, error) {
	w.showError()
	for {
		cast := w.session.Project().Characters
		fmt.Fprintln(w.out, "\n--- 登場キャラクター ---")
		if len(cast) == 0 {
			fmt.Fprintln(w.out, "（まだ誰もいないのだ）")
		}
		for i, c := range cast {
			fmt.Fprintf(w.out, "  %d. %s\n", i+1, c.String())
		}
		fmt.Fprintln(w.out, "[a]追加 [s]AIに提案してもらう [e]編集 [r]削除 [d]決定して物語を作る [b]アイデアに戻る [q]終了")

		choice, ok := w.readLine("選択")
		if !ok {
			return true, nil
		}
		switch choice {
		case "a":
			w.addCharacter()
		case "s":
			w.suggestCharacters(ctx)
		case "e":
			w.editCharacter()
		case "r":
			w.removeCharacter()
		case "d":
			err := w.session.CommitCast(ctx, w.session.Project().Characters)
			switch {
			case errors.Is(err, workflow.ErrEmptyCast):
				fmt.Fprintln(w.out, "キャラクターが一人もいないのだ。最低一人は登録してほしいのだ。")
			case errors.Is(err, workflow.ErrInvalidCast):
				fmt.Fprintln(w.out, "名前・外見・性格が埋まっていないキャラクターがいるのだ。")
			default:
				return false, err
			}
		case "b":
			return false, w.session.BackToStoryInput()
		case "q":
			return true, nil
		}
	}
}

func (w *Wizard) addCharacter() {
	name, ok := w.readLine("名前")
	if !ok {
		return
	}
	appearance, ok := w.readLine("外見")
	if !ok {
		return
	}
	personality, ok := w.readLine("性格")
	if !ok {
		return
	}
	backstory, _ := w.readLine("背景（任意）")

	c := domain.NewCharacter(name, appearance, personality, backstory)
	if !c.Valid() {
		fmt.Fprintln(w.out, "名前・外見・性格は必須なのだ。")
		return
	}
	p := w.session.Project()
	p.Characters = append(p.Characters, c)
}

func (w *Wizard) suggestCharacters(ctx context.Context) {
	fmt.Fprintln(w.out, "AIがキャラクターを考えているのだ…")
	suggested, err := w.session.SuggestCast(ctx)
	if err != nil {
		fmt.Fprintf(w.out, "⚠ %v\n", err)
		return
	}
	for _, c := range suggested {
		fmt.Fprintf(w.out, "\n候補: %s\n", c.String())
		answer, ok := w.readLine("採用する？ [y/n]")
		if !ok {
			return
		}
		if answer == "y" {
			p := w.session.Project()
			p.Characters = append(p.Characters, c)
		}
	}
}

func (w *Wizard) editCharacter() {
	i, ok := w.pickCharacter("編集する番号")
	if !ok {
		return
	}
	p := w.session.Project()
	current := p.Characters[i]
	fmt.Fprintln(w.out, "空のままEnterで現在の値を保持するのだ。")

	if v, ok := w.readLine(fmt.Sprintf("名前 [%s]", current.Name)); ok && v != "" {
		current.Name = v
	}
	if v, ok := w.readLine(fmt.Sprintf("外見 [%s]", current.Appearance)); ok && v != "" {
		current.Appearance = v
	}
	if v, ok := w.readLine(fmt.Sprintf("性格 [%s]", current.Personality)); ok && v != "" {
		current.Personality = v
	}
	if v, ok := w.readLine(fmt.Sprintf("背景 [%s]", current.Backstory)); ok && v != "" {
		current.Backstory = v
	}
	p.Characters[i] = current
}

func (w *Wizard) removeCharacter() {
	i, ok := w.pickCharacter("削除する番号")
	if !ok {
		return
	}
	p := w.session.Project()
	p.Characters = append(p.Characters[:i], p.Characters[i+1:]...)
}

// pickCharacter は 1 始まりの番号入力を 0 始まりの添字へ変換します。
func (w *Wizard) pickCharacter(prompt string) (int, bool) {
	cast := w.session.Project().Characters
	if len(cast) == 0 {
		fmt.Fprintln(w.out, "キャラクターがいないのだ。")
		return 0, false
	}
	raw, ok := w.readLine(prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(cast) {
		fmt.Fprintln(w.out, "その番号のキャラクターはいないのだ。")
		return 0, false
	}
	return n - 1, true
}

func (w *Wizard) showStoryApproval(ctx context.Context) (bool, error) {
	w.showError()
	fmt.Fprintln(w.out, "\n--- 物語の本文 ---")
	fmt.Fprintln(w.out, w.session.Project().EnrichedStory)
	fmt.Fprintln(w.out, "\n[a]この物語で進める [r]感想を伝えて改稿 [g]最初から作り直し [q]終了")

	choice, ok := w.readLine("選択")
	if !ok {
		return true, nil
	}
	switch choice {
	case "a":
		return false, w.session.ApproveStory()
	case "r":
		feedback, ok := w.readBlock("どう直してほしい？")
		if !ok {
			return true, nil
		}
		err := w.session.ReviseStory(ctx, feedback)
		if errors.Is(err, workflow.ErrEmptyFeedback) {
			fmt.Fprintln(w.out, "感想が空っぽなのだ。")
			return false, nil
		}
		return false, err
	case "g":
		return false, w.session.RegenerateStory(ctx)
	case "q":
		return true, nil
	}
	return false, nil
}

func (w *Wizard) showStyleSelection() (bool, error) {
	w.showError()
	fmt.Fprintln(w.out, "\n--- 画風の選択 ---")
	fmt.Fprintln(w.out, StyleTable())

	raw, ok := w.readLine("番号で選んでほしいのだ")
	if !ok {
		return true, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(domain.Styles) {
		fmt.Fprintln(w.out, "その番号の画風はないのだ。")
		return false, nil
	}
	return false, w.session.SelectStyle(domain.Styles[n-1].Name)
}

// StyleTable は全画風を番号付きで一覧表にします。cmd の styles コマンドと共用なのだ。
func StyleTable() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Style", "Preview", "Prompt"})
	for i, s := range domain.Styles {
		t.AppendRow(table.Row{i + 1, s.Name, s.Preview, truncatePrompt(s.Prompt, 60)})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func truncatePrompt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// Package wizard は、物語のアイデアから完成した漫画までを対話的に導く
// コマンドライン・ウィザードなのだ。画面遷移の判断はすべて pkg/workflow に
// 委ね、ここでは入出力だけを担当します。
package wizard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/publisher"
	"github.com/shouni/go-comic-kit/pkg/store"
	"github.com/shouni/go-comic-kit/pkg/workflow"
)

// Wizard は対話セッションの入出力とワークフローを束ねる構造体なのだ。
type Wizard struct {
	session   *workflow.Session
	store     *store.ProjectStore
	publisher *publisher.ComicPublisher
	opts      config.Options

	in  *bufio.Scanner
	out io.Writer

	// prefilledStory は --story-url から取得した本文なのだ。最初の入力画面で使う。
	prefilledStory string
}

// New は依存関係を注入して Wizard を初期化します。
func New(session *workflow.Session, projectStore *store.ProjectStore, comicPublisher *publisher.ComicPublisher, opts config.Options, in io.Reader, out io.Writer) *Wizard {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Wizard{
		session:   session,
		store:     projectStore,
		publisher: comicPublisher,
		opts:      opts,
		in:        scanner,
		out:       out,
	}
}

// PrefillStory は物語入力画面の初期値を設定します。--story-url 用なのだ。
func (w *Wizard) PrefillStory(story string) {
	w.prefilledStory = story
}

// Run はウィザードの本体ループなのだ。現在のステージに応じた画面を出し、
// 利用者が終了を選ぶか入力が尽きるまで回り続けます。
func (w *Wizard) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			quit bool
			err  error
		)
		switch w.session.Stage() {
		case domain.StageWelcome:
			quit, err = w.showWelcome()
		case domain.StageStoryInput:
			quit, err = w.showStoryInput()
		case domain.StageCharacterCreation:
			quit, err = w.showCharacterCreation(ctx)
		case domain.StageStoryApproval:
			quit, err = w.showStoryApproval(ctx)
		case domain.StageStyleSelection:
			quit, err = w.showStyleSelection()
		case domain.StageGeneratingScript:
			err = w.session.GenerateScript(ctx)
		case domain.StageGeneratingCover:
			err = w.session.GenerateCover(ctx)
		case domain.StageDisplay:
			quit, err = w.showDisplay(ctx)
		default:
			return fmt.Errorf("未知のステージなのだ: %s", w.session.Stage())
		}

		if err != nil {
			// 生成系の失敗はワークフロー側が復帰先ステージを決めている。
			// エラーバナーは次の画面で表示されるので、ここではループを続けるのだ。
			fmt.Fprintf(w.out, "\n⚠ %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// showError は直前の失敗メッセージをバナー表示します。
func (w *Wizard) showError() {
	if msg := w.session.ErrMessage(); msg != "" {
		fmt.Fprintf(w.out, "\n⚠ %s\n", msg)
	}
}

// readLine は一行入力を読み取ります。入力が尽きたら false を返すのだ。
func (w *Wizard) readLine(prompt string) (string, bool) {
	fmt.Fprintf(w.out, "%s> ", prompt)
	if !w.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(w.in.Text()), true
}

// readBlock は空行で確定する複数行入力を読み取ります。
func (w *Wizard) readBlock(prompt string) (string, bool) {
	fmt.Fprintf(w.out, "%s（空行で確定）\n", prompt)
	var lines []string
	for {
		fmt.Fprint(w.out, "| ")
		if !w.in.Scan() {
			return strings.TrimSpace(strings.Join(lines, "\n")), len(lines) > 0
		}
		line := w.in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

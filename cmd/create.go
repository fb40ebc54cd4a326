package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-comic-kit/internal/builder"
	"github.com/shouni/go-comic-kit/internal/wizard"
	"github.com/shouni/go-comic-kit/pkg/workflow"

	"github.com/spf13/cobra"
)

// createCmd は、真っさらなアイデアから漫画を一冊作り上げるウィザードを起動するのだ！
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "アイデアから漫画を一冊作る対話ウィザードを開始するのだ！",
	Long: `物語のアイデア入力からキャラクター作成、本文の肉付けと承認、
画風の選択、台本・表紙・全パネル画像の生成までを一気に案内するのだ。
--story-url を渡せば、Webページの本文をアイデアの下書きとして取り込めるのだよ。`,
	Example: "  ap-comic-go create -u https://example.com/story -o output",
	RunE:    createCommand,
}

// createCommand は、create サブコマンドの実行ロジック本体なのだ。
func createCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	appCtx, err := builder.SetupAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗したのだ: %w", err)
	}

	session := workflow.NewSession(appCtx.Gateway)
	wiz := wizard.New(session, appCtx.Store, appCtx.Publisher, cfg.Options, os.Stdin, os.Stdout)

	// --story-url が指定されていれば、本文を抽出してアイデアの下書きにするのだ
	if cfg.Options.StoryURL != "" {
		extractor, err := builder.BuildExtractor(appCtx.HTTPClient())
		if err != nil {
			return err
		}
		slog.Info("Webページから本文を取り込むのだ", "url", cfg.Options.StoryURL)
		text, _, err := extractor.FetchAndExtractText(ctx, cfg.Options.StoryURL)
		if err != nil {
			return fmt.Errorf("URLからの本文抽出に失敗したのだ: %w", err)
		}
		wiz.PrefillStory(text)
	}

	if err := wiz.Run(ctx); err != nil {
		return fmt.Errorf("ウィザードの実行に失敗したのだ: %w", err)
	}

	slog.Info("お疲れさまなのだ！また漫画を作りに来てほしいのだ。")
	return nil
}

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

// openCmd は、保存済みプロジェクトを読み込んで続きから再開するのだ。
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "保存したプロジェクトを開いて、続きから再開するのだ！",
	Long: `エクスポートしたプロジェクトJSONを読み込み、完成画面から再開するのだ。
未生成のパネルが残っていれば、入場と同時に続きの生成が走るのだよ。
壊れたファイルや古いフォーマットは読み込む前に弾かれるのだ。`,
	Example: "  ap-comic-go open -f output/comic_project.json",
	RunE:    openCommand,
}

// openCommand は、open サブコマンドの実行ロジック本体なのだ。
func openCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	if cfg.Options.ProjectFile == "" {
		return fmt.Errorf("読み込むプロジェクトファイル（--project-file）を指定してほしいのだ")
	}

	appCtx, err := builder.SetupAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗したのだ: %w", err)
	}

	project, err := appCtx.Store.Import(ctx, cfg.Options.ProjectFile)
	if err != nil {
		return fmt.Errorf("プロジェクトの読み込みに失敗したのだ: %w", err)
	}

	slog.Info("プロジェクトを読み込んだのだ！",
		"path", cfg.Options.ProjectFile,
		"title", project.ComicTitle,
		"pending_panels", len(project.PendingPanels()))

	session := workflow.NewSession(appCtx.Gateway)
	session.AdoptProject(project)

	wiz := wizard.New(session, appCtx.Store, appCtx.Publisher, cfg.Options, os.Stdin, os.Stdout)
	if err := wiz.Run(ctx); err != nil {
		return fmt.Errorf("ウィザードの実行に失敗したのだ: %w", err)
	}

	return nil
}

// Package publisher は完成した漫画を配布可能な成果物（画像・Markdown・HTML）へ
// 書き出す役割を担うのだ。
package publisher

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/shouni/go-comic-kit/pkg/domain"

	"github.com/shouni/go-remote-io/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
	"golang.org/x/sync/errgroup"
)

const (
	defaultComicName    = "comic.md"
	defaultCoverName    = "cover.png"
	defaultImageDirName = "images"
	imageMimeType       = "image/png"
)

// PublishResult はパブリッシュ処理で生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string
	HTMLPath     string
	CoverPath    string
	ImagePaths   []string
}

// ComicPublisher は成果物の永続化とフォーマット変換を担います。
type ComicPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewComicPublisher は依存関係を注入して初期化します。htmlRunner は nil でも動作し、
// その場合は HTML 変換をスキップします。
func NewComicPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *ComicPublisher {
	return &ComicPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish は表紙と全パネル画像の保存、Markdown の構築、HTML 変換を一括して実行するのだ！
// 生成が終わっていないプロジェクトは受け付けません。
func (p *ComicPublisher) Publish(ctx context.Context, project *domain.Project, outputDir string) (PublishResult, error) {
	result := PublishResult{}

	if project.StillGenerating() {
		return result, fmt.Errorf("漫画がまだ生成中なので書き出せないのだ")
	}

	// 1. 表紙とパネル画像の保存（書き込みは並列で構わない）
	coverPath := path.Join(outputDir, defaultCoverName)
	imagePaths := make([]string, len(project.GeneratedPanels))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return p.writeImage(egCtx, coverPath, *project.CoverImage)
	})
	for i := range project.GeneratedPanels {
		i := i
		imagePaths[i] = path.Join(outputDir, defaultImageDirName, fmt.Sprintf("panel_%d.png", i+1))
		eg.Go(func() error {
			image, _ := project.Panel(i)
			return p.writeImage(egCtx, imagePaths[i], image)
		})
	}
	if err := eg.Wait(); err != nil {
		return result, fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}
	result.CoverPath = coverPath
	result.ImagePaths = imagePaths

	// 2. Markdown の構築と書き出し
	relPaths := make([]string, len(imagePaths))
	for i, full := range imagePaths {
		relPaths[i] = path.Join(defaultImageDirName, path.Base(full))
	}
	content := BuildMarkdown(project, defaultCoverName, relPaths)

	markdownPath := path.Join(outputDir, defaultComicName)
	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = markdownPath

	// 3. HTML 変換と保存
	if p.htmlRunner != nil {
		slog.Info("HTMLへ変換しています", "title", project.ComicTitle)
		htmlBuffer, err := p.htmlRunner.Run(ctx, project.ComicTitle, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}
		htmlPath := strings.TrimSuffix(markdownPath, path.Ext(markdownPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	slog.Info("漫画を書き出したのだ！", "dir", outputDir, "panels", len(imagePaths))
	return result, nil
}

// writeImage は base64 の画像データをデコードして書き込みます。
func (p *ComicPublisher) writeImage(ctx context.Context, fullPath, encoded string) error {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("画像のデコードに失敗しました %s: %w", fullPath, err)
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), imageMimeType); err != nil {
		return fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
	}
	return nil
}

// BuildMarkdown はタイトル・表紙・ページごとのパネル（画像、ナレーション、セリフ）を
// 統合した Markdown 文字列を生成します。
func BuildMarkdown(project *domain.Project, coverPath string, imagePaths []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", project.ComicTitle))
	sb.WriteString(fmt.Sprintf("![cover](%s)\n\n", coverPath))

	for i, panel := range project.ComicScript {
		if i%domain.PanelsPerPage == 0 {
			sb.WriteString(fmt.Sprintf("## Page %d\n\n", i/domain.PanelsPerPage+1))
		}

		img := "placeholder.png"
		if i < len(imagePaths) {
			img = imagePaths[i]
		}
		sb.WriteString(fmt.Sprintf("![panel %d](%s)\n\n", i+1, img))

		if panel.Narration != "" {
			sb.WriteString(fmt.Sprintf("> %s\n\n", panel.Narration))
		}
		for _, line := range panel.Dialogue {
			// 話者名は台本のまま。キャラクター台帳とは突き合わせないのだ。
			sb.WriteString(fmt.Sprintf("**%s:** %s\n\n", line.Character, line.Speech))
		}
	}

	return sb.String()
}

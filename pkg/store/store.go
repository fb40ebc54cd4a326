// Package store はプロジェクトのバージョン付きファイル保存・復元を担うのだ。
// 入出力は remoteio 経由なので、保存先はローカルでも gs://... でも構いません。
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-comic-kit/pkg/domain"

	"github.com/shouni/go-remote-io/remoteio"
)

// FormatVersion は現在のプロジェクトファイル形式のバージョンです。
// 取り込み時は完全一致のみを受け入れ、移行処理は行いません。
const FormatVersion = 2

const projectMimeType = "application/json; charset=utf-8"

// projectFile はプロジェクトファイルの外部表現です。
// 画像フィールドは base64 文字列で、未生成のパネルスロットは null になります。
type projectFile struct {
	Version           int                  `json:"version"`
	StoryIdea         string               `json:"storyIdea"`
	Characters        []domain.Character   `json:"characters"`
	EnrichedStory     string               `json:"enrichedStory"`
	ComicScript       []domain.PanelScript `json:"comicScript"`
	SelectedStyleName string               `json:"selectedStyleName"`
	GeneratedPanels   []*string            `json:"generatedPanels"`
	ComicTitle        string               `json:"comicTitle"`
	CoverImage        *string              `json:"coverImage"`
}

// ProjectStore はプロジェクトファイルの読み書きを担当します。
type ProjectStore struct {
	reader remoteio.InputReader
	writer remoteio.OutputWriter
}

// NewProjectStore は依存関係を注入して初期化します。
func NewProjectStore(reader remoteio.InputReader, writer remoteio.OutputWriter) *ProjectStore {
	return &ProjectStore{reader: reader, writer: writer}
}

// Export はプロジェクト全体をバージョンタグ付きの JSON として書き出します。
func (ps *ProjectStore) Export(ctx context.Context, path string, p *domain.Project) error {
	styleName := ""
	if p.Style != nil {
		styleName = p.Style.Name
	}

	file := projectFile{
		Version:           FormatVersion,
		StoryIdea:         p.StoryIdea,
		Characters:        p.Characters,
		EnrichedStory:     p.EnrichedStory,
		ComicScript:       p.ComicScript,
		SelectedStyleName: styleName,
		GeneratedPanels:   p.GeneratedPanels,
		ComicTitle:        p.ComicTitle,
		CoverImage:        p.CoverImage,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("プロジェクトのエンコードに失敗しました: %w", err)
	}

	if err := ps.writer.Write(ctx, path, bytes.NewReader(data), projectMimeType); err != nil {
		return fmt.Errorf("プロジェクトファイルの書き込みに失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "プロジェクトを保存したのだ", "path", path, "panels", len(p.GeneratedPanels))
	return nil
}

// Import はプロジェクトファイルを読み込み、検証が全部通ってから Project を組み立てて返します。
// 検証前に何かを反映することはないので、失敗しても既存のセッションは無傷なのだ。
func (ps *ProjectStore) Import(ctx context.Context, path string) (*domain.Project, error) {
	rc, err := ps.reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("プロジェクトファイルの読み込みに失敗しました: %w", err)
	}
	defer rc.Close()

	var file projectFile
	if err := json.NewDecoder(rc).Decode(&file); err != nil {
		return nil, fmt.Errorf("プロジェクトファイルの解析に失敗しました: %w", err)
	}

	project, err := validate(file)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "プロジェクトを取り込んだのだ", "path", path, "characters", len(project.Characters))
	return project, nil
}

// validate は外部表現を検査し、全項目が通った場合にのみ Project へ変換します。
func validate(file projectFile) (*domain.Project, error) {
	if file.Version != FormatVersion {
		return nil, fmt.Errorf("このプロジェクトファイルは古いバージョン（%d）の形式で、互換性が無いのだ", file.Version)
	}
	if strings.TrimSpace(file.StoryIdea) == "" {
		return nil, fmt.Errorf("プロジェクトファイルが壊れているか不正です: 物語のアイデアがありません")
	}
	if len(file.Characters) == 0 {
		return nil, fmt.Errorf("プロジェクトファイルが壊れているか不正です: キャラクターがいません")
	}
	style := domain.FindStyle(file.SelectedStyleName)
	if style == nil {
		return nil, fmt.Errorf("画風 \"%s\" はカタログに存在しないのだ", file.SelectedStyleName)
	}

	// スロット列は常に全パネル数ちょうどに正規化する。欠けていたり短かったり
	// するファイルをそのまま採用すると、範囲外スロットへの書き込みが全部
	// 捨てられて生成が永遠に終わらなくなるのだ。
	panels := make([]*string, domain.TotalPanels)
	for i := 0; i < len(file.GeneratedPanels) && i < domain.TotalPanels; i++ {
		panels[i] = file.GeneratedPanels[i]
	}

	return &domain.Project{
		StoryIdea:       file.StoryIdea,
		Characters:      file.Characters,
		EnrichedStory:   file.EnrichedStory,
		ComicScript:     file.ComicScript,
		Style:           style,
		GeneratedPanels: panels,
		ComicTitle:      file.ComicTitle,
		CoverImage:      file.CoverImage,
	}, nil
}

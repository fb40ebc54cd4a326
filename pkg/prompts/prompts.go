// Package prompts は AI モデルに渡すプロンプトのテンプレートを束ねるのだ。
// テンプレート本体は go:embed した Markdown として管理し、
// コード側はデータの流し込みだけを担当します。
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

//go:embed enrich.md
var enrichTemplate string

//go:embed revise.md
var reviseTemplate string

//go:embed suggest_characters.md
var suggestTemplate string

//go:embed script.md
var scriptTemplate string

//go:embed title.md
var titleTemplate string

//go:embed cover.md
var coverTemplate string

//go:embed panel.md
var panelTemplate string

// TemplateData はテンプレートへ流し込む値の集合です。
// 用途ごとに必要なフィールドだけ埋めて使います。
type TemplateData struct {
	StoryIdea   string
	Story       string
	Feedback    string
	Characters  string
	StylePrompt string
	Description string
	StoryPages  int
	TotalPanels int
}

func render(name, tmpl string, data TemplateData) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("テンプレート '%s' の解析に失敗しました: %w", name, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("テンプレート '%s' への値の流し込みに失敗しました: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// BuildEnrich は物語の肉付け用プロンプトを組み立てます。
func BuildEnrich(storyIdea string, cast domain.Cast) (string, error) {
	return render("enrich", enrichTemplate, TemplateData{
		StoryIdea:   storyIdea,
		Characters:  cast.DescribeFull(),
		StoryPages:  domain.TotalStoryPages,
		TotalPanels: domain.TotalPanels,
	})
}

// BuildRevise はフィードバックを反映した改稿用プロンプトを組み立てます。
func BuildRevise(current, feedback string) (string, error) {
	return render("revise", reviseTemplate, TemplateData{
		Story:    current,
		Feedback: feedback,
	})
}

// BuildSuggestCharacters はキャラクター案の提案用プロンプトを組み立てます。
func BuildSuggestCharacters(storyIdea string) (string, error) {
	return render("suggest_characters", suggestTemplate, TemplateData{StoryIdea: storyIdea})
}

// BuildScript は台本生成用プロンプトを組み立てます。
func BuildScript(story string, cast domain.Cast) (string, error) {
	return render("script", scriptTemplate, TemplateData{
		Story:       story,
		Characters:  cast.DescribeForScript(),
		TotalPanels: domain.TotalPanels,
	})
}

// BuildTitle はタイトル生成用プロンプトを組み立てます。
func BuildTitle(storyIdea string) (string, error) {
	return render("title", titleTemplate, TemplateData{StoryIdea: storyIdea})
}

// BuildCover は表紙画像の生成用プロンプトを組み立てます。
func BuildCover(storyIdea string, cast domain.Cast, stylePrompt string) (string, error) {
	return render("cover", coverTemplate, TemplateData{
		StoryIdea:   storyIdea,
		Characters:  cast.DescribeBrief(),
		StylePrompt: stylePrompt,
	})
}

// BuildPanel はパネル画像の生成用プロンプトを組み立てます。
func BuildPanel(description, stylePrompt string) (string, error) {
	return render("panel", panelTemplate, TemplateData{
		Description: description,
		StylePrompt: stylePrompt,
	})
}

package workflow

import (
	"context"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

// Gateway は、生成 AI サービスが提供する各能力への窓口を定義します。
// 実装はレスポンスの検証と型変換まで済ませてから返す責務を持ち、
// 未検証の外部データをこの境界より内側に流してはいけないのだ。
type Gateway interface {
	// EnrichStory は物語のアイデアとキャラクター群から、詳細な物語本文を生成します。
	EnrichStory(ctx context.Context, storyIdea string, cast domain.Cast) (string, error)

	// ReviseStory は現在の本文にフィードバックを反映した改稿版を生成します。
	ReviseStory(ctx context.Context, current, feedback string) (string, error)

	// SuggestCharacters は物語のアイデアからキャラクター案を提案します。
	// 返されるキャラクターの ID は未採番（空文字）です。
	SuggestCharacters(ctx context.Context, storyIdea string) ([]domain.Character, error)

	// GenerateScript は本文とキャラクター群からパネル台本を生成します。
	// 長すぎる結果はパネル総数まで切り詰め、空の結果はエラーにします。
	GenerateScript(ctx context.Context, story string, cast domain.Cast) (domain.Script, error)

	// GenerateCoverPage はタイトルと表紙画像（base64）を順に生成して返します。
	GenerateCoverPage(ctx context.Context, storyIdea string, cast domain.Cast, stylePrompt string) (title, image string, err error)

	// GeneratePanelImage はパネルの視覚描写と画風断片から画像（base64）を生成します。
	GeneratePanelImage(ctx context.Context, description, stylePrompt string) (string, error)

	// EditImage は元画像（base64）に指示文を適用した新しい画像（base64）を生成します。
	EditImage(ctx context.Context, image, instruction string) (string, error)
}

// Package gateway は生成 AI サービス（Gemini）への唯一の窓口なのだ。
// 応答の検証と型変換はすべてこの境界で済ませ、未検証の外部データを
// 内側のワークフローへ流さないことを責務とします。
package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/prompts"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// パネルと表紙のアスペクト比。縦長の漫画パネルに合わせるのだ。
	panelAspectRatio = "3:4"

	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 15 * time.Minute

	editImageMimeType = "image/png"
)

// Config は Client の動作設定です。
type Config struct {
	TextModel    string
	ImageModel   string
	RateInterval time.Duration // 画像生成リクエストの最小間隔
}

// Client は Gemini クライアントをラップし、ワークフローが要求する各能力を提供します。
// 画像生成はレートリミッターで間隔を空け、同一プロンプトの再生成はキャッシュで吸収するのだ。
type Client struct {
	ai         gemini.GenerativeModel
	textModel  string
	imageModel string
	limiter    *rate.Limiter
	imgCache   *cache.Cache
}

// New は依存関係を注入して Client を初期化します。
func New(ai gemini.GenerativeModel, cfg Config) *Client {
	interval := cfg.RateInterval
	if interval <= 0 {
		interval = time.Second
	}
	return &Client{
		ai:         ai,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		imgCache:   cache.New(defaultCacheExpiration, cacheCleanupInterval),
	}
}

// EnrichStory は物語のアイデアとキャラクター群から詳細な本文を生成します。
func (c *Client) EnrichStory(ctx context.Context, storyIdea string, cast domain.Cast) (string, error) {
	prompt, err := prompts.BuildEnrich(storyIdea, cast)
	if err != nil {
		return "", err
	}
	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("物語の肉付けに失敗しました。もう一度試してほしいのだ: %w", err)
	}
	return text, nil
}

// ReviseStory は現在の本文にフィードバックを反映した改稿版を生成します。
func (c *Client) ReviseStory(ctx context.Context, current, feedback string) (string, error) {
	prompt, err := prompts.BuildRevise(current, feedback)
	if err != nil {
		return "", err
	}
	text, err := c.generateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("物語の改稿に失敗しました。もう一度試してほしいのだ: %w", err)
	}
	return text, nil
}

// SuggestCharacters は物語のアイデアからキャラクター案を提案します。
func (c *Client) SuggestCharacters(ctx context.Context, storyIdea string) ([]domain.Character, error) {
	prompt, err := prompts.BuildSuggestCharacters(storyIdea)
	if err != nil {
		return nil, err
	}
	raw, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("キャラクターの提案に失敗しました。もう一度試すか、手動で作成してほしいのだ: %w", err)
	}
	cast, err := parseCharacterSuggestions(raw)
	if err != nil {
		return nil, fmt.Errorf("キャラクターの提案に失敗しました。もう一度試すか、手動で作成してほしいのだ: %w", err)
	}
	return cast, nil
}

// GenerateScript は本文とキャラクター群からパネル台本を生成します。
func (c *Client) GenerateScript(ctx context.Context, story string, cast domain.Cast) (domain.Script, error) {
	prompt, err := prompts.BuildScript(story, cast)
	if err != nil {
		return nil, err
	}
	slog.Info("台本を生成しています", "model", c.textModel)
	raw, err := c.generateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("台本の作成に失敗しました。物語が複雑すぎるか、形式が不正かもしれないのだ: %w", err)
	}
	script, err := parseScript(raw)
	if err != nil {
		return nil, fmt.Errorf("台本の作成に失敗しました。物語が複雑すぎるか、形式が不正かもしれないのだ: %w", err)
	}
	return script, nil
}

// GenerateCoverPage はタイトルと表紙画像を順に生成して返します。
func (c *Client) GenerateCoverPage(ctx context.Context, storyIdea string, cast domain.Cast, stylePrompt string) (string, string, error) {
	titlePrompt, err := prompts.BuildTitle(storyIdea)
	if err != nil {
		return "", "", err
	}
	rawTitle, err := c.generateText(ctx, titlePrompt)
	if err != nil {
		return "", "", fmt.Errorf("表紙の生成に失敗しました。もう一度試してほしいのだ: %w", err)
	}
	title := cleanTitle(rawTitle)

	coverPrompt, err := prompts.BuildCover(storyIdea, cast, stylePrompt)
	if err != nil {
		return "", "", err
	}
	image, err := c.generateImage(ctx, coverPrompt)
	if err != nil {
		return "", "", fmt.Errorf("表紙の生成に失敗しました。もう一度試してほしいのだ: %w", err)
	}
	return title, image, nil
}

// GeneratePanelImage はパネルの視覚描写と画風断片から画像を生成します。
// 同一プロンプトの結果はキャッシュされるため、中断後の再実行で既出の
// パネルを引き直しても余計な API 呼び出しは発生しないのだ。
func (c *Client) GeneratePanelImage(ctx context.Context, description, stylePrompt string) (string, error) {
	prompt, err := prompts.BuildPanel(description, stylePrompt)
	if err != nil {
		return "", err
	}

	key := imageCacheKey(c.imageModel, prompt)
	if cached, ok := c.imgCache.Get(key); ok {
		slog.Info("キャッシュ済みのパネル画像を再利用するのだ")
		return cached.(string), nil
	}

	image, err := c.generateImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("パネル画像の生成に失敗したのだ: %w", err)
	}

	c.imgCache.Set(key, image, cache.DefaultExpiration)
	return image, nil
}

// EditImage は元画像に指示文を適用した新しい画像を生成します。
func (c *Client) EditImage(ctx context.Context, image, instruction string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return "", fmt.Errorf("元画像のデコードに失敗したのだ: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{Data: data, MIMEType: editImageMimeType}},
		{Text: instruction},
	}

	resp, err := c.ai.GenerateWithParts(ctx, c.imageModel, parts, gemini.ImageOptions{AspectRatio: panelAspectRatio})
	if err != nil {
		return "", fmt.Errorf("画像の編集に失敗したのだ: %w", err)
	}
	edited, err := imageFromResponse(resp)
	if err != nil {
		return "", fmt.Errorf("画像の編集に失敗したのだ: %w", err)
	}
	return edited, nil
}

// generateText は Gemini のテキスト生成を呼び出します。
func (c *Client) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.ai.GenerateContent(ctx, prompt, c.textModel)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// generateImage はレート制限を挟みつつ Gemini の画像生成を呼び出します。
func (c *Client) generateImage(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	parts := []*genai.Part{{Text: prompt}}
	resp, err := c.ai.GenerateWithParts(ctx, c.imageModel, parts, gemini.ImageOptions{AspectRatio: panelAspectRatio})
	if err != nil {
		return "", err
	}
	return imageFromResponse(resp)
}

// imageFromResponse は Gemini の応答から最初の画像データを base64 で取り出します。
func imageFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("応答に画像データが含まれていないのだ")
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}
	return "", fmt.Errorf("応答に画像データが含まれていないのだ")
}

func imageCacheKey(model, prompt string) string {
	h := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(h[:])
}

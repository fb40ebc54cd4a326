package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

// 入力検証のエラー。AI 呼び出しの前に弾かれ、段階もバナーも動かさないのだ。
var (
	ErrEmptyStory    = errors.New("物語のアイデアを入力してほしいのだ")
	ErrEmptyCast     = errors.New("キャラクターを1人以上登録してほしいのだ")
	ErrInvalidCast   = errors.New("名前・外見・性格が埋まっていないキャラクターがいるのだ")
	ErrEmptyFeedback = errors.New("フィードバックを入力してほしいのだ")
	ErrWrongStage    = errors.New("この段階では実行できない操作なのだ")
)

// Start は Welcome から物語入力へ進みます。
func (s *Session) Start() error {
	if s.stage != domain.StageWelcome {
		return ErrWrongStage
	}
	s.stage = domain.StageStoryInput
	return nil
}

// SubmitStory は物語のアイデアを受け取り、キャラクター作成へ進みます。
func (s *Session) SubmitStory(story string) error {
	if s.stage != domain.StageStoryInput {
		return ErrWrongStage
	}
	story = strings.TrimSpace(story)
	if story == "" {
		return ErrEmptyStory
	}
	s.project.StoryIdea = story
	s.stage = domain.StageCharacterCreation
	return nil
}

// BackToStoryInput はキャラクター作成から物語入力へ戻ります。
func (s *Session) BackToStoryInput() error {
	if s.stage != domain.StageCharacterCreation {
		return ErrWrongStage
	}
	s.stage = domain.StageStoryInput
	return nil
}

// SuggestCast は AI にキャラクター案を提案させ、ID を採番して返します。
// プロジェクトには何も反映せず、段階も動かしません。採否はユーザーが決めるのだ。
func (s *Session) SuggestCast(ctx context.Context) ([]domain.Character, error) {
	if s.stage != domain.StageCharacterCreation {
		return nil, ErrWrongStage
	}
	suggested, err := s.gateway.SuggestCharacters(ctx, s.project.StoryIdea)
	if err != nil {
		return nil, err
	}
	cast := make([]domain.Character, 0, len(suggested))
	for _, c := range suggested {
		cast = append(cast, domain.NewCharacter(c.Name, c.Appearance, c.Personality, c.Backstory))
	}
	return cast, nil
}

// CommitCast はキャラクター群を確定し、物語の肉付けを実行して承認段階へ進みます。
// 以降キャラクターは不変です。肉付けの失敗は復帰規則に従って巻き戻されます。
func (s *Session) CommitCast(ctx context.Context, cast domain.Cast) error {
	if s.stage != domain.StageCharacterCreation {
		return ErrWrongStage
	}
	if len(cast) == 0 {
		return ErrEmptyCast
	}
	for _, c := range cast {
		if !c.Valid() {
			return ErrInvalidCast
		}
	}

	s.project.Characters = append(domain.Cast(nil), cast...)
	s.stage = domain.StageStoryEnriching
	s.clearError()

	epoch := s.epoch
	slog.Info("物語の肉付けを開始します", "characters", len(cast))
	enriched, err := s.gateway.EnrichStory(ctx, s.project.StoryIdea, s.project.Characters)
	if !s.current(epoch) {
		return nil // セッションが世代交代していたら結果を破棄するのだ
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.project.EnrichedStory = enriched
	s.stage = domain.StageStoryApproval
	return nil
}

// ApproveStory は肉付け済みの物語を承認し、画風選択へ進みます。
func (s *Session) ApproveStory() error {
	if s.stage != domain.StageStoryApproval {
		return ErrWrongStage
	}
	s.stage = domain.StageStyleSelection
	s.clearError()
	return nil
}

// ReviseStory はフィードバックを反映した改稿で本文をその場で差し替えます。
// Regenerate が走っている間は黙って何もしません（二重投入の防止）。
func (s *Session) ReviseStory(ctx context.Context, feedback string) error {
	if s.stage != domain.StageStoryApproval {
		return ErrWrongStage
	}
	if s.storyAction != StoryActionNone {
		return nil
	}
	if strings.TrimSpace(feedback) == "" {
		return ErrEmptyFeedback
	}

	s.storyAction = StoryActionRevise
	defer func() { s.storyAction = StoryActionNone }()
	s.clearError()

	epoch := s.epoch
	revised, err := s.gateway.ReviseStory(ctx, s.project.EnrichedStory, feedback)
	if !s.current(epoch) {
		return nil
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.project.EnrichedStory = revised
	return nil
}

// RegenerateStory は元の入力から物語を作り直し、本文を丸ごと差し替えます。
// Revise が走っている間は黙って何もしません。
func (s *Session) RegenerateStory(ctx context.Context) error {
	if s.stage != domain.StageStoryApproval {
		return ErrWrongStage
	}
	if s.storyAction != StoryActionNone {
		return nil
	}

	s.storyAction = StoryActionRegenerate
	defer func() { s.storyAction = StoryActionNone }()
	s.clearError()

	epoch := s.epoch
	enriched, err := s.gateway.EnrichStory(ctx, s.project.StoryIdea, s.project.Characters)
	if !s.current(epoch) {
		return nil
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.project.EnrichedStory = enriched
	return nil
}

// SelectStyle は画風を確定して台本生成段階へ進みます。
// 後続の GenerateScript / GenerateCover は段階入場時の処理として駆動側が呼びます。
func (s *Session) SelectStyle(styleName string) error {
	if s.stage != domain.StageStyleSelection {
		return ErrWrongStage
	}
	style := domain.FindStyle(styleName)
	if style == nil {
		return fmt.Errorf("画風 \"%s\" はカタログに存在しないのだ", styleName)
	}
	s.project.Style = style
	s.stage = domain.StageGeneratingScript
	s.clearError()
	return nil
}

// GenerateScript は GeneratingScript 段階の入場処理です。
// 台本を生成してパネル画像のスロット列を確保し、表紙生成段階へ進みます。
func (s *Session) GenerateScript(ctx context.Context) error {
	if s.stage != domain.StageGeneratingScript {
		return ErrWrongStage
	}
	s.clearError()

	epoch := s.epoch
	slog.Info("台本の生成を開始します", "style", s.project.Style.Name)
	script, err := s.gateway.GenerateScript(ctx, s.project.EnrichedStory, s.project.Characters)
	if !s.current(epoch) {
		return nil
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.project.ComicScript = script
	s.project.AllocatePanels()
	s.stage = domain.StageGeneratingCover
	return nil
}

// GenerateCover は GeneratingCover 段階の入場処理です。
// タイトルと表紙画像を順に生成して Display 段階へ進みます。
func (s *Session) GenerateCover(ctx context.Context) error {
	if s.stage != domain.StageGeneratingCover {
		return ErrWrongStage
	}
	s.clearError()

	epoch := s.epoch
	slog.Info("タイトルと表紙の生成を開始します")
	title, image, err := s.gateway.GenerateCoverPage(ctx, s.project.StoryIdea, s.project.Characters, s.project.Style.Prompt)
	if !s.current(epoch) {
		return nil
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.project.ComicTitle = title
	s.project.CoverImage = &image
	s.stage = domain.StageDisplay
	return nil
}

// Package workflow は漫画制作ウィザードの状態機械を実装するのだ。
// Project の所有権はこのパッケージの Session が独占し、段階遷移・失敗からの
// 巻き戻し・スロット単位のパネル生成をすべてここで仕切ります。
package workflow

import (
	"github.com/shouni/go-comic-kit/pkg/domain"
)

// StoryAction は StoryApproval 段階で実行中の物語操作を表す三値フラグです。
// Revise と Regenerate は同時に走ってはいけないため、これで相互排他するのだ。
type StoryAction int

const (
	StoryActionNone StoryAction = iota
	StoryActionRevise
	StoryActionRegenerate
)

// Session は1人のユーザーが進める制作ワークフローの全状態を保持します。
// 同時に存在する Project は常に1つだけで、並行実行は想定しません
// （AI 呼び出しが唯一の待ち合わせ点となる、協調的な単一スレッドモデル）。
type Session struct {
	gateway Gateway

	stage       domain.Stage
	project     *domain.Project
	errMsg      string
	storyAction StoryAction

	// epoch は Reset / 取り込みのたびに進む世代番号。
	// 捨てられた Project に向けた生成結果を誤って反映しないための番兵なのだ。
	epoch int
}

// NewSession は Welcome 段階の空セッションを作ります。
func NewSession(gateway Gateway) *Session {
	return &Session{
		gateway: gateway,
		stage:   domain.StageWelcome,
		project: domain.NewProject(),
	}
}

// Stage は現在の段階を返します。
func (s *Session) Stage() domain.Stage { return s.stage }

// Project は現在のプロジェクトを返します。
func (s *Session) Project() *domain.Project { return s.project }

// ErrMessage は表示中のエラーバナー文言を返します。無ければ空文字です。
// バナーは次に操作が成功するまで残り、時間経過では消えません。
func (s *Session) ErrMessage() string { return s.errMsg }

// StoryAction は実行中の物語操作フラグを返します。
func (s *Session) StoryAction() StoryAction { return s.storyAction }

// Reset はセッションを Welcome 段階の空プロジェクトに戻します。
// 実行中だった生成処理は打ち切らず、世代番号を進めて結果だけを無効化するのだ。
func (s *Session) Reset() {
	s.epoch++
	s.stage = domain.StageWelcome
	s.project = domain.NewProject()
	s.errMsg = ""
	s.storyAction = StoryActionNone
}

// AdoptProject は取り込んだプロジェクトを採用し、途中の段階を全部飛ばして
// Display 段階へ直行します。未生成スロットの補充は呼び出し側が FillPanels で行うこと。
func (s *Session) AdoptProject(p *domain.Project) {
	s.epoch++
	s.project = p
	s.stage = domain.StageDisplay
	s.errMsg = ""
	s.storyAction = StoryActionNone
}

// current は生成開始時に控えた世代番号がまだ有効かを返します。
func (s *Session) current(epoch int) bool {
	return s.epoch == epoch
}

// fail は失敗をバナー文言として記録し、段階を直近の対話的な段階まで巻き戻します。
// StyleSelection 以降の失敗は StyleSelection へ、物語の肉付け以降の失敗は
// StoryApproval へ落とす。それより前の失敗は段階を動かさないのだ。
func (s *Session) fail(err error) {
	s.errMsg = err.Error()
	switch {
	case s.stage > domain.StageStyleSelection:
		s.stage = domain.StageStyleSelection
	case s.stage >= domain.StageStoryEnriching:
		s.stage = domain.StageStoryApproval
	}
}

// clearError は次の操作の開始時にバナーを消します。
func (s *Session) clearError() {
	s.errMsg = ""
}

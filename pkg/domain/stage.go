package domain

// Stage は制作ウィザードの進行段階を表します。
// 値の大小関係がそのまま工程の前後関係になるため、順序を変えてはいけないのだ。
type Stage int

const (
	StageWelcome Stage = iota
	StageStoryInput
	StageCharacterCreation
	StageStoryEnriching
	StageStoryApproval
	StageStyleSelection
	StageGeneratingScript
	StageGeneratingCover
	StageDisplay
)

var stageNames = map[Stage]string{
	StageWelcome:           "welcome",
	StageStoryInput:        "story_input",
	StageCharacterCreation: "character_creation",
	StageStoryEnriching:    "story_enriching",
	StageStoryApproval:     "story_approval",
	StageStyleSelection:    "style_selection",
	StageGeneratingScript:  "generating_script",
	StageGeneratingCover:   "generating_cover",
	StageDisplay:           "display",
}

// String はログ出力用の段階名を返すのだ。
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Interactive はユーザーの操作を待ち受ける段階かどうかを返します。
// 非同期生成中の段階（StoryEnriching / GeneratingScript / GeneratingCover）は false です。
func (s Stage) Interactive() bool {
	switch s {
	case StageStoryEnriching, StageGeneratingScript, StageGeneratingCover:
		return false
	default:
		return true
	}
}

package domain

// Project は1冊の漫画制作に関わる全データの集約ルートです。
// ユーザー入力と生成結果の両方を保持し、ワークフローの段階ごとに埋まっていきます。
// 画像は base64 文字列として保持し、未生成のスロットは nil で表すのだ。
type Project struct {
	StoryIdea     string
	Characters    Cast
	EnrichedStory string
	ComicScript   Script
	Style         *StyleOption

	// GeneratedPanels は台本確定時に TotalPanels 個の nil で確保され、
	// 以降は長さを変えずにスロット単位で埋まっていく。
	GeneratedPanels []*string
	ComicTitle      string
	CoverImage      *string
}

// NewProject は空のプロジェクトを返します。
func NewProject() *Project {
	return &Project{}
}

// AllocatePanels はパネル画像のスロット列を nil 埋めで確保します。
// 既存のスロットは破棄されるため、台本の確定時にのみ呼ぶこと。
func (p *Project) AllocatePanels() {
	p.GeneratedPanels = make([]*string, TotalPanels)
}

// PanelFilled は指定スロットが生成済みかどうかを返します。
func (p *Project) PanelFilled(i int) bool {
	return i >= 0 && i < len(p.GeneratedPanels) && p.GeneratedPanels[i] != nil
}

// SetPanel は指定スロットにだけ画像を書き込みます。
// 他のスロットには一切触れないので、割り込みで埋まった隣のスロットを壊さないのだ。
func (p *Project) SetPanel(i int, data string) {
	if i < 0 || i >= len(p.GeneratedPanels) {
		return
	}
	d := data
	p.GeneratedPanels[i] = &d
}

// Panel は指定スロットの画像を返します。未生成なら空文字と false を返すのだ。
func (p *Project) Panel(i int) (string, bool) {
	if !p.PanelFilled(i) {
		return "", false
	}
	return *p.GeneratedPanels[i], true
}

// PendingPanels は台本があるのにまだ画像が無いスロットの添字を昇順で返します。
// 生成ループはこの並び順のとおりに1枚ずつ埋めていく。
func (p *Project) PendingPanels() []int {
	var pending []int
	for i := range p.ComicScript {
		if !p.PanelFilled(i) {
			pending = append(pending, i)
		}
	}
	return pending
}

// StillGenerating は漫画がまだ生成途中かどうかを返します。
// 表紙が無い、スロット数が不足、あるいは nil スロットが残っていれば true です。
func (p *Project) StillGenerating() bool {
	if p.CoverImage == nil {
		return true
	}
	if len(p.GeneratedPanels) < TotalPanels {
		return true
	}
	for _, panel := range p.GeneratedPanels {
		if panel == nil {
			return true
		}
	}
	return false
}

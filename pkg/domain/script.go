package domain

// 漫画の構成に関する定数なのだ。表紙1枚 + 物語5ページ + 奥付1枚の構成だよ。
const (
	TotalPages      = 7
	PanelsPerPage   = 4
	TotalStoryPages = 5
	TotalPanels     = TotalStoryPages * PanelsPerPage
)

// DialogueLine はパネル内のセリフ1つを表します。
// Character は台本上の話者名であり、Cast の ID とは照合しません。
type DialogueLine struct {
	Character string `json:"character"`
	Speech    string `json:"speech"`
}

// PanelScript は漫画の1パネル分の台本（視覚描写・ナレーション・セリフ）を保持します。
// AI モデルから一括で生成され、以降は丸ごと差し替える以外に変更されません。
type PanelScript struct {
	Description string         `json:"description"`
	Narration   string         `json:"narration"`
	Dialogue    []DialogueLine `json:"dialogue"`
}

// Script はパネル台本の順序付き列です。
type Script []PanelScript

package domain

// StyleOption は画風カタログの1項目です。
// Prompt は画像生成プロンプトの先頭に合成される断片なのだ。
type StyleOption struct {
	Name    string
	Preview string // プレビュー画像の参照先 URL
	Prompt  string
}

// Styles は選択可能な画風の固定カタログです。
// プロジェクトファイルからの復元時は Name の完全一致で解決されます。
var Styles = []StyleOption{
	{
		Name:    "Indian Noir",
		Preview: "https://raw.githubusercontent.com/yd-singh/public-assets/main/indian-noir.png",
		Prompt:  "A dark, gritty, high-contrast comic book panel in an Indian Noir style, reminiscent of classic detective films but with a South Asian setting. Heavy shadows, dramatic lighting, and a sense of mystery.",
	},
	{
		Name:    "Anime Realism Aesthetic",
		Preview: "https://raw.githubusercontent.com/yd-singh/public-assets/main/anime-realism.png",
		Prompt:  "A comic book panel in a hyper-realistic anime aesthetic. Detailed characters with expressive eyes, cinematic lighting, and a beautifully rendered background. Clean lines with a touch of painterly texture.",
	},
	{
		Name:    "Western Comic Book",
		Preview: "https://raw.githubusercontent.com/yd-singh/public-assets/main/western-comic.png",
		Prompt:  "A classic Western comic book style panel. Bold lines, dynamic action poses, and a color palette with strong primary colors and Ben-Day dots effect. Think Silver Age comics.",
	},
	{
		Name:    "European Comic Art",
		Preview: "https://raw.githubusercontent.com/yd-singh/public-assets/main/european-comic.png",
		Prompt:  "A sophisticated European comic art style (Bande Dessinée). Clean, precise lines (ligne claire), realistic environments, and a mature, cinematic color palette. The art is elegant and detailed.",
	},
	{
		Name:    "Fantasy Illustration",
		Preview: "https://raw.githubusercontent.com/yd-singh/public-assets/main/fantasy-illustration.png",
		Prompt:  "A lush fantasy illustration style. Painterly rendering, vibrant colors, and intricate details in costumes and environments. Magical elements, glowing effects, and a sense of epic scale.",
	},
	{
		Name:    "90s Indian Comics",
		Preview: "https://raw.githubusercontent.com/yd-singh/public-assets/main/90s-indian-comic.png",
		Prompt:  "90s Indian comic book art style — vibrant flat colors, exaggerated action poses, bold outlines, slightly grainy print texture, dynamic Hindi onomatopoeia, inspired by Raj Comics heroes like Super Commando Dhruv and Nagraj.",
	},
}

// FindStyle は名前の完全一致で画風を解決します。見つからなければ nil を返すのだ。
func FindStyle(name string) *StyleOption {
	for i := range Styles {
		if Styles[i].Name == name {
			res := Styles[i]
			return &res
		}
	}
	return nil
}

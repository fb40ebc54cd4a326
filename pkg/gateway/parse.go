package gateway

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// extractJSON は AI 応答から JSON 本体を取り出します。
// コードフェンスを最優先し、無ければ最外殻の配列/オブジェクト、それも無ければ全文を試すのだ。
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}

	for _, pair := range [][2]string{{"[", "]"}, {"{", "}"}} {
		first := strings.Index(raw, pair[0])
		last := strings.LastIndex(raw, pair[1])
		if first != -1 && last != -1 && last > first {
			return raw[first : last+1]
		}
	}

	return raw
}

// characterSuggestion は AI が返すキャラクター案の外部表現です。
type characterSuggestion struct {
	Name        string `json:"name"`
	Appearance  string `json:"appearance"`
	Personality string `json:"personality"`
	Backstory   string `json:"backstory"`
}

// parseCharacterSuggestions は応答を検証しつつキャラクター案へ変換します。
// ID は採番しません（採否が決まった時点で採番されるため）。
func parseCharacterSuggestions(raw string) ([]domain.Character, error) {
	var suggestions []characterSuggestion
	if err := json.Unmarshal([]byte(extractJSON(raw)), &suggestions); err != nil {
		return nil, fmt.Errorf("AIが有効なキャラクターのリストを返さなかったのだ (応答抜粋: %q): %w", truncate(raw, 200), err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("AIが有効なキャラクターのリストを返さなかったのだ")
	}

	cast := make([]domain.Character, 0, len(suggestions))
	for i, sg := range suggestions {
		if strings.TrimSpace(sg.Name) == "" || strings.TrimSpace(sg.Appearance) == "" || strings.TrimSpace(sg.Personality) == "" {
			return nil, fmt.Errorf("キャラクター案 %d に必須項目が欠けているのだ", i+1)
		}
		cast = append(cast, domain.Character{
			Name:        sg.Name,
			Appearance:  sg.Appearance,
			Personality: sg.Personality,
			Backstory:   sg.Backstory,
		})
	}
	return cast, nil
}

// parseScript は応答を検証しつつパネル台本へ変換します。
// 空ならエラー、規定数より長ければ切り詰め。短い分はそのまま通すのだ。
func parseScript(raw string) (domain.Script, error) {
	var script domain.Script
	if err := json.Unmarshal([]byte(extractJSON(raw)), &script); err != nil {
		return nil, fmt.Errorf("生成された台本が有効な配列ではないのだ (応答抜粋: %q): %w", truncate(raw, 200), err)
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("生成された台本が有効な配列ではないのだ")
	}
	if len(script) > domain.TotalPanels {
		script = script[:domain.TotalPanels]
	}
	return script, nil
}

// cleanTitle はタイトル応答の前後空白と引用符を取り除きます。
func cleanTitle(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), `"`, "")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

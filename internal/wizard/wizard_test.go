package wizard

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/pkg/domain"
	"github.com/shouni/go-comic-kit/pkg/publisher"
	"github.com/shouni/go-comic-kit/pkg/store"
	"github.com/shouni/go-comic-kit/pkg/workflow"
)

// fakeGateway は決め打ちの応答を返す workflow.Gateway 実装なのだ。
type fakeGateway struct {
	panelCalls int
}

func (f *fakeGateway) EnrichStory(_ context.Context, idea string, _ domain.Cast) (string, error) {
	return "肉付けされた物語: " + idea, nil
}

func (f *fakeGateway) ReviseStory(_ context.Context, current, feedback string) (string, error) {
	return current + " / 改稿: " + feedback, nil
}

func (f *fakeGateway) SuggestCharacters(_ context.Context, _ string) ([]domain.Character, error) {
	return []domain.Character{
		{Name: "ニャン太", Appearance: "白い宇宙服の猫", Personality: "豪胆", Backstory: "元飛行士"},
	}, nil
}

func (f *fakeGateway) GenerateScript(_ context.Context, _ string, _ domain.Cast) (domain.Script, error) {
	script := make(domain.Script, domain.TotalPanels)
	for i := range script {
		script[i] = domain.PanelScript{Description: fmt.Sprintf("scene %d", i+1)}
	}
	return script, nil
}

func (f *fakeGateway) GenerateCoverPage(_ context.Context, _ string, _ domain.Cast, _ string) (string, string, error) {
	return "宇宙猫の冒険", base64.StdEncoding.EncodeToString([]byte("cover")), nil
}

func (f *fakeGateway) GeneratePanelImage(_ context.Context, _ string, _ string) (string, error) {
	f.panelCalls++
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("panel-%d", f.panelCalls))), nil
}

func (f *fakeGateway) EditImage(_ context.Context, image, instruction string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(instruction)), nil
}

// memoryIO は remoteio の InputReader / OutputWriter を満たすインメモリ実装なのだ。
type memoryIO struct {
	files map[string][]byte
}

func newMemoryIO() *memoryIO {
	return &memoryIO{files: make(map[string][]byte)}
}

func (m *memoryIO) Open(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryIO) Write(_ context.Context, path string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.files[path] = data
	return nil
}

// runWizard は入力行を流し込んでウィザードを一周させるヘルパーなのだ。
func runWizard(t *testing.T, gw workflow.Gateway, lines []string) (*workflow.Session, *memoryIO, string) {
	t.Helper()

	mem := newMemoryIO()
	session := workflow.NewSession(gw)
	opts := config.Options{ProjectFile: "proj.json", OutputDir: "out"}

	var out bytes.Buffer
	w := New(
		session,
		store.NewProjectStore(mem, mem),
		publisher.NewComicPublisher(mem, nil),
		opts,
		strings.NewReader(strings.Join(lines, "\n")+"\n"),
		&out,
	)

	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("ウィザードがエラーで終了した: %v", err)
	}
	return session, mem, out.String()
}

func TestWizard_HappyPath(t *testing.T) {
	gw := &fakeGateway{}
	lines := []string{
		"",             // Welcome: Enter で開始
		"宇宙猫の冒険", // 物語のアイデア
		"",             // 空行で確定
		"a",            // キャラクター追加
		"ニャン太",
		"白い宇宙服の猫",
		"豪胆",
		"", // 背景は空でよい
		"d", // 決定 → 物語生成
		"a", // 物語を承認
		"1", // 画風: 先頭を選択
		"s", // プロジェクト保存
		"",  // 保存先はデフォルト
		"q", // 終了
	}

	session, mem, output := runWizard(t, gw, lines)

	if session.Stage() != domain.StageDisplay {
		t.Errorf("最終ステージが想定外: %s", session.Stage())
	}
	p := session.Project()
	if p.StillGenerating() {
		t.Error("全パネル生成後も StillGenerating が真のまま")
	}
	if gw.panelCalls != domain.TotalPanels {
		t.Errorf("パネル生成回数が想定外: %d", gw.panelCalls)
	}
	if p.ComicTitle != "宇宙猫の冒険" {
		t.Errorf("タイトルが想定外: %q", p.ComicTitle)
	}

	raw, ok := mem.files["proj.json"]
	if !ok {
		t.Fatalf("プロジェクトファイルが保存されていない: %v", output)
	}
	var file map[string]any
	if err := json.Unmarshal(raw, &file); err != nil {
		t.Fatalf("保存されたJSONが壊れている: %v", err)
	}
	if v, _ := file["version"].(float64); int(v) != store.FormatVersion {
		t.Errorf("保存フォーマットのバージョンが想定外: %v", file["version"])
	}
}

func TestWizard_PublishFromDisplay(t *testing.T) {
	gw := &fakeGateway{}
	lines := []string{
		"",
		"宇宙猫の冒険",
		"",
		"a",
		"ニャン太",
		"白い宇宙服の猫",
		"豪胆",
		"",
		"d",
		"a",
		"1",
		"p", // 書き出し
		"q",
	}

	_, mem, output := runWizard(t, gw, lines)

	md, ok := mem.files["out/comic.md"]
	if !ok {
		t.Fatalf("Markdown が書き出されていない: %v", output)
	}
	if !strings.Contains(string(md), "# 宇宙猫の冒険") {
		t.Error("Markdown にタイトルが含まれていない")
	}
	if _, ok := mem.files["out/cover.png"]; !ok {
		t.Error("表紙画像が書き出されていない")
	}
	if _, ok := mem.files[fmt.Sprintf("out/images/panel_%d.png", domain.TotalPanels)]; !ok {
		t.Error("最終パネル画像が書き出されていない")
	}
}

func TestWizard_PanelEditFlow(t *testing.T) {
	gw := &fakeGateway{}
	lines := []string{
		"",
		"宇宙猫の冒険",
		"",
		"a",
		"ニャン太",
		"白い宇宙服の猫",
		"豪胆",
		"",
		"d",
		"a",
		"1",
		"e",                // パネル編集
		"3",                // 3枚目
		"空を赤くしてほしい", // 編集指示
		"k",                // 下書きを保存
		"q",
	}

	session, _, _ := runWizard(t, gw, lines)

	image, ok := session.Project().Panel(2)
	if !ok {
		t.Fatal("編集対象のパネルが空になっている")
	}
	want := base64.StdEncoding.EncodeToString([]byte("空を赤くしてほしい"))
	if image != want {
		t.Errorf("編集結果が保存されていない: %q", image)
	}
}

func TestWizard_RejectsEmptyStoryThenAccepts(t *testing.T) {
	gw := &fakeGateway{}
	lines := []string{
		"",             // Welcome
		"",             // 空のアイデア（即確定 → 拒否される）
		"宇宙猫の冒険", // 再入力
		"",
		"q", // キャラクター画面で終了
	}

	session, _, output := runWizard(t, gw, lines)

	if session.Stage() != domain.StageCharacterCreation {
		t.Errorf("再入力後のステージが想定外: %s", session.Stage())
	}
	if !strings.Contains(output, "アイデアが空っぽなのだ") {
		t.Error("空入力の案内が表示されていない")
	}
	if session.Project().StoryIdea != "宇宙猫の冒険" {
		t.Errorf("物語のアイデアが想定外: %q", session.Project().StoryIdea)
	}
}

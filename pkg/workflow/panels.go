package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comic-kit/pkg/domain"
)

// 生成中にログへ流す進捗メッセージ。パネルごとに順繰りで使うのだ。
var generationMessages = []string{
	"Sketching characters...",
	"Inking the lines...",
	"Coloring the world...",
	"Adding dialogue bubbles...",
	"Shading the scenes...",
	"Finalizing the cover art...",
	"Binding the pages...",
	"Almost there...",
}

// FillPanels は Display 段階の入場処理で、未生成のスロットを昇順に1枚ずつ埋めます。
//
// 生成は厳密に逐次で、スロット N は N-1 が成功するまで要求されません。
// 途中で失敗したらループ全体を即座に打ち切り、後続のスロットは nil のまま残して
// 何枚目で失敗したか（1始まり）を報せる。成功済みのスロットは二度と再生成しないため、
// 再入すれば残りだけを埋め直せるのだ。
func (s *Session) FillPanels(ctx context.Context) error {
	if s.stage != domain.StageDisplay {
		return nil
	}
	if len(s.project.ComicScript) == 0 || s.project.Style == nil {
		return nil
	}

	pending := s.project.PendingPanels()
	if len(pending) == 0 {
		return nil
	}

	s.clearError()
	epoch := s.epoch
	slog.Info("パネル画像の生成を開始します", "pending", len(pending), "total", len(s.project.GeneratedPanels))

	for n, i := range pending {
		if !s.project.PanelFilled(i) {
			slog.Info(generationMessages[n%len(generationMessages)], "panel", i+1)

			image, err := s.gateway.GeneratePanelImage(ctx, s.project.ComicScript[i].Description, s.project.Style.Prompt)
			if !s.current(epoch) {
				return nil // リセット後に届いた結果は捨てるのだ
			}
			if err != nil {
				wrapped := fmt.Errorf("パネル %d の画像生成に失敗しました。手動で編集するか、新しい漫画を作ってみてほしいのだ", i+1)
				s.fail(wrapped)
				return fmt.Errorf("%s: %w", wrapped.Error(), err)
			}

			// 書き込みは対象スロットのみ。割り込みで埋まった隣のスロットを壊さない。
			s.project.SetPanel(i, image)
		}
	}

	slog.Info("全パネルの画像が揃ったのだ！", "count", len(s.project.GeneratedPanels))
	return nil
}

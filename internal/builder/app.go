package builder

import (
	"github.com/shouni/go-comic-kit/internal/config"
	"github.com/shouni/go-comic-kit/pkg/gateway"
	"github.com/shouni/go-comic-kit/pkg/publisher"
	"github.com/shouni/go-comic-kit/pkg/store"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各コマンドに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config            // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、プロジェクトIDなど）。
	Options    config.Options            // Optionsは、コマンドラインから渡された実行時の設定です（URL、モデル名など）。
	Reader     remoteio.InputReader      // Readerは、プロジェクトファイルやWeb素材の読み込みに使用する入力元です。
	Writer     remoteio.OutputWriter     // Writerは、生成された内容を保存するための出力先です。
	Gateway    *gateway.Client           // Gatewayは、Gemini との通信を束ねる境界クライアントです。
	Store      *store.ProjectStore       // Storeは、プロジェクトのエクスポートとインポートを担います。
	Publisher  *publisher.ComicPublisher // Publisherは、完成した漫画の書き出しを担います。
	aiClient   gemini.GenerativeModel    // aiClient はGeminiの通信に使う共通クライアント
	httpClient httpkit.HTTPClient   // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.HTTPClient,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
	gw *gateway.Client,
	projectStore *store.ProjectStore,
	comicPublisher *publisher.ComicPublisher,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		aiClient:   aiClient,
		httpClient: httpClient,
		Reader:     reader,
		Writer:     writer,
		Gateway:    gw,
		Store:      projectStore,
		Publisher:  comicPublisher,
	}
}

// HTTPClient は外部通信用の共有クライアントを返します。
func (a *AppContext) HTTPClient() httpkit.HTTPClient {
	return a.httpClient
}

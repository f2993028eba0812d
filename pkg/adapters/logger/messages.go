package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline":                         "パイプラインを開始します",
		"Pipeline completed successfully":           "パイプラインが正常に完了しました",
		"Scroll script ready: %d frames over %d px": "スクロールスクリプト準備完了: %d フレーム / %d px",
		"Walking %d sections":                       "%d セクションを巡回中",
		"Walk completed: %d section changes":        "巡回完了: セクション切り替え %d 回",
		"Rendering timeline chart":                  "タイムラインチャートを描画中",
		"Interrupted, shutting down...":             "中断されました。シャットダウン中...",

		// Story and engine (debug/info from components)
		"Story mounted with %d of %d sections":               "%d / %d セクションでストーリーをマウントしました",
		"Section not found: %s":                              "セクションが見つかりません: %s",
		"Ignoring section registration without id or handler": "IDまたはハンドラーのないセクション登録を無視します",
		"Screenshot failed at frame %d: %v":                  "フレーム %d のスクリーンショットに失敗しました: %v",

		// Warnings
		"%d of %d sections were not found on the page": "%d / %d セクションがページに見つかりませんでした",

		// Errors
		"Failed to build scroll script: %s": "スクロールスクリプトの生成に失敗しました: %s",
		"Failed to walk page: %s":           "ページの巡回に失敗しました: %s",
		"Failed to render chart: %s":        "チャートの描画に失敗しました: %s",
		"Failed to write output: %s":        "出力の書き込みに失敗しました: %s",
		"Failed to launch browser: %s":      "ブラウザの起動に失敗しました: %s",
		"Failed to navigate: %s":            "ページ移動に失敗しました: %s",
	})
}

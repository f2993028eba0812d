// Package main provides localization for the scrollytell CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Page":    "ページ",
		"Preset":  "プリセット",
		"Walk":    "巡回",
		"Output":  "出力先",
		"Browser": "ブラウザ設定",
		"Debug":   "デバッグ",
		"Logging": "ログ",

		// Commands
		"Walk scrollytelling pages and chart their scroll-driven animation state": "スクロールテリングページを巡回し、スクロール連動アニメーションの状態をチャート化",
		"Walk the simulated page described by a page file":                        "ページファイルで記述したシミュレーションページを巡回",
		"Walk a live page in headless Chrome":                                     "ヘッドレスChromeで実ページを巡回",
		"Scroll the simulated page interactively in the terminal":                 "ターミナルでシミュレーションページを対話的にスクロール",
		"Show version information":                                                "バージョン情報を表示",
		"scrollytell version %s":                                                  "scrollytell バージョン %s",

		// Page and preset flags
		"Page file (YAML) describing sections and walk settings": "セクションと巡回設定を記述したページファイル（YAML）",
		"Device preset (desktop, mobile)":                        "デバイスプリセット（desktop, mobile）",
		"Viewport width (min: 320)":                              "ビューポート幅（最小: 320）",
		"Viewport height (min: 480)":                             "ビューポート高さ（最小: 480）",

		// Walk flags
		"Scroll speed in pixels per frame":                    "1フレームあたりのスクロール量（ピクセル）",
		"Frames per second":                                   "フレームレート",
		"Duration of section jumps (0 = instant)":             "セクションジャンプの所要時間（0 = 即時）",
		"Frames held at the top and bottom of the page":       "ページ上端と下端で停止するフレーム数",
		"Frames held after each section jump":                 "セクションジャンプ後に停止するフレーム数",
		"Scroll back to the top after reaching the bottom":    "最下部に到達後、先頭まで戻る",
		"Jump to a section after N scroll frames (section@N)": "Nスクロールフレーム後にセクションへジャンプ（section@N）",
		"Capture the viewport at every section change":        "セクション切り替えごとにビューポートを撮影",

		// Output flags
		"Timeline JSON output path":                          "タイムラインJSONの出力パス",
		"Timeline chart PNG output path":                     "タイムラインチャートPNGの出力パス",
		"Skip the timeline chart":                            "タイムラインチャートを出力しない",
		"Output execution summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",

		// Debug and logging flags
		"Enable debug output":                  "デバッグ出力を有効化",
		"Directory for debug output":           "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Browser flags
		"Run browser in non-headless mode":            "ブラウザを非ヘッドレスモードで実行",
		"Path to Chrome executable":                   "Chrome実行ファイルのパス",
		"Ignore HTTPS certificate errors":             "HTTPS証明書エラーを無視",
		"HTTP proxy server (e.g., http://proxy:8080)": "HTTPプロキシサーバー（例: http://proxy:8080）",
		"Disable incognito mode":                      "シークレットモードを無効化",

		// Runtime messages
		"Simulating %s (%s preset)...": "%s をシミュレーション中 (%s プリセット)...",
		"Driving %s (%s preset)...":    "%s を巡回中 (%s プリセット)...",
		"Timeline saved to %s":         "タイムラインを %s に保存しました",
		"Chart saved to %s":            "チャートを %s に保存しました",
		"Summary saved to %s":          "サマリーを %s に保存しました",
		"Failed to write summary: %s":  "サマリーの書き込みに失敗しました: %s",

		// Error messages
		"URL argument is required":            "URL引数が必要です",
		"invalid jump %q, want section@frame": "ジャンプ指定 %q が不正です（section@frame の形式）",

		// Summary content
		"Scroll Walk Summary":          "スクロール巡回サマリー",
		"Sections":                     "セクション",
		"Settings":                     "設定",
		"Outputs":                      "出力ファイル",
		"Item":                         "項目",
		"Value":                        "値",
		"File":                         "ファイル",
		"Size":                         "サイズ",
		"Page Title":                   "ページタイトル",
		"URL":                          "URL",
		"(untitled)":                   "（タイトルなし）",
		"Viewport":                     "ビューポート",
		"Page Height":                  "ページの高さ",
		"No sections were registered.": "セクションが登録されていません。",
		"Section":                      "セクション",
		"Kind":                         "種類",
		"First Current":                "初回カレント",
		"Frames Current":               "カレントフレーム数",
		"Max Progress":                 "最大進捗",
		"Never":                        "なし",
		"Frames":                       "フレーム数",
		"Duration":                     "所要時間",
		"Section Changes":              "セクション切り替え",
		"Scroll Events":                "スクロールイベント",
		"Update Passes":                "更新パス",
		"Events per Update":            "更新あたりイベント数",
		"Screenshots":                  "スクリーンショット",
		"Mode":                         "モード",
		"Speed":                        "速度",
		"FPS":                          "FPS",
		"Reverse":                      "逆方向",
		"Yes":                          "はい",
		"Jumps":                        "ジャンプ",
		"Smooth Scroll":                "スムーズスクロール",
		"Generated at":                 "生成日時",
		"run":                          "実行",
	})
}

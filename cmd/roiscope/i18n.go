// Package main provides localization for the roiscope CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Chinese translations for CLI messages.
	l10n.Register("zh", l10n.LexiconMap{
		// Root command
		"Inspect colour channels inside a region of a video.": "檢視影片中選取區域的色彩通道。",

		// Commands
		"Analyze one frame of a video and save the views.":                        "分析影片的單一幀並儲存各個畫面。",
		"Write a copy of a video with the region replaced by its average colour.": "輸出影片副本，選取區域以其平均色取代。",
		"Play a video, refreshing the views on every frame.":                      "播放影片，每一幀都更新畫面。",
		"Show the stream properties of a video.":                                  "顯示影片的串流資訊。",
		"Show version information.":                                               "顯示版本資訊。",
		"roiscope version %s":                                                     "roiscope 版本 %s",

		// Arguments
		"Video file to inspect.": "要檢視的影片檔案。",
		"Video file to export.":  "要匯出的影片檔案。",
		"Video file to play.":    "要播放的影片檔案。",
		"Video file to probe.":   "要查詢的影片檔案。",

		// Common flags
		"YAML configuration file.":                                              "YAML 設定檔。",
		"Video backend (auto, opencv, ffmpeg).":                                 "影片後端（auto, opencv, ffmpeg）。",
		"Path to the ffmpeg binary (falls back to FFMPEG_PATH env, then PATH).": "ffmpeg 執行檔路徑（預設依序使用 FFMPEG_PATH 環境變數與 PATH）。",
		"Log level (debug, info, warn, error).":                                 "日誌等級（debug, info, warn, error）。",
		"Suppress all log output.":                                              "不輸出任何日誌。",

		// Analysis and view flags
		"Selected region as x1,y1,x2,y2.":                                   "選取區域，格式為 x1,y1,x2,y2。",
		"Display mode (all, blue, green, red).":                             "顯示模式（all, blue, green, red）。",
		"Histogram bin count (1-256).":                                      "直方圖區間數（1-256）。",
		"Frame index to analyze.":                                           "要分析的幀編號。",
		"Directory the views are written to.":                               "畫面輸出目錄。",
		"Scale views down to at most this width (0 keeps the native size).": "畫面寬度上限（0 表示維持原尺寸）。",

		// Output flags
		"Output video file path (required).":                          "輸出影片路徑（必填）。",
		"FourCC of the output codec (XVID, MP4V, MJPG, H264).":        "輸出編碼的 FourCC（XVID, MP4V, MJPG, H264）。",
		"FourCC of the recording codec.":                              "錄製編碼的 FourCC。",
		"Write an inspection summary to this file (Markdown format).": "將檢視摘要寫入此檔案（Markdown 格式）。",
		"Write an export summary to this file (Markdown format).":     "將匯出摘要寫入此檔案（Markdown 格式）。",
		"Save the result frames to this video file while playing.":    "播放時將結果幀儲存為影片。",
		"Keep playing from the start after the last frame.":           "播放到最後一幀後從頭繼續。",

		// Runtime messages
		"Using %s video backend": "使用 %s 影片後端",
		"Views saved to %s":      "畫面已儲存至 %s",
		"Exporting":              "匯出中",

		// Summary content
		"Inspection Summary": "檢視摘要",
		"Generated":          "產生時間",
		"Video":              "影片",
		"File":               "檔案",
		"Backend":            "後端",
		"Codec":              "編碼",
		"Size":               "尺寸",
		"Frame Rate":         "幀率",
		"Frames":             "幀數",
		"Unknown":            "未知",
		"Analysis":           "分析",
		"Frame":              "幀",
		"Mode":               "模式",
		"Bins":               "區間數",
		"Region":             "區域",
		"None":               "無",
		"Pixels":             "像素",
		"Channel":            "通道",
		"Non-zero pixels":    "非零像素",
		"Mean":               "平均值",
		"Histogram":          "直方圖",
		"Range":              "範圍",
		"Views":              "畫面",
		"Export":             "匯出",
		"Output":             "輸出",
		"Frames Written":     "已寫入幀數",
		"Status":             "狀態",
	})
}

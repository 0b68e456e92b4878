package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		// Session
		"Opened %s (%dx%d, %.2f fps, %d frames)": "已開啟 %s (%dx%d, %.2f fps, %d 幀)",
		"Cannot open %s: %v":                     "無法開啟 %s: %v",
		"Release previous video: %v":             "釋放先前的影片失敗: %v",
		"End of video at frame %d, rewinding":    "影片於第 %d 幀結束，回到開頭",
		"Rewind failed: %v":                      "回到開頭失敗: %v",
		"Selected %s":                            "已選取 %s",
		"Selection %s ignored: %v":               "忽略選取區域 %s: %v",
		"Display failed: %v":                     "顯示失敗: %v",
		"Recording to %s":                        "錄製至 %s",
		"Recording saved to %s (%d frames)":      "錄製已儲存至 %s (%d 幀)",
		"Recording write failed: %v":             "錄製寫入失敗: %v",

		// Analyze stage
		"Analyzed region %v: B=%d G=%d R=%d": "已分析區域 %v: B=%d G=%d R=%d",
		"Histogram plot failed: %v":          "直方圖繪製失敗: %v",

		// Export stage
		"Exporting %d frames (%dx%d @ %.2f fps, %s) to %s": "匯出 %d 幀 (%dx%d @ %.2f fps, %s) 至 %s",
		"Frame %d could not be read, stopping export":      "無法讀取第 %d 幀，停止匯出",
		"Export completed: %d frames":                      "匯出完成: %d 幀",
		"Release %s: %v":                                   "釋放 %s 失敗: %v",

		// Orchestration
		"Inspecting frame %d":                     "檢視第 %d 幀",
		"Selection %s does not overlap the frame": "選取區域 %s 與畫面沒有重疊",
		"Exporting %s to %s":                      "正在將 %s 匯出至 %s",
		"Export cancelled after %d frames":        "匯出已於 %d 幀後取消",
		"Export stopped at unreadable frame %d":   "匯出於無法讀取的第 %d 幀停止",
		"Output saved to %s (%d frames)":          "輸出已儲存至 %s (%d 幀)",
		"Report saved to %s":                      "報告已儲存至 %s",

		// Errors
		"Failed to read frame %d: %s": "讀取第 %d 幀失敗: %s",
		"Failed to export video: %s":  "匯出影片失敗: %s",
		"Failed to write report: %s":  "寫入報告失敗: %s",
	})
}

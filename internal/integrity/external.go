package integrity

// AnalyzeExternalPastes 按客户端上报的 isExternal 统计 PASTE，来源不明按内部处理
func AnalyzeExternalPastes(events []Event) ExternalPasteAnalysis {
	var out ExternalPasteAnalysis
	for _, e := range events {
		if e.Kind != Paste {
			continue
		}
		if boolField(e.Metadata, MetaIsExternal) {
			out.ExternalPastes++
		} else {
			out.InternalPastes++
		}
	}
	return out
}

package service

import (
	"bytes"
	"encoding/json"
	"exam_integrity_backend/internal/integrity"
	"exam_integrity_backend/internal/model"
	"strconv"
)

// conversionStats 记录转换过程中降级处理的行数
type conversionStats struct {
	MalformedMetadata int
	UnknownKinds      int
}

// toIntegrityEvents 保持行顺序；元数据无法解析时按空元数据处理
func toIntegrityEvents(rows []model.ProctorEvent) ([]integrity.Event, conversionStats) {
	var stats conversionStats
	events := make([]integrity.Event, 0, len(rows))

	for _, row := range rows {
		kind := integrity.EventKind(row.Kind)
		if !kind.Valid() {
			stats.UnknownKinds++
		}

		meta, ok := decodeMetadata(row.Metadata)
		if !ok {
			stats.MalformedMetadata++
		}

		events = append(events, integrity.Event{
			Kind:      kind,
			Timestamp: row.OccurredAt,
			Metadata:  meta,
		})
	}
	return events, stats
}

func decodeMetadata(raw json.RawMessage) (map[string]any, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var meta map[string]any
	if err := dec.Decode(&meta); err != nil {
		return nil, false
	}
	return meta, true
}

func toAnswerTimestamps(rows []model.AnswerSegment) []integrity.AnswerTimestamp {
	answers := make([]integrity.AnswerTimestamp, 0, len(rows))
	for _, row := range rows {
		if row.SavedAt == nil {
			continue
		}
		answers = append(answers, integrity.AnswerTimestamp{
			QuestionID: strconv.FormatUint(uint64(row.QuestionID), 10),
			SavedAt:    *row.SavedAt,
		})
	}
	return answers
}

package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/AkatukiSora/volley-stats/internal/match"
)

const documentVersion = 1

// document is the on-disk form of a match record.
// Pointer fields distinguish a missing section from an empty one.
type document struct {
	Version     int                 `json:"version"`
	MatchInfo   *match.MatchInfo    `json:"matchInfo"`
	StatRecords *[]match.StatRecord `json:"statRecords"`
}

func encodeRecord(rec match.MatchRecord) ([]byte, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("encode match: %w", err)
	}
	records := rec.Records
	if records == nil {
		records = []match.StatRecord{}
	}
	info := rec.Info
	doc := document{Version: documentVersion, MatchInfo: &info, StatRecords: &records}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode match: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeRecord decodes a document into a new record. Every failure wraps ErrCorruptData.
func decodeRecord(b []byte) (match.MatchRecord, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return match.MatchRecord{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if doc.Version > documentVersion {
		return match.MatchRecord{}, fmt.Errorf("%w: unsupported version %d", ErrCorruptData, doc.Version)
	}
	if doc.MatchInfo == nil {
		return match.MatchRecord{}, fmt.Errorf("%w: missing matchInfo", ErrCorruptData)
	}
	if doc.StatRecords == nil {
		return match.MatchRecord{}, fmt.Errorf("%w: missing statRecords", ErrCorruptData)
	}
	for i, r := range *doc.StatRecords {
		for _, c := range match.Counters {
			if r.Counter(c.ID) < 0 {
				return match.MatchRecord{}, fmt.Errorf("%w: record %d has negative %s", ErrCorruptData, i, c.ID)
			}
		}
	}
	return match.MatchRecord{Info: *doc.MatchInfo, Records: *doc.StatRecords}, nil
}

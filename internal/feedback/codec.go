package feedback

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// isoMillis is the timestamp layout of the legacy data files.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// NumericID reports whether the record's id was a JSON number when decoded.
func (r Record) NumericID() bool {
	return r.numericID && r.ID.numeric()
}

// MarshalJSON writes the record in the data file layout. Ids and
// timestamps keep the form they were decoded from; a zero timestamp is
// left out.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	var id any = string(r.ID)
	if r.NumericID() {
		id = json.Number(r.ID)
	}
	out := struct {
		ID any `json:"id"`
		plain
		Timestamp string  `json:"timestamp,omitempty"`
		UpdatedAt *string `json:"updatedAt,omitempty"`
	}{ID: id, plain: plain(r)}

	if !r.Timestamp.IsZero() {
		out.Timestamp = formatStamp(r.Timestamp, r.timestampText)
	}
	if r.UpdatedAt != nil {
		s := formatStamp(*r.UpdatedAt, r.updatedText)
		out.UpdatedAt = &s
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a record from either schema. A sentimentData value
// that is not an object is ignored and the record is read as legacy.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
		SentimentData json.RawMessage `json:"sentimentData"`
		Timestamp     json.RawMessage `json:"timestamp"`
		UpdatedAt     json.RawMessage `json:"updatedAt"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.ID, r.numericID = "", false
	if len(aux.ID) > 0 {
		if err := r.ID.UnmarshalJSON(aux.ID); err != nil {
			return err
		}
		r.numericID = aux.ID[0] != '"'
	}

	r.SentimentData = nil
	if isObject(aux.SentimentData) {
		var sd scoring.ScoreResult
		if err := json.Unmarshal(aux.SentimentData, &sd); err != nil {
			return err
		}
		r.SentimentData = &sd
	}

	ts, text, err := parseStamp(aux.Timestamp)
	if err != nil {
		return err
	}
	r.Timestamp, r.timestampText = ts, text

	r.UpdatedAt, r.updatedText = nil, ""
	if up, text, err := parseStamp(aux.UpdatedAt); err != nil {
		return err
	} else if !up.IsZero() {
		r.UpdatedAt, r.updatedText = &up, text
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// parseStamp decodes an RFC 3339 string. Absent, null and empty values give
// the zero time.
func parseStamp(raw json.RawMessage) (time.Time, string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return time.Time{}, "", err
	}
	if text == "" {
		return time.Time{}, "", nil
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, "", err
	}
	return t, text, nil
}

// formatStamp returns the decoded text while it still names t, and the
// millisecond UTC layout otherwise.
func formatStamp(t time.Time, text string) string {
	if text != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, text); err == nil && parsed.Equal(t) {
			return text
		}
	}
	return t.UTC().Format(isoMillis)
}

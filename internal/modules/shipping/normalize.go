package shipping

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// The carrier has shipped two history representations over time: the
// current compact string log ("<timestamp>: <message> (<STATUS>)") and
// the older structured records. Neither is versioned, so both are
// accepted indefinitely and normalized here at the ingestion boundary.

// HistoryEntry is the canonical history line shown in the expandable
// shipment log. Timestamp is empty when the source carried none.
type HistoryEntry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Message   string `json:"message"`
}

type structuredEntry struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Note      string `json:"note"`
}

var statusSuffixRe = regexp.MustCompile(`\s*\([A-Z_]+\)\s*$`)

// displayTimeLayout matches the vi-VN locale rendering the dashboards
// have always shown.
const displayTimeLayout = "15:04:05 02/01/2006"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeHistory converts a raw history array, in either carrier
// representation, into display entries. Order is preserved as received;
// the carrier emits chronologically.
func NormalizeHistory(raw []byte) []HistoryEntry {
	if len(raw) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	out := make([]HistoryEntry, 0, len(elems))
	for _, el := range elems {
		var line string
		if err := json.Unmarshal(el, &line); err == nil {
			out = append(out, parseHistoryLine(line))
			continue
		}

		var se structuredEntry
		if err := json.Unmarshal(el, &se); err == nil {
			out = append(out, normalizeStructured(el, se))
			continue
		}

		out = append(out, HistoryEntry{Message: string(el)})
	}
	return out
}

// parseHistoryLine splits "<prefix>: <rest>" at the first ": ". The
// prefix is displayed as a formatted timestamp when it parses as one,
// raw otherwise. A trailing parenthesized status code is stripped from
// the message either way.
func parseHistoryLine(line string) HistoryEntry {
	i := strings.Index(line, ": ")
	if i < 0 {
		return HistoryEntry{Message: stripStatusSuffix(line)}
	}

	prefix := line[:i]
	msg := stripStatusSuffix(line[i+2:])

	if formatted, ok := formatTimestamp(prefix); ok {
		return HistoryEntry{Timestamp: formatted, Message: msg}
	}
	return HistoryEntry{Timestamp: prefix, Message: msg}
}

func normalizeStructured(raw json.RawMessage, se structuredEntry) HistoryEntry {
	msg := se.Message
	if msg == "" {
		msg = se.Note
	}
	if msg == "" {
		msg = se.Status
	}
	if msg == "" {
		msg = string(raw)
	}

	e := HistoryEntry{Message: msg}
	if se.Timestamp != "" {
		if formatted, ok := formatTimestamp(se.Timestamp); ok {
			e.Timestamp = formatted
		} else {
			e.Timestamp = se.Timestamp
		}
	}
	return e
}

func stripStatusSuffix(s string) string {
	return statusSuffixRe.ReplaceAllString(s, "")
}

func formatTimestamp(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayTimeLayout), true
		}
	}
	return "", false
}

// OrderRef tolerates the three shapes the order back-reference arrives
// in: a raw id string, a DBRef-style {"$id": ...}, or a populated order
// object. All collapse to the plain id.
type OrderRef struct {
	ID string
}

func (r *OrderRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.ID = s
		return nil
	}

	var obj struct {
		DollarID string `json:"$id"`
		ID       string `json:"id"`
		UID      string `json:"_id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		// unknown shape is not fatal; the shipment just has no usable ref
		r.ID = ""
		return nil
	}

	switch {
	case obj.DollarID != "":
		r.ID = obj.DollarID
	case obj.ID != "":
		r.ID = obj.ID
	default:
		r.ID = obj.UID
	}
	return nil
}

func (r OrderRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

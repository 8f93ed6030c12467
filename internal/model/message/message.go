package message

import (
	"sort"
	"time"
)

// TimestampLayout is the key format of a stored message. The fractional part
// is dropped when the microsecond component is zero.
const (
	TimestampLayout       = "2006-01-02 15:04:05.000000"
	timestampLayoutNoFrac = "2006-01-02 15:04:05"
)

// Message is one board submission.
type Message struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Board maps a submission timestamp to its message.
type Board map[string]Message

// Entry flattens a board item for listings and live feeds.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Username  string `json:"username"`
	Message   string `json:"message"`
}

// Entries returns the board items in ascending timestamp order.
func (b Board) Entries() []Entry {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		m := b[k]
		entries = append(entries, Entry{Timestamp: k, Username: m.Username, Message: m.Message})
	}
	return entries
}

// FormatTimestamp renders t as a board key.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(timestampLayoutNoFrac)
	}
	return t.Format(TimestampLayout)
}

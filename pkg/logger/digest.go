package logger

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// DigestEntry is a de-duplicated warn/error log line.
type DigestEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// ErrorDigest counts repeated warn/error entries so health checks can report
// recent upstream trouble. It is bounded: once MaxEntries distinct entries
// exist, the least recently seen one is dropped.
type ErrorDigest struct {
	maxEntries int
	entries    map[string]*DigestEntry
	mutex      sync.Mutex
	now        func() time.Time
}

func NewErrorDigest(maxEntries int) *ErrorDigest {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &ErrorDigest{
		maxEntries: maxEntries,
		entries:    make(map[string]*DigestEntry),
		now:        time.Now,
	}
}

func (d *ErrorDigest) Add(level, message string, fields map[string]interface{}, caller string) {
	now := d.now()
	// error text varies per request; key on level+message+caller only
	key := d.key(level, message, caller)

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if entry, ok := d.entries[key]; ok {
		entry.Count++
		entry.LastSeen = now
		entry.Fields = fields
		return
	}

	if len(d.entries) >= d.maxEntries {
		d.evictOldest()
	}
	d.entries[key] = &DigestEntry{
		Level:     level,
		Message:   message,
		Fields:    fields,
		Caller:    caller,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// Snapshot returns entries ordered by most recently seen first.
func (d *ErrorDigest) Snapshot() []DigestEntry {
	d.mutex.Lock()
	out := make([]DigestEntry, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, *e)
	}
	d.mutex.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].LastSeen.After(out[j].LastSeen) })
	return out
}

func (d *ErrorDigest) key(level, message, caller string) string {
	data, _ := json.Marshal([]string{level, message, caller})
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

func (d *ErrorDigest) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range d.entries {
		if oldestKey == "" || e.LastSeen.Before(oldest) {
			oldestKey, oldest = k, e.LastSeen
		}
	}
	delete(d.entries, oldestKey)
}

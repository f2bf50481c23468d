package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pmanager/pm/internal/utils"
)

// TimestampFormat is the UTC layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry. Scope names, keys and values
// are never recorded; Hashcode identifies the resulting store instead.
type Entry struct {
	ID        string `json:"id"`     // Random UUID of the entry.
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	User      string `json:"user"`   // System user performing the action.
	Device    string `json:"device"` // Hostname of the machine.
	Operation string `json:"op"`     // Operation name.

	// Optional fields depending on operation.
	Hashcode   string `json:"hashcode,omitempty"`    // Store digest after the change.
	Source     string `json:"source,omitempty"`      // For import (path, URL or "stdin").
	Format     string `json:"format,omitempty"`      // For import/export.
	OutputPath string `json:"output_path,omitempty"` // For export.
}

// Trail appends entries to a JSON Lines file.
type Trail struct {
	Path string

	// Now stamps entries; time.Now when nil.
	Now func() time.Time
}

// NewEntry returns an entry for op with the actor fields populated.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	if host, err := utils.GetHostname(); err == nil {
		entry.Device = host
	}
	return entry
}

// Log appends an entry to the audit log.
// If logging fails, the entry is dropped silently.
// Operations should not fail just because audit logging failed.
func (t *Trail) Log(entry Entry) {
	if t == nil || t.Path == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		now := time.Now
		if t.Now != nil {
			now = t.Now
		}
		entry.Timestamp = now().UTC().Format(TimestampFormat)
	}

	if err := os.MkdirAll(filepath.Dir(t.Path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(t.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (t *Trail) ReadEntries() ([]Entry, error) {
	if t == nil || t.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(t.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

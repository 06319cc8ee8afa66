// Package calendar keeps free-text memos keyed by day and lays out month
// grids for the calendar page.
package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vlpworks/vlp/internal/storage"
)

// MemoKey is the storage key holding the memo map.
const MemoKey = "calendar_memos"

// DateLayout is the memo key format.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for keys that are not YYYY-MM-DD dates.
var ErrInvalidDate = errors.New("calendar: date must be YYYY-MM-DD")

// Memos is the memo map persisted under MemoKey.
type Memos struct {
	mu    sync.Mutex
	store storage.Store
	log   *slog.Logger
}

// NewMemos returns the memo map over store.
func NewMemos(store storage.Store, log *slog.Logger) *Memos {
	if log == nil {
		log = slog.Default()
	}
	return &Memos{store: store, log: log}
}

// ValidDate reports whether s is a real YYYY-MM-DD date.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

// Key formats t as a memo key.
func Key(t time.Time) string {
	return t.Format(DateLayout)
}

// Get returns the memo for date, "" when there is none.
func (m *Memos) Get(date string) (string, error) {
	if !ValidDate(date) {
		return "", ErrInvalidDate
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.load()
	if err != nil {
		return "", fmt.Errorf("calendar.Get: %w", err)
	}
	return all[date], nil
}

// Set stores text for date exactly as given. Empty or whitespace-only text
// removes the entry.
func (m *Memos) Set(date, text string) error {
	if !ValidDate(date) {
		return ErrInvalidDate
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.load()
	if err != nil {
		return fmt.Errorf("calendar.Set: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		if _, ok := all[date]; !ok {
			return nil
		}
		delete(all, date)
	} else {
		all[date] = text
	}
	if err := m.save(all); err != nil {
		return fmt.Errorf("calendar.Set: %w", err)
	}
	return nil
}

// All returns a copy of the memo map.
func (m *Memos) All() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.load()
	if err != nil {
		return nil, fmt.Errorf("calendar.All: %w", err)
	}
	return all, nil
}

// Dates returns the sorted dates in month ("YYYY-MM") that have a memo.
func (m *Memos) Dates(month string) ([]string, error) {
	all, err := m.All()
	if err != nil {
		return nil, err
	}
	prefix := month + "-"
	var dates []string
	for d := range all {
		if strings.HasPrefix(d, prefix) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// load reads the map. A document that does not decode is treated as empty;
// invalid keys and blank values are dropped.
func (m *Memos) load() (map[string]string, error) {
	raw, ok, err := m.store.Get(MemoKey)
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	if !ok || strings.TrimSpace(raw) == "" {
		return out, nil
	}
	var decoded map[string]string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		m.log.Warn("calendar_memos_corrupt", slog.String("err", err.Error()))
		return out, nil
	}
	for d, text := range decoded {
		if ValidDate(d) && strings.TrimSpace(text) != "" {
			out[d] = text
		}
	}
	return out, nil
}

func (m *Memos) save(all map[string]string) error {
	if len(all) == 0 {
		return m.store.Remove(MemoKey)
	}
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode memos: %w", err)
	}
	return m.store.Set(MemoKey, string(raw))
}

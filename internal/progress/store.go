package progress

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"sync"

	"github.com/vovakirdan/phone-secrets/internal/core"
)

// Key is the document key under which progress is persisted.
const Key = "phoneGameProgress"

// Store persists the progress document as a whole.
// Load returns nil data and no error when nothing was saved yet.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// Snapshot is the persisted form of the progress.
type Snapshot struct {
	CompletedLevels []int        `json:"completedLevels"`
	CurrentLevel    int          `json:"currentLevel"`
	Level3Scores    *core.Scores `json:"level3Scores,omitempty"`
}

var (
	errEmpty   = errors.New("progress: empty document")
	errNothing = errors.New("progress: no usable field")
)

// Encode serializes a snapshot with completed levels sorted.
func Encode(s Snapshot) ([]byte, error) {
	s.CompletedLevels = slices.Sorted(slices.Values(s.CompletedLevels))
	if s.CompletedLevels == nil {
		s.CompletedLevels = []int{}
	}
	return json.Marshal(s)
}

// Decode parses a snapshot field by field and drops whatever is malformed
// or out of range: unknown level numbers, an impossible current level,
// scores outside 0..100. A bad field never discards the others. Decode
// fails only when the document is not an object or no field is usable.
func Decode(data []byte, levels int) (Snapshot, error) {
	if len(data) == 0 {
		return Snapshot{}, errEmpty
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Snapshot{}, err
	}

	var s Snapshot
	usable := false

	var completed []float64
	if raw, ok := fields["completedLevels"]; ok && json.Unmarshal(raw, &completed) == nil {
		usable = true
		for _, f := range completed {
			n, ok := whole(f)
			if ok && n >= 1 && n <= levels && !slices.Contains(s.CompletedLevels, n) {
				s.CompletedLevels = append(s.CompletedLevels, n)
			}
		}
		slices.Sort(s.CompletedLevels)
	}

	var current float64
	if raw, ok := fields["currentLevel"]; ok && json.Unmarshal(raw, &current) == nil {
		usable = true
		if n, ok := whole(current); ok && n >= 0 && n <= levels {
			s.CurrentLevel = n
		}
	}

	var scores *struct {
		Wellbeing float64 `json:"wellbeing"`
		Dopamine  float64 `json:"dopamine"`
	}
	if raw, ok := fields["level3Scores"]; ok && json.Unmarshal(raw, &scores) == nil && scores != nil {
		usable = true
		s.Level3Scores = &core.Scores{
			Wellbeing: int(math.Round(core.ClampF(scores.Wellbeing, 0, 100))),
			Dopamine:  int(math.Round(core.ClampF(scores.Dopamine, 0, 100))),
		}
	}

	if !usable {
		return Snapshot{}, errNothing
	}
	return s, nil
}

func whole(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// MemoryStore keeps the document in memory. Used by tests and by sessions
// that run without a database.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved document.
func (m *MemoryStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.data), nil
}

// Save replaces the document.
func (m *MemoryStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = slices.Clone(data)
	m.saves++
	return nil
}

// Clear removes the document.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Package registry provides a global registry for level factories.
// Levels register themselves in init() functions, allowing the session
// to discover and instantiate levels without hardcoded dependencies.
package registry

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/vovakirdan/phone-secrets/internal/config"
	"github.com/vovakirdan/phone-secrets/internal/core"
)

// Count is the number of levels in the game.
const Count = 5

// Level is the interface all levels implement.
// Levels contain pure logic with no external dependencies (especially no Bubble Tea).
// Time only moves through the scheduler in Env; the platform handles input
// mapping, ticking and rendering.
type Level interface {
	// Info returns the static metadata the level was registered with.
	Info() Info

	// Input applies one platform action. Actions that make no sense in the
	// current phase are ignored.
	Input(a core.Action)

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// Completed reports whether the win condition has been met.
	Completed() bool

	// Close cancels every pending timer of the level.
	// Called before the session switches to another level.
	Close()
}

// Hooks are the callbacks a level uses to talk to the orchestrator.
type Hooks struct {
	OnComplete func()            // Exactly once, when the win condition is met
	OnNext     func()            // When the player asks to advance after completion
	OnScores   func(core.Scores) // Level 3 only, once, before OnComplete
}

// Complete invokes OnComplete if set.
func (h Hooks) Complete() {
	if h.OnComplete != nil {
		h.OnComplete()
	}
}

// Next invokes OnNext if set.
func (h Hooks) Next() {
	if h.OnNext != nil {
		h.OnNext()
	}
}

// Scores invokes OnScores if set.
func (h Hooks) Scores(s core.Scores) {
	if h.OnScores != nil {
		h.OnScores(s)
	}
}

// Env is everything a level needs from its host.
type Env struct {
	Clock  *core.Scheduler
	Rand   *rand.Rand
	Config config.Config
	Hooks  Hooks
}

// Info contains metadata about a registered level.
type Info struct {
	Number   int    // 1..5, play order
	ID       string // Short name for the CLI (e.g., "timeline")
	Title    string
	Subtitle string
	Topic    string // What the level teaches, shown on the final screen
}

// Factory creates a new instance of a level bound to env.
type Factory func(env Env) Level

type entry struct {
	info    Info
	factory Factory
}

var (
	byNumber = make(map[int]entry)
	byID     = make(map[string]int)
	mu       sync.RWMutex
)

// levenshteinLimit is the largest edit distance offered as a suggestion.
const levenshteinLimit = 3

// Register adds a level factory to the registry.
// Typically called from a level's init() function.
// Panics if the number is out of range or already taken, or the ID is reused.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.Number < 1 || info.Number > Count {
		panic(fmt.Sprintf("registry: level number %d out of range", info.Number))
	}
	if _, exists := byNumber[info.Number]; exists {
		panic(fmt.Sprintf("registry: level %d already registered", info.Number))
	}
	if _, exists := byID[info.ID]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", info.ID))
	}

	byNumber[info.Number] = entry{info: info, factory: f}
	byID[info.ID] = info.Number
}

// List returns information about all registered levels, sorted by number.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(byNumber))
	for _, e := range byNumber {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})

	return result
}

// Lookup resolves a level reference, either its number or its ID.
func Lookup(ref string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := resolve(ref)
	return e.info, ok
}

func resolve(ref string) (entry, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if n, err := strconv.Atoi(ref); err == nil {
		e, ok := byNumber[n]
		return e, ok
	}
	n, ok := byID[ref]
	if !ok {
		return entry{}, false
	}
	return byNumber[n], true
}

// Create instantiates level n bound to env.
// Returns an error if no level has that number.
func Create(n int, env Env) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := byNumber[n]
	if !ok {
		return nil, fmt.Errorf("registry: unknown level %d", n)
	}

	return e.factory(env), nil
}

// Suggest returns the IDs closest to an unknown reference, best first.
func Suggest(ref string) []string {
	mu.RLock()
	defer mu.RUnlock()

	ref = strings.ToLower(strings.TrimSpace(ref))
	type candidate struct {
		id   string
		dist int
	}
	var candidates []candidate
	for id := range byID {
		d := levenshtein.ComputeDistance(ref, id)
		if d <= levenshteinLimit {
			candidates = append(candidates, candidate{id, d})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.id
	}
	return out
}

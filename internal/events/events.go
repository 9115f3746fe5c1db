// Package events records collision notifications so a driver can react to them after a step
// (sound cues, flashes) or export them for offline rendering.
package events

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	uuid "github.com/satori/go.uuid"

	"physics-engine/internal/physics"
)

// Point is a JSON-friendly position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is one resolved contact as seen by the driver.
type Event struct {
	ID           uuid.UUID    `json:"id"`
	Step         uint64       `json:"step"`
	Time         float64      `json:"time"`
	Kind         string       `json:"kind"`
	Position     Point        `json:"position"`
	Normal       Point        `json:"normal"`
	Penetration  float64      `json:"penetration"`
	Bodies       [2]uuid.UUID `json:"bodies"`
	Tags         []string     `json:"tags,omitempty"`
	Boundary     string       `json:"boundary,omitempty"`
	TimeOfImpact *float64     `json:"time_of_impact,omitempty"`
}

// Recorder collects events. When limit is positive only the most recent limit events are kept.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	limit  int
	events []Event
	total  int
	counts map[string]int
}

// NewRecorder keeps at most limit events; older ones are discarded first.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit, counts: make(map[string]int)}
}

// Attach subscribes the recorder to every contact w resolves.
func (r *Recorder) Attach(w *physics.World) {
	w.OnCollision(func(c *physics.Contact) {
		r.Record(c, w.Stats().Step, w.Elapsed())
	})
}

// Record converts c into an Event. For swept contacts the time includes the time of impact.
func (r *Recorder) Record(c *physics.Contact, step uint64, now float64) Event {
	e := Event{
		ID:          uuid.Must(uuid.NewV4()),
		Step:        step,
		Time:        now,
		Kind:        c.Kind.String(),
		Position:    Point{c.Point.X, c.Point.Y},
		Normal:      Point{c.Normal.X, c.Normal.Y},
		Penetration: c.Penetration,
		Bodies:      [2]uuid.UUID{c.A.ID(), c.B.ID()},
		Tags:        mergeTags(c.A, c.B),
	}
	switch d := c.Detail.(type) {
	case physics.RingHit:
		e.Boundary = d.Boundary.String()
	case physics.SweptHit:
		toi := d.TimeOfImpact
		e.TimeOfImpact = &toi
		e.Time += toi
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.counts[e.Kind]++
	r.events = append(r.events, e)
	if r.limit > 0 && len(r.events) > r.limit {
		n := copy(r.events, r.events[len(r.events)-r.limit:])
		r.events = r.events[:n]
	}
	return e
}

func mergeTags(a, b *physics.Body) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range append(a.TagList(), b.TagList()...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Events returns a copy of the retained events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Since returns the retained events recorded at or after step.
func (r *Recorder) Since(step uint64) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := sort.Search(len(r.events), func(i int) bool { return r.events[i].Step >= step })
	out := make([]Event, len(r.events)-i)
	copy(out, r.events[i:])
	return out
}

// Total counts every event ever recorded, including dropped ones.
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Counts returns the number of events per contact kind.
func (r *Recorder) Counts() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Reset drops every stored event and count.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = r.events[:0]
	r.total = 0
	clear(r.counts)
}

// WriteJSON writes the retained events as an indented JSON array.
func (r *Recorder) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(r.Events()); err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return nil
}

// Export writes the retained events to path, creating the directory if needed.
func (r *Recorder) Export(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create events dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create events file: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes events written by WriteJSON.
func ReadJSON(rd io.Reader) ([]Event, error) {
	var out []Event
	if err := json.NewDecoder(rd).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return out, nil
}

package events

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

func quietWorld() *physics.World {
	cfg := physics.DefaultConfig()
	cfg.Gravity = vec2.Zero
	cfg.Damping = 0
	return physics.NewWorld(cfg)
}

func TestAttachRecordsContacts(t *testing.T) {
	w := quietWorld()
	a := physics.NewCircle(vec2.New(0, 0), 5, 1, false)
	b := physics.NewCircle(vec2.New(8, 0), 5, 1, false)
	a.AddTag("ball")
	b.AddTag("ball")
	b.AddTag("red")
	w.AddBody(a)
	w.AddBody(b)

	r := NewRecorder(0)
	r.Attach(w)
	w.Step(1.0 / 60)

	evs := r.Events()
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	e := evs[0]
	if e.Step != 1 || e.Kind != "circle-circle" {
		t.Errorf("event = %+v", e)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "ball" || e.Tags[1] != "red" {
		t.Errorf("Tags = %v", e.Tags)
	}
	if e.Bodies[0] != a.ID() && e.Bodies[1] != a.ID() {
		t.Error("event does not reference body a")
	}
	if r.Counts()["circle-circle"] != 1 || r.Total() != 1 {
		t.Errorf("Counts = %v Total = %d", r.Counts(), r.Total())
	}
}

func TestRecordDetails(t *testing.T) {
	r := NewRecorder(0)
	ring := physics.NewRing(vec2.Zero, 100, 110, 0, 0, true)
	ball := physics.NewCircle(vec2.New(95, 0), 10, 1, false)
	c, ok := physics.Detect(ball, ring)
	if !ok {
		t.Fatal("expected ring contact")
	}
	if e := r.Record(&c, 3, 1.5); e.Boundary != "inner" || e.TimeOfImpact != nil || e.Time != 1.5 {
		t.Errorf("ring event = %+v", e)
	}

	fast := physics.NewCircle(vec2.New(0, 0), 10, 1, false)
	other := physics.NewCircle(vec2.New(100, 0), 10, 1, false)
	fast.Velocity = vec2.New(100, 0)
	sc, ok := physics.DetectSwept(fast, other, 1, physics.DefaultSweep)
	if !ok {
		t.Fatal("expected swept contact")
	}
	e := r.Record(&sc, 4, 2)
	if e.TimeOfImpact == nil || *e.TimeOfImpact <= 0.79 || *e.TimeOfImpact >= 0.81 {
		t.Fatalf("TimeOfImpact = %v", e.TimeOfImpact)
	}
	if e.Time != 2+*e.TimeOfImpact {
		t.Errorf("Time = %v", e.Time)
	}
}

func TestLimitKeepsNewest(t *testing.T) {
	r := NewRecorder(3)
	a := physics.NewCircle(vec2.New(0, 0), 5, 1, false)
	b := physics.NewCircle(vec2.New(8, 0), 5, 1, false)
	c, _ := physics.Detect(a, b)
	for i := 1; i <= 5; i++ {
		r.Record(&c, uint64(i), float64(i))
	}
	evs := r.Events()
	if len(evs) != 3 || evs[0].Step != 3 || evs[2].Step != 5 {
		t.Errorf("events = %+v", evs)
	}
	if got := r.Since(4); len(got) != 2 {
		t.Errorf("Since(4) = %d events, want 2", len(got))
	}
	if r.Total() != 5 {
		t.Errorf("Total = %d, want 5", r.Total())
	}
	r.Reset()
	if len(r.Events()) != 0 || r.Total() != 0 {
		t.Error("Reset did not clear")
	}
}

func TestExportRoundTrip(t *testing.T) {
	r := NewRecorder(0)
	a := physics.NewCircle(vec2.New(0, 0), 5, 1, false)
	b := physics.NewCircle(vec2.New(8, 0), 5, 1, false)
	c, _ := physics.Detect(a, b)
	want := r.Record(&c, 7, 0.25)

	path := filepath.Join(t.TempDir(), "out", "events.json")
	if err := r.Export(path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != 1 || got[0].ID != want.ID || got[0].Bodies != want.Bodies || got[0].Step != 7 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRecorder(0).WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("got %q, want []", got)
	}
}

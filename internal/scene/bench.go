package scene

import (
	"math/rand"
	"time"

	"physics-engine/internal/engineconfig"
	"physics-engine/internal/physics"
	"physics-engine/internal/vec2"
)

// BenchResult sums the world stats of one broad-phase over a benchmark run.
type BenchResult struct {
	Broadphase  physics.Broadphase
	Steps       int
	Pairs       int
	Checks      int
	Contacts    int
	Swept       int
	PhysicsTime time.Duration
}

// PerStep returns the mean physics time of one step.
func (r BenchResult) PerStep() time.Duration {
	if r.Steps == 0 {
		return 0
	}
	return r.PhysicsTime / time.Duration(r.Steps)
}

// Benchmark runs the same random scene of n balls once per broad-phase kind and reports the totals.
// Every run starts from an identical layout built from seed.
func Benchmark(cfg engineconfig.Config, kinds []physics.Broadphase, n, steps int, dt float64, seed int64) []BenchResult {
	out := make([]BenchResult, 0, len(kinds))
	for _, kind := range kinds {
		wc := cfg.World()
		wc.Broadphase = kind
		w := physics.NewWorld(wc)
		rng := rand.New(rand.NewSource(seed))
		for _, b := range walls(cfg) {
			w.AddBody(b)
		}
		width, height := float64(cfg.Width), float64(cfg.Height)
		for i := 0; i < n; i++ {
			r := 4 + rng.Float64()*8
			pos := vec2.New(r+10+rng.Float64()*(width-2*r-20), r+10+rng.Float64()*(height-2*r-20))
			w.AddBody(ball(pos, r, rng))
		}
		res := BenchResult{Broadphase: kind, Steps: steps}
		for i := 0; i < steps; i++ {
			w.Step(dt)
			s := w.Stats()
			res.Pairs += s.Pairs
			res.Checks += s.Checks
			res.Contacts += s.Contacts
			res.Swept += s.Swept
			res.PhysicsTime += s.PhysicsTime
		}
		out = append(out, res)
	}
	return out
}

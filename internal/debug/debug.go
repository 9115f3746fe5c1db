package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-engine/internal/physics"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 15
)

// Info is what the overlay shows besides the world's own stats.
type Info struct {
	Preset     string
	Broadphase physics.Broadphase
	Paused     bool
	TimeScale  float64
	Escaped    int
	Events     int
	RenderTime float64 // milliseconds
}

// Debug draws the stats overlay. It is hidden by default; Visible toggles it.
type Debug struct {
	Visible      bool
	ShowMemAlloc bool
	frameCount   uint32
	lines        []string
	memStats     runtime.MemStats
}

// New returns a Debug overlay with everything hidden.
func New() *Debug {
	return &Debug{}
}

// Toggle shows or hides the overlay.
func (d *Debug) Toggle() {
	d.Visible = !d.Visible
}

// Lines formats the overlay text for one frame.
func Lines(fps int32, s physics.Stats, info Info) []string {
	state := "running"
	if info.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("FPS: %d", fps),
		fmt.Sprintf("Scene: %s (%s, x%.1f)", info.Preset, state, info.TimeScale),
		fmt.Sprintf("Bodies: %d  Escaped: %d", s.Bodies, info.Escaped),
		fmt.Sprintf("Broadphase: %s  Pairs: %d  Checks: %d", info.Broadphase, s.Pairs, s.Checks),
		fmt.Sprintf("Contacts: %d  Swept: %d  Events: %d", s.Contacts, s.Swept, info.Events),
		fmt.Sprintf("Physics: %.2f ms  Render: %.2f ms", float64(s.PhysicsTime.Microseconds())/1000, info.RenderTime),
		fmt.Sprintf("Step: %d", s.Step),
	}
}

// Draw renders the overlay at the top-left when Visible. Text is only recomputed every
// updateInterval frames to limit allocations.
func (d *Debug) Draw(s physics.Stats, info Info) {
	if !d.Visible {
		return
	}
	d.frameCount++
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		d.lines = Lines(rl.GetFPS(), s, info)
		if d.ShowMemAlloc {
			runtime.ReadMemStats(&d.memStats)
			mb := float64(d.memStats.Alloc) / (1024 * 1024)
			d.lines = append(d.lines, fmt.Sprintf("Mem: %.2f MiB", mb))
		}
	}
	height := int32(len(d.lines)*lineHeight + padding)
	rl.DrawRectangle(0, 0, 460, height, rl.Fade(rl.Black, 0.6))
	y := int32(padding / 2)
	for _, line := range d.lines {
		rl.DrawText(line, padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}

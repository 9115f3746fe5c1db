package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Width  int
	Height int
	FPS    int
	Title  string
}

// Run opens the window and runs the main loop. Each frame it calls update with the frame time,
// then draw between BeginDrawing and EndDrawing; draw is responsible for clearing the screen.
// ESC or the close button ends the loop.
func Run(win Window, update func(dt float32), draw func()) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(win.FPS))

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		draw()
		rl.EndDrawing()
	}
}

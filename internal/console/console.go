package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"physics-engine/internal/commands"
	"physics-engine/internal/logger"
)

const (
	BarHeight = 36
	prompt    = "> "
	fontSize  = 18
	padding   = 8
	// Log lines drawn above the input bar while the console is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
	maxLineLen       = 160
)

var (
	barColor     = rl.NewColor(40, 40, 40, 255)
	barEdgeColor = rl.NewColor(80, 80, 80, 255)
	historyColor = rl.NewColor(24, 24, 24, 230)
)

// Console is the command line at the bottom of the window, toggled with the ` key. Submitted lines
// are split by commands.Parse and run through the registry; the line and any error go to the log,
// whose recent lines are shown above the input bar.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed console running lines through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing keys.
func (c *Console) IsOpen() bool {
	return c.open
}

// Update handles the toggle key and, while open, typing, paste, backspace and enter. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		c.open = !c.open
		// Drop the queued ` so it does not end up in the input.
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !c.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		c.inputBuf += rl.GetClipboardText()
	} else {
		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
			c.inputBuf += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.log.Log(prompt + line)
		if err := c.reg.ExecuteLine(line); err != nil {
			c.log.Errorf("%v", err)
		}
	}
}

// Draw draws the input bar and the recent log lines above it when the console is open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := rl.GetScreenWidth()
	barY := rl.GetScreenHeight() - BarHeight

	historyH := maxLinesOnScreen * lineHeight
	historyY := barY - historyH
	if historyY < 0 {
		historyH, historyY = barY, 0
	}
	if historyH > 0 {
		rl.DrawRectangle(0, int32(historyY), int32(screenW), int32(historyH), historyColor)
	}
	lines := c.log.Lines()
	start := max(len(lines)-maxLinesOnScreen, 0)
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		y := historyY + (i-start)*lineHeight + padding
		rl.DrawText(line, padding, int32(y), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), BarHeight, barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, barEdgeColor)
	rl.DrawText(prompt+c.inputBuf+"|", padding, int32(barY+padding), fontSize, rl.White)
}

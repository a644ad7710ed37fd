package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Held nudge keys repeat after repeatDelay ticks, every repeatInterval ticks.
const (
	repeatDelay    = 20
	repeatInterval = 4
)

type nudge struct {
	key   ebiten.Key
	field config.Field
	steps int
}

var nudges = []nudge{
	{ebiten.KeyBracketLeft, config.FieldCount, -1},
	{ebiten.KeyBracketRight, config.FieldCount, 1},
	{ebiten.KeyMinus, config.FieldRadius, -1},
	{ebiten.KeyEqual, config.FieldRadius, 1},
	{ebiten.KeySemicolon, config.FieldThickness, -1},
	{ebiten.KeyQuote, config.FieldThickness, 1},
	{ebiten.KeyComma, config.FieldSpeed, -1},
	{ebiten.KeyPeriod, config.FieldSpeed, 1},
	{ebiten.KeyZ, config.FieldCameraZoom, -1},
	{ebiten.KeyX, config.FieldCameraZoom, 1},
}

func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	if d == 1 {
		return true
	}
	return d > repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// handleInput applies keyboard and mouse controls. It reports whether the
// user asked to quit.
func (g *game) handleInput(now time.Time) bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= buttonX && mouseX <= buttonX+buttonWidth &&
		mouseY >= buttonY && mouseY <= buttonY+buttonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.exportScript()
		}
		g.buttonPressed = false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.exportScript()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.snapshotPending = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.toggleRecording(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.savePreset(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.reseed()
	}

	for _, n := range nudges {
		if repeating(n.key) {
			g.params.Nudge(n.field, n.steps)
		}
	}

	// Scrolling toward the ring moves the camera closer.
	if _, wy := ebiten.Wheel(); wy != 0 {
		steps := 1
		if wy > 0 {
			steps = -1
		}
		g.params.Nudge(config.FieldCameraZoom, steps)
	}
	return false
}

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable UI button firing OnClick once per press.
type Button struct {
	Label   string
	X, Y    float64
	Width   float64
	Height  float64
	pressed bool
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA
}

// NewButton creates a new button instance
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) hovered() bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= b.X && float64(mx) <= b.X+b.Width &&
		float64(my) >= b.Y && float64(my) <= b.Y+b.Height
}

// Update fires OnClick on the first frame of a press over the button.
func (b *Button) Update() {
	if b.hovered() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !b.pressed && b.OnClick != nil {
			b.OnClick()
		}
		b.pressed = true
		return
	}
	b.pressed = false
}

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	bgColor := b.BGColor
	if b.hovered() {
		bgColor = b.HoverColor
	}

	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		bgColor, true)

	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+8), int(b.Y+4))
}

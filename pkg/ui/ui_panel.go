package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
}

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 10
}

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 {
	return b.Height + 10
}

// UIPanel is a fixed overlay holding the simulation controls.
// Controls only change how the host drives and draws the flock, never the
// physics constants.
type UIPanel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	Widgets       []UIWidget
	Labels        []string // one per widget, empty for buttons

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewUIPanel creates a new UI panel; its height grows with its widgets.
func NewUIPanel(x, y, width float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      30,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 200},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(p.X+10, p.Y+p.Height+5, label, value)
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddButton adds a button spanning the panel width.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, p.Y+p.Height, p.Width-20, 22, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
	p.Height += w.GetHeight()
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	for _, widget := range p.Widgets {
		widget.Update()
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	for i, widget := range p.Widgets {
		if p.Labels[i] != "" {
			if cw, ok := widget.(*CheckboxWrapper); ok {
				ebitenutil.DebugPrintAt(screen, p.Labels[i], int(cw.X+cw.Size+8), int(cw.Y)+1)
			}
		}
		widget.Draw(screen)
	}
}

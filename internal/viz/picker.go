package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is twelve saturated hues followed by white, gray and black.
func DefaultPalette() []string {
	palette := make([]string, 0, 15)
	for i := 0; i < 12; i++ {
		palette = append(palette, colorful.Hsv(float64(i)*30, 0.85, 1.0).Hex())
	}
	return append(palette, "#ffffff", "#808080", "#000000")
}

// Picker is the recolor modal. It only proposes a color; applying it is the
// caller's job on confirmation.
type Picker struct {
	palette []string
	cursor  int
	editing bool
	buf     string
	err     error
}

func NewPicker(current string) *Picker {
	p := &Picker{palette: DefaultPalette()}
	p.cursor = nearestSwatch(p.palette, current)
	return p
}

func nearestSwatch(palette []string, color string) int {
	target, err := colorful.Hex(color)
	if err != nil {
		return 0
	}
	best, bestDist := 0, -1.0
	for i, hex := range palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			continue
		}
		if d := target.DistanceLab(c); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Selected is the color that would be applied on confirmation.
func (p *Picker) Selected() string {
	if p.editing {
		return "#" + p.buf
	}
	return p.palette[p.cursor]
}

func (p *Picker) Editing() bool { return p.editing }

func (p *Picker) Next() {
	p.cursor = (p.cursor + 1) % len(p.palette)
	p.err = nil
}

func (p *Picker) Prev() {
	p.cursor = (p.cursor + len(p.palette) - 1) % len(p.palette)
	p.err = nil
}

// StartEditing switches to hex entry with an empty buffer.
func (p *Picker) StartEditing() {
	p.editing = true
	p.buf = ""
	p.err = nil
}

func (p *Picker) StopEditing() {
	p.editing = false
	p.err = nil
}

// Input appends hex digits while editing; anything else is ignored.
func (p *Picker) Input(s string) {
	if !p.editing {
		return
	}
	for _, r := range strings.ToLower(s) {
		if len(p.buf) >= 6 {
			return
		}
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			p.buf += string(r)
		}
	}
	p.err = nil
}

func (p *Picker) Backspace() {
	if p.editing && len(p.buf) > 0 {
		p.buf = p.buf[:len(p.buf)-1]
	}
}

func (p *Picker) SetError(err error) { p.err = err }

func (p *Picker) View(theme Theme) string {
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Render("RECOLOR") + "\n")

	for i, hex := range p.palette {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
		if i == p.cursor && !p.editing {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true).Render("◉")
		}
		s.WriteString(swatch + " ")
	}
	s.WriteString("\n")

	if p.editing {
		s.WriteString(fmt.Sprintf("hex: #%s_\n", p.buf))
	} else {
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render(p.Selected()) + "\n")
	}
	if p.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(p.err.Error()) + "\n")
	}
	s.WriteString(KeyHint.Render("←→ pick  # hex  enter ok  esc cancel"))
	return s.String()
}

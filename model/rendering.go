package model

import (
	"bufio"
	"io"
	"os/exec"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	GlyphDead  = "◻"
	GlyphAlive = "◼"

	terminalBlock = "██"
	terminalEmpty = "  "

	clearCmd = "clear"
)

// TextRenderer writes one glyph per cell and one line per row
type TextRenderer struct {
	Dead  string
	Alive string
}

// DefaultTextRenderer uses the square glyphs ◻ and ◼
var DefaultTextRenderer = TextRenderer{Dead: GlyphDead, Alive: GlyphAlive}

// Render writes u to w
func (r TextRenderer) Render(w io.Writer, u *Universe) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < u.height; row++ {
		line := u.cells[row*u.width : (row+1)*u.width]
		for _, c := range line {
			if c == Alive {
				bw.WriteString(r.Alive)
			} else {
				bw.WriteString(r.Dead)
			}
		}
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "[TextRenderer.Render] flush")
}

// String renders the universe with DefaultTextRenderer
func (u *Universe) String() string {
	var sb strings.Builder
	_ = DefaultTextRenderer.Render(&sb, u)
	return sb.String()
}

// TerminalRenderer draws the universe to a terminal using coloured blocks
type TerminalRenderer struct {
	out  io.Writer
	text TextRenderer
}

// NewTerminalRenderer returns a renderer writing to out; colors toggles ANSI
// colouring of living cells
func NewTerminalRenderer(out io.Writer, colors bool) *TerminalRenderer {
	au := aurora.NewAurora(colors)
	return &TerminalRenderer{
		out: out,
		text: TextRenderer{
			Dead:  terminalEmpty,
			Alive: au.Green(terminalBlock).String(),
		},
	}
}

// Display renders the universe
func (r *TerminalRenderer) Display(u *Universe) error {
	return r.text.Render(r.out, u)
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.out
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Clear] failed to clear terminal")
	}
	return nil
}

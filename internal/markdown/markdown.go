// Package markdown renders Markdown text to a terminal writer. It is
// the display sink the toolkit's helpers print through.
package markdown

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// Renderer writes rendered Markdown to an output writer. A failed
// glamour render falls back to the raw text, so Show never loses
// content.
type Renderer struct {
	w        io.Writer
	renderer *glamour.TermRenderer
}

// New creates a renderer writing to w.
func New(w io.Writer) (*Renderer, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{w: w, renderer: tr}, nil
}

// Show renders Markdown text to the output writer.
func (r *Renderer) Show(md string) error {
	out, err := r.renderer.Render(md)
	if err != nil {
		fmt.Fprintln(r.w, md)
		return nil
	}
	_, err = fmt.Fprint(r.w, out)
	return err
}

// Title renders a top-level heading.
func (r *Renderer) Title(text string) error {
	return r.Show(fmt.Sprintf("# %s 💡", text))
}

// Subtitle renders a second-level heading.
func (r *Renderer) Subtitle(text string) error {
	return r.Show(fmt.Sprintf("## %s", text))
}

// Info renders an informational note.
func (r *Renderer) Info(text string) error {
	return r.Show(fmt.Sprintf("ℹ️ **Info:** %s", text))
}

// Warning renders a warning note.
func (r *Renderer) Warning(text string) error {
	return r.Show(fmt.Sprintf("⚠️ **Warning:** %s", text))
}

// Success renders a success note.
func (r *Renderer) Success(text string) error {
	return r.Show(fmt.Sprintf("✅ %s", text))
}

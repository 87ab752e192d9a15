// Package presentation renders registry contents for the CLI as JSON, an
// aligned table, or bare names.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/zjrosen/rollcall/internal/config"
)

const columnGap = "  "

// Formatter handles output formatting
type Formatter struct {
	writer   io.Writer
	format   string
	color    bool
	renderer *lipgloss.Renderer
}

// NewFormatter creates a formatter writing format to writer. Color is
// dropped when NO_COLOR is set or writer is not a terminal.
func NewFormatter(writer io.Writer, out config.OutputConfig) *Formatter {
	format := out.Format
	if format == "" {
		format = config.FormatTable
	}
	return &Formatter{
		writer:   writer,
		format:   format,
		color:    out.Color && !termenv.EnvNoColor(),
		renderer: lipgloss.NewRenderer(writer),
	}
}

// Color reports whether styled output is enabled.
func (f *Formatter) Color() bool {
	return f.color
}

// FormatPeople writes people in the configured format
func (f *Formatter) FormatPeople(people []PersonDTO) error {
	switch f.format {
	case config.FormatJSON:
		return f.json(people)
	case config.FormatNames:
		names := make([]string, len(people))
		for i, p := range people {
			names[i] = p.Name
		}
		return f.names(names)
	default:
		rows := make([][]string, len(people))
		for i, p := range people {
			rows[i] = []string{p.Name, p.Age, p.Company}
		}
		return f.table([]string{"NAME", "AGE", "COMPANY"}, rows)
	}
}

// FormatSongs writes songs in the configured format
func (f *Formatter) FormatSongs(songs []SongDTO) error {
	switch f.format {
	case config.FormatJSON:
		return f.json(songs)
	case config.FormatNames:
		names := make([]string, len(songs))
		for i, s := range songs {
			names[i] = s.Name
		}
		return f.names(names)
	default:
		rows := make([][]string, len(songs))
		for i, s := range songs {
			rows[i] = []string{s.Name, s.Artist}
		}
		return f.table([]string{"NAME", "ARTIST"}, rows)
	}
}

// FormatResult writes any value as indented JSON
func (f *Formatter) FormatResult(result any) error {
	return f.json(result)
}

func (f *Formatter) json(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) names(names []string) error {
	for _, n := range names {
		if _, err := fmt.Fprintln(f.writer, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) table(header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	headerStyle := f.renderer.NewStyle()
	if f.color {
		headerStyle = headerStyle.Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D56F4"})
	}

	if _, err := fmt.Fprintln(f.writer, headerStyle.Render(joinRow(header, widths))); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(f.writer, joinRow(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

// joinRow pads every cell but the last to its column width.
func joinRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, columnGap), " ")
}

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LogPrefix is written in front of every hook log line.
const LogPrefix = "Monorepo prepare commit msg > "

// Printer writes command results to w and diagnostics to errW, either as
// JSON or as styled text.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Prefix  lipgloss.Style
	Scope   lipgloss.Style
}

// newStyles returns the palette, or plain styles when color is off.
func newStyles(color bool) *Styles {
	plain := lipgloss.NewStyle()
	if !color {
		return &Styles{
			Error: plain, Success: plain, Warning: plain, Bold: plain, Title: plain,
			Muted: plain, Key: plain, Value: plain, Prefix: plain, Scope: plain,
		}
	}
	fg := func(ansi string) lipgloss.Style {
		return plain.Foreground(lipgloss.Color(ansi))
	}
	return &Styles{
		Error:   fg("9").Bold(true), // red
		Success: fg("10"),           // green
		Warning: fg("11"),           // yellow
		Bold:    plain.Bold(true),
		Title:   fg("12").Bold(true), // blue
		Muted:   plain.Faint(true),
		Key:     fg("14"), // cyan
		Value:   plain,
		Prefix:  fg("8"),  // gray
		Scope:   fg("13"), // magenta
	}
}

// NewPrinter creates a Printer writing to w. Styling is enabled only when
// isTTY is true; pass the result of ResolveColorMode to honor --color.
func NewPrinter(w io.Writer, jsonMode bool, isTTY bool) *Printer {
	return &Printer{
		w:      w,
		errW:   w,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: newStyles(isTTY),
	}
}

// WithStderr routes human-mode errors, warnings and hook log lines to w.
// JSON errors stay on the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY reports whether styling is enabled.
func (p *Printer) IsTTY() bool {
	return p.isTTY
}

// Success writes data as JSON, or in human mode its "message" entry (or
// every key as "key: value" when there is none).
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		p.line(p.w, p.styles.Success.Render(msg))
		return nil
	}
	for key, val := range data {
		p.line(p.w, fmt.Sprintf("%s: %v", p.styles.Bold.Render(key), val))
	}
	return nil
}

// Error writes {"error": "...", "code": N} in JSON mode and a styled
// "Error: ..." line with the full cause chain otherwise.
func (p *Printer) Error(err error) {
	if p.json {
		mustWrite(p.w.Write(append(ErrorJSON(errorMessage(err), GetExitCode(err)), '\n')))
		return
	}
	p.line(p.errW, p.styles.Error.Render("Error")+": "+Describe(err))
}

// Warn writes a warning, as {"warning": "..."} in JSON mode.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	p.line(p.errW, p.styles.Warning.Render("Warning")+": "+msg)
}

// Log writes one prefixed hook log line to the error writer. Silent in
// JSON mode, where the hook reports a single result object instead.
func (p *Printer) Log(format string, args ...any) {
	if p.json {
		return
	}
	p.line(p.errW, p.styles.Prefix.Render(LogPrefix)+fmt.Sprintf(format, args...))
}

// Scopes renders a scope list as a comma-separated, styled line.
func (p *Printer) Scopes(scopes []string) string {
	styled := make([]string, len(scopes))
	for i, s := range scopes {
		styled[i] = p.styles.Scope.Render(s)
	}
	return strings.Join(styled, ", ")
}

// Print formats and writes to the output without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON encodes any value as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// Section writes a blank line, then an underlined title.
func (p *Printer) Section(title string) {
	p.line(p.w, "")
	p.line(p.w, p.styles.Title.Render(title))
	p.line(p.w, p.styles.Muted.Render(strings.Repeat("─", len(title))))
}

// KeyValue writes "key: value" with styles applied.
func (p *Printer) KeyValue(key string, value string) {
	p.line(p.w, p.styles.Key.Render(key+":")+" "+p.styles.Value.Render(value))
}

func (p *Printer) line(w io.Writer, s string) {
	mustWrite(fmt.Fprintln(w, s))
}

// mustWrite panics on write failure. Output goes to stdout or stderr, and
// a failure there leaves nothing useful to report to.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

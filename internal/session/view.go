package session

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// Row is one displayed stack value.
type Row struct {
	// Position is the 1-based index counted from the bottom of the stack.
	Position int `json:"position" yaml:"position"`
	// Value is the raw stack value.
	Value float64 `json:"-" yaml:"-"`
	// Text is Value formatted for display.
	Text string `json:"value" yaml:"value"`
	// Top marks the most recently pushed value.
	Top bool `json:"top,omitempty" yaml:"top,omitempty"`
}

// View is a snapshot of what a front end shows.
type View struct {
	// Rows holds up to the configured number of topmost values, bottom first.
	Rows []Row `json:"rows" yaml:"rows"`
	// Depth is the full stack length.
	Depth int `json:"depth" yaml:"depth"`
	// Input is the pending input.
	Input string `json:"input,omitempty" yaml:"input,omitempty"`
	// Error is the engine error slot.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Empty reports whether the stack has no values.
func (v View) Empty() bool {
	return v.Depth == 0
}

// View builds the current view.
func (s *Session) View() View {
	stack := s.engine.Stack()
	start := len(stack) - s.rows
	if start < 0 {
		start = 0
	}
	view := View{
		Rows:  make([]Row, 0, len(stack)-start),
		Depth: len(stack),
		Input: s.input,
	}
	for i := start; i < len(stack); i++ {
		view.Rows = append(view.Rows, Row{
			Position: i + 1,
			Value:    stack[i],
			Text:     FormatValue(stack[i]),
			Top:      i == len(stack)-1,
		})
	}
	if err := s.engine.Err(); err != nil {
		view.Error = err.Error()
	}
	return view
}

// Render writes a plain-text rendering of v.
func Render(w io.Writer, v View) error {
	if v.Empty() {
		if _, err := fmt.Fprintln(w, "Stack empty"); err != nil {
			return err
		}
	}
	for _, row := range v.Rows {
		if _, err := fmt.Fprintf(w, "%d: %s\n", row.Position, row.Text); err != nil {
			return err
		}
	}
	if v.Input != "" {
		if _, err := fmt.Fprintf(w, "> %s\n", v.Input); err != nil {
			return err
		}
	}
	if v.Error != "" {
		if _, err := fmt.Fprintf(w, "! %s\n", v.Error); err != nil {
			return err
		}
	}
	return nil
}

// FormatValue formats a stack value. Magnitudes outside [1e-6, 1e21) use exponent form.
func FormatValue(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

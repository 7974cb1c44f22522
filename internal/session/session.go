// Package session drives an rpn.Engine the way a calculator front end does: it keeps the
// pending number being typed, maps keys to gestures and produces a view of the stack.
package session

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/codex-k8s/rpncalc/internal/config"
	"github.com/codex-k8s/rpncalc/internal/logging"
	"github.com/codex-k8s/rpncalc/internal/rpn"
)

// inputPattern is the shape of a partially typed number.
var inputPattern = regexp.MustCompile(`^-?\d*\.?\d*$`)

// Options configures a Session.
type Options struct {
	// Rows is how many stack values View returns. Zero means config.DefaultRows.
	Rows int
	// Strict selects strict numeric parsing in the engine.
	Strict bool
	// Keymap resolves key names. Nil means DefaultKeymap.
	Keymap Keymap
	// Logger receives a debug record per action.
	Logger *slog.Logger
}

// Session is one calculator run. It is not safe for concurrent use.
type Session struct {
	engine *rpn.Engine
	input  string
	rows   int
	keys   Keymap
	logger *slog.Logger
}

// New constructs a Session with a fresh engine.
func New(opts Options) *Session {
	var engineOpts []rpn.Option
	if opts.Strict {
		engineOpts = append(engineOpts, rpn.WithStrictParse())
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = config.DefaultRows
	}
	keys := opts.Keymap
	if keys == nil {
		keys = DefaultKeymap()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		engine: rpn.New(engineOpts...),
		rows:   rows,
		keys:   keys,
		logger: logger,
	}
}

// Engine exposes the underlying engine.
func (s *Session) Engine() *rpn.Engine {
	return s.engine
}

// Input returns the pending, not yet pushed, input.
func (s *Session) Input() string {
	return s.input
}

// Digit appends a digit or "." to the pending input. A second "." is ignored.
func (s *Session) Digit(d string) bool {
	if !isEntryChar(d) {
		return false
	}
	if d == "." && strings.Contains(s.input, ".") {
		return false
	}
	s.input += d
	return true
}

// SetInput replaces the pending input when v looks like a partially typed number.
func (s *Session) SetInput(v string) bool {
	if v != "" && !inputPattern.MatchString(v) {
		return false
	}
	s.input = v
	return true
}

// Backspace removes the last character of the pending input.
func (s *Session) Backspace() {
	if s.input == "" {
		return
	}
	s.input = s.input[:len(s.input)-1]
}

// Enter pushes the pending input, or duplicates the top value when nothing is pending.
func (s *Session) Enter() {
	if s.input != "" {
		s.flush()
		s.trace("enter")
		return
	}
	s.engine.Duplicate()
	s.trace("duplicate")
}

// Duplicate pushes any pending input and then duplicates the top value.
func (s *Session) Duplicate() {
	s.flush()
	s.engine.Duplicate()
	s.trace("duplicate")
}

// Operate pushes any pending input and then applies op.
func (s *Session) Operate(op string) {
	s.flush()
	s.engine.Operation(op)
	s.trace("operation", "op", op)
}

// Drop discards the top value.
func (s *Session) Drop() {
	s.engine.Drop()
	s.trace("drop")
}

// ClearAll empties the pending input, the stack and the error slot.
func (s *Session) ClearAll() {
	s.input = ""
	s.engine.Clear()
	s.trace("clear")
}

// Key applies the binding for key. It reports false when the key is not bound.
func (s *Session) Key(key string) bool {
	b, ok := s.keys.Lookup(key)
	if !ok {
		return false
	}
	s.apply(b)
	return true
}

// Submit handles one line of terminal input.
//
// A blank line is Enter. A line that starts like a number is pushed, after any pending
// input. Action names (enter, dup, drop, clear, backspace) and bound key names run their
// binding. Anything else is treated as an operator token.
func (s *Session) Submit(line string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		s.Enter()
	case looksNumeric(line):
		s.flush()
		s.engine.Push(line)
		s.trace("push", "token", line)
	default:
		if a, ok := actionNames[strings.ToLower(line)]; ok {
			s.apply(Binding{Action: a})
			return
		}
		if s.Key(line) {
			return
		}
		s.Operate(line)
	}
}

func (s *Session) apply(b Binding) {
	switch b.Action {
	case ActionEnter:
		s.Enter()
	case ActionDuplicate:
		s.Duplicate()
	case ActionDrop:
		s.Drop()
	case ActionClear:
		s.ClearAll()
	case ActionBackspace:
		s.Backspace()
	case ActionOperate:
		s.Operate(b.Op.String())
	case ActionDigit:
		s.Digit(b.Char)
	}
}

// flush pushes the pending input, if any.
func (s *Session) flush() {
	if s.input == "" {
		return
	}
	token := s.input
	s.input = ""
	s.engine.Push(token)
}

func (s *Session) trace(action string, attrs ...any) {
	attrs = append(attrs, "depth", s.engine.Len())
	if err := s.engine.Err(); err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	s.logger.Debug(action, attrs...)
}

// looksNumeric reports whether line begins the way a number does.
func looksNumeric(line string) bool {
	rest := strings.TrimLeft(line, "+-")
	if len(line)-len(rest) > 1 {
		return false
	}
	if strings.HasPrefix(rest, "Infinity") {
		return true
	}
	if rest == "" {
		return false
	}
	if rest[0] >= '0' && rest[0] <= '9' {
		return true
	}
	return rest[0] == '.' && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9'
}

package session

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/codex-k8s/rpncalc/internal/rpn"
)

// Action is a calculator gesture a key can trigger.
type Action int

const (
	// ActionEnter pushes the pending input, or duplicates the top value when there is none.
	ActionEnter Action = iota + 1
	// ActionDuplicate duplicates the top value.
	ActionDuplicate
	// ActionDrop discards the top value.
	ActionDrop
	// ActionClear empties the stack and the pending input.
	ActionClear
	// ActionBackspace removes the last character of the pending input.
	ActionBackspace
	// ActionOperate applies an operator.
	ActionOperate
	// ActionDigit appends a digit or decimal point to the pending input.
	ActionDigit
)

var actionNames = map[string]Action{
	"enter":     ActionEnter,
	"dup":       ActionDuplicate,
	"duplicate": ActionDuplicate,
	"drop":      ActionDrop,
	"clear":     ActionClear,
	"backspace": ActionBackspace,
}

// Binding is the effect of a key.
type Binding struct {
	Action Action
	// Op is set for ActionOperate.
	Op rpn.Op
	// Char is set for ActionDigit.
	Char string
}

// String renders the binding the way it is written in config files.
func (b Binding) String() string {
	switch b.Action {
	case ActionEnter:
		return "enter"
	case ActionDuplicate:
		return "dup"
	case ActionDrop:
		return "drop"
	case ActionClear:
		return "clear"
	case ActionBackspace:
		return "backspace"
	case ActionOperate:
		return b.Op.String()
	case ActionDigit:
		return b.Char
	default:
		return "?"
	}
}

// ParseBinding resolves a binding target: an action name, an operator token, a digit or ".".
func ParseBinding(target string) (Binding, error) {
	target = strings.TrimSpace(target)
	if a, ok := actionNames[strings.ToLower(target)]; ok {
		return Binding{Action: a}, nil
	}
	if op, ok := rpn.ParseOp(target); ok {
		return Binding{Action: ActionOperate, Op: op}, nil
	}
	if isEntryChar(target) {
		return Binding{Action: ActionDigit, Char: target}, nil
	}
	return Binding{}, fmt.Errorf("unknown binding target %q", target)
}

// Keymap maps key names to bindings. Single-letter keys are stored lower-case.
type Keymap map[string]Binding

// DefaultKeymap returns the built-in keyboard layout.
func DefaultKeymap() Keymap {
	km := Keymap{
		"Enter":     {Action: ActionEnter},
		"Delete":    {Action: ActionDrop},
		"Escape":    {Action: ActionClear},
		"Backspace": {Action: ActionBackspace},
		"+":         {Action: ActionOperate, Op: rpn.OpAdd},
		"-":         {Action: ActionOperate, Op: rpn.OpSub},
		"*":         {Action: ActionOperate, Op: rpn.OpMul},
		"/":         {Action: ActionOperate, Op: rpn.OpDiv},
		"s":         {Action: ActionOperate, Op: rpn.OpSqrt},
		"p":         {Action: ActionOperate, Op: rpn.OpPow},
		"w":         {Action: ActionOperate, Op: rpn.OpSwap},
		".":         {Action: ActionDigit, Char: "."},
	}
	for d := '0'; d <= '9'; d++ {
		km[string(d)] = Binding{Action: ActionDigit, Char: string(d)}
	}
	return km
}

// NewKeymap layers overrides (key name -> binding target) over DefaultKeymap.
func NewKeymap(overrides map[string]string) (Keymap, error) {
	km := DefaultKeymap()
	for key, target := range overrides {
		b, err := ParseBinding(target)
		if err != nil {
			return nil, fmt.Errorf("binding for key %q: %w", key, err)
		}
		km[normalizeKey(key)] = b
	}
	return km, nil
}

// Lookup finds the binding for a key. Single letters match case-insensitively.
func (k Keymap) Lookup(key string) (Binding, bool) {
	if b, ok := k[key]; ok {
		return b, true
	}
	b, ok := k[normalizeKey(key)]
	return b, ok
}

// Keys returns the bound key names in sorted order.
func (k Keymap) Keys() []string {
	keys := make([]string, 0, len(k))
	for key := range k {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func normalizeKey(key string) string {
	if utf8.RuneCountInString(key) == 1 {
		return strings.ToLower(key)
	}
	return key
}

func isEntryChar(s string) bool {
	return len(s) == 1 && (s == "." || (s[0] >= '0' && s[0] <= '9'))
}

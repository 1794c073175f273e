// ABOUTME: Keybindings manager with O(1) key-to-action lookup for the stock controls
// ABOUTME: Overrides replace an action's default keys; conflicts are reported, not guessed

package keybindings

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/mauromedda/vtui/pkg/tui/key"
)

// Action names something a control does in response to a key.
type Action string

const (
	ActionLeft          Action = "left"
	ActionRight         Action = "right"
	ActionHome          Action = "home"
	ActionEnd           Action = "end"
	ActionDeleteBack    Action = "delete_back"
	ActionDeleteForward Action = "delete_forward"
	ActionKillLine      Action = "kill_line"
	ActionKillWord      Action = "kill_word"
	ActionYank          Action = "yank"
	ActionUndo          Action = "undo"
	ActionRedo          Action = "redo"
	ActionSubmit        Action = "submit"
	ActionPageUp        Action = "page_up"
	ActionPageDown      Action = "page_down"
)

// Bindings maps each action to the names of its keys, as key.ParseName
// accepts them.
type Bindings map[Action][]string

// Defaults returns the emacs-style bindings.
func Defaults() Bindings {
	return Bindings{
		ActionLeft:          {"left", "ctrl+b"},
		ActionRight:         {"right", "ctrl+f"},
		ActionHome:          {"home", "ctrl+a"},
		ActionEnd:           {"end", "ctrl+e"},
		ActionDeleteBack:    {"backspace", "ctrl+h"},
		ActionDeleteForward: {"delete", "ctrl+d"},
		ActionKillLine:      {"ctrl+k"},
		ActionKillWord:      {"ctrl+w", "alt+backspace"},
		ActionYank:          {"ctrl+y"},
		ActionUndo:          {"ctrl+z", "ctrl+_"},
		ActionRedo:          {"alt+z"},
		ActionSubmit:        {"enter"},
		ActionPageUp:        {"pgup"},
		ActionPageDown:      {"pgdown"},
	}
}

// ConflictInfo describes a key bound to more than one action.
type ConflictInfo struct {
	Key     string
	Actions []Action
}

func (c ConflictInfo) String() string {
	names := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		names[i] = string(a)
	}
	return fmt.Sprintf("%s bound to %s", c.Key, strings.Join(names, ", "))
}

// Manager provides O(1) key-to-action lookup.
type Manager struct {
	bindings Bindings
	lookup   map[key.Key][]Action
}

// New merges overrides onto the defaults. Unknown actions and unparsable
// key names are errors.
func New(overrides Bindings) (*Manager, error) {
	bindings := Defaults()
	for action := range overrides {
		if _, ok := bindings[action]; !ok {
			return nil, fmt.Errorf("unknown action %q", action)
		}
	}
	maps.Copy(bindings, overrides)

	m := &Manager{bindings: bindings, lookup: make(map[key.Key][]Action)}
	for _, action := range slices.Sorted(maps.Keys(bindings)) {
		for _, name := range bindings[action] {
			k, err := key.ParseName(name)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", action, err)
			}
			m.lookup[k] = append(m.lookup[k], action)
		}
	}
	return m, nil
}

var defaultManager = sync.OnceValue(func() *Manager {
	m, err := New(nil)
	if err != nil {
		panic(err)
	}
	return m
})

// Default returns the manager for the default bindings.
func Default() *Manager { return defaultManager() }

// ActionForKey returns the action bound to k, or "" if unbound. A key with
// conflicting bindings resolves to the first action in name order.
func (m *Manager) ActionForKey(k key.Key) Action {
	if actions := m.lookup[k]; len(actions) > 0 {
		return actions[0]
	}
	return ""
}

// Keys returns the key names bound to a.
func (m *Manager) Keys(a Action) []string {
	return slices.Clone(m.bindings[a])
}

// Conflicts lists keys bound to more than one action, sorted by key name.
func (m *Manager) Conflicts() []ConflictInfo {
	var conflicts []ConflictInfo
	for k, actions := range m.lookup {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k.String(), Actions: actions})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int { return strings.Compare(a.Key, b.Key) })
	return conflicts
}

// FormatAll returns a table of every action and its keys.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	for _, action := range slices.Sorted(maps.Keys(m.bindings)) {
		fmt.Fprintf(&b, "%-15s %s\n", action, strings.Join(m.bindings[action], ", "))
	}
	return b.String()
}

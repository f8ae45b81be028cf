// Package session models the per-browser session state: the self-declared
// role and the theme preference. Transitions go through a pure reducer so
// every observer sees either the pre- or post-transition snapshot, never a
// partially applied one.
package session

import "github.com/userdeck/userdeck/internal/shared"

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is an immutable snapshot of the session.
type State struct {
	Role  shared.Role `json:"role"`
	Theme Theme       `json:"theme"`
}

// Initial returns the state of a fresh, unauthenticated session.
func Initial() State {
	return State{Role: shared.RoleNone, Theme: ThemeLight}
}

// Authenticated reports whether a role has been declared.
func (s State) Authenticated() bool {
	return s.Role != shared.RoleNone
}

// Action is a session state transition request.
type Action interface {
	isAction()
}

// Login declares a role. The role is taken at face value: there is no
// credential check, which is the documented product behavior.
type Login struct {
	Role shared.Role
}

// Logout clears the declared role. The theme preference survives.
type Logout struct{}

// SetTheme replaces the theme preference.
type SetTheme struct {
	Theme Theme
}

func (Login) isAction()    {}
func (Logout) isAction()   {}
func (SetTheme) isAction() {}

// Reduce applies an action to a state snapshot and returns the next snapshot.
// Unknown or invalid actions leave the state unchanged.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case Login:
		if !a.Role.Valid() {
			return state
		}
		state.Role = a.Role
	case Logout:
		state.Role = shared.RoleNone
	case SetTheme:
		if a.Theme != ThemeLight && a.Theme != ThemeDark {
			return state
		}
		state.Theme = a.Theme
	}
	return state
}

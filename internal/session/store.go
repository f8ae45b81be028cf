package session

import "github.com/userdeck/userdeck/internal/shared"

const (
	roleKey  = "role"
	themeKey = "theme"
)

// StateFrom restores the session state persisted in the cookie session.
// An absent or unknown role restores as unauthenticated; an absent theme
// restores as light.
func StateFrom(sess *shared.Session) State {
	state := Initial()
	if sess == nil {
		return state
	}
	if role, ok := shared.ParseRole(sess.Get(roleKey)); ok {
		state.Role = role
	}
	if theme := Theme(sess.Get(themeKey)); theme == ThemeLight || theme == ThemeDark {
		state.Theme = theme
	}
	return state
}

// Dispatch reduces the action against the current state and writes the
// resulting snapshot through to the cookie session. It returns the new state.
func Dispatch(sess *shared.Session, state State, action Action) State {
	next := Reduce(state, action)
	if sess == nil {
		return next
	}
	if next.Role == shared.RoleNone {
		sess.Delete(roleKey)
	} else {
		sess.Set(roleKey, string(next.Role))
	}
	sess.Set(themeKey, string(next.Theme))
	return next
}

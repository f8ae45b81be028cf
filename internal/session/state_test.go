package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/userdeck/userdeck/internal/shared"
)

func TestReduceLogin(t *testing.T) {
	state := Reduce(Initial(), Login{Role: shared.RoleAdmin})
	assert.Equal(t, shared.RoleAdmin, state.Role)
	assert.True(t, state.Authenticated())
}

func TestReduceLoginAcceptsAnyDeclaredRole(t *testing.T) {
	for _, role := range shared.Roles() {
		state := Reduce(Initial(), Login{Role: role})
		assert.Equal(t, role, state.Role)
	}
}

func TestReduceLoginRejectsUnknownRole(t *testing.T) {
	state := Reduce(Initial(), Login{Role: shared.Role("Root")})
	assert.False(t, state.Authenticated())
}

func TestReduceLogoutKeepsTheme(t *testing.T) {
	state := Reduce(Initial(), Login{Role: shared.RoleEditor})
	state = Reduce(state, SetTheme{Theme: ThemeDark})
	state = Reduce(state, Logout{})

	assert.False(t, state.Authenticated())
	assert.Equal(t, ThemeDark, state.Theme)
}

func TestReduceReturnsNewSnapshot(t *testing.T) {
	before := Initial()
	after := Reduce(before, Login{Role: shared.RoleViewer})

	assert.Equal(t, shared.RoleNone, before.Role)
	assert.Equal(t, shared.RoleViewer, after.Role)
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestReduceInvalidTheme(t *testing.T) {
	state := Reduce(Initial(), SetTheme{Theme: Theme("sepia")})
	assert.Equal(t, ThemeLight, state.Theme)
}

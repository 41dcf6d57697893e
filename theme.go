package portfolio

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// ThemeKey is the storage slot the visitor's display preference lives under.
const ThemeKey = "theme"

// Theme is a visitor's light/dark display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is one of the two known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Dark reports whether the "dark" marker class belongs on the document root.
func (t Theme) Dark() bool {
	return t == ThemeDark
}

// ThemeStore is the single capability the theme controller needs: one
// key-value slot. Implementations must report missing or unreadable
// values as absent instead of failing.
type ThemeStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// ThemeController resolves and mutates one client's theme preference.
type ThemeController struct {
	store ThemeStore
}

// NewThemeController creates a controller backed by the given store.
func NewThemeController(store ThemeStore) *ThemeController {
	return &ThemeController{store: store}
}

// Current resolves the active theme: a valid stored value wins, then the
// system dark preference, then light.
func (tc *ThemeController) Current(systemDark bool) Theme {
	if v, ok := tc.store.Get(ThemeKey); ok {
		if t := Theme(v); t.Valid() {
			return t
		}
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle flips the resolved theme, persists the new value, and returns it.
// The returned theme is valid even when persisting failed; the caller
// decides whether the write error is worth logging.
func (tc *ThemeController) Toggle(systemDark bool) (Theme, error) {
	next := tc.Current(systemDark).Toggle()
	if err := tc.store.Set(ThemeKey, string(next)); err != nil {
		return next, err
	}
	return next, nil
}

// sessionThemeStore keeps the preference in the client's cookie session,
// so the slot survives across visits without any server-side state.
type sessionThemeStore struct {
	c echo.Context
}

// NewSessionThemeStore returns a ThemeStore bound to the request's
// cookie session.
func NewSessionThemeStore(c echo.Context) ThemeStore {
	return &sessionThemeStore{c: c}
}

func (s *sessionThemeStore) Get(key string) (string, bool) {
	sess, err := session.Get(prefsSessionName, s.c)
	if err != nil {
		return "", false
	}
	v, ok := sess.Values[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *sessionThemeStore) Set(key, value string) error {
	sess, err := session.Get(prefsSessionName, s.c)
	if err != nil {
		return err
	}
	sess.Values[key] = value
	return sess.Save(s.c.Request(), s.c.Response())
}

// MemoryThemeStore is an in-memory ThemeStore. Writes counts every Set,
// which lets tests assert that each toggle persisted.
type MemoryThemeStore struct {
	Values map[string]string
	Writes int
}

// NewMemoryThemeStore creates an empty in-memory store.
func NewMemoryThemeStore() *MemoryThemeStore {
	return &MemoryThemeStore{Values: make(map[string]string)}
}

func (m *MemoryThemeStore) Get(key string) (string, bool) {
	v, ok := m.Values[key]
	return v, ok && v != ""
}

func (m *MemoryThemeStore) Set(key, value string) error {
	m.Values[key] = value
	m.Writes++
	return nil
}

// systemPrefersDark reads the client hint advertised via Accept-CH.
// Browsers that do not send the hint simply fall through to the default.
func systemPrefersDark(c echo.Context) bool {
	return c.Request().Header.Get("Sec-CH-Prefers-Color-Scheme") == "dark"
}

// themeFor resolves the theme for the current request.
func themeFor(c echo.Context) Theme {
	return NewThemeController(NewSessionThemeStore(c)).Current(systemPrefersDark(c))
}

package domain

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the small per-session presentation state the storefront
// remembers across visits.
type Preferences struct {
	Theme string `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight}
}

package studio

import (
	"strings"

	"comicstudio/internal/universe"
)

const (
	ViewDashboard  = "dashboard"
	ViewCharacters = "characters"
	ViewLocations  = "locations"
	ViewScripts    = "scripts"
	ViewCustom     = "custom"

	customPrefix = "custom_"
)

// CustomView is the view id of a custom category page.
func CustomView(categoryID string) string {
	return customPrefix + categoryID
}

func customCategoryID(view string) (string, bool) {
	id, ok := strings.CutPrefix(view, customPrefix)
	return id, ok && id != ""
}

// Target is what a view id renders for one universe.
type Target struct {
	View     string
	Category universe.Category
}

// Resolve maps any view id to a target. Ids that name nothing, including
// custom views of deleted categories, fall back to the dashboard.
func Resolve(u universe.Universe, view string) Target {
	switch view {
	case ViewCharacters, ViewLocations, ViewScripts:
		return Target{View: view}
	}
	if id, ok := customCategoryID(view); ok {
		for _, c := range u.CustomCategories {
			if c.ID == id {
				return Target{View: ViewCustom, Category: c}
			}
		}
	}
	return Target{View: ViewDashboard}
}

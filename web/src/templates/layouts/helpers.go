package layouts

import "github.com/nfrund/petshop/web/src/templates/components"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" && title != components.Brand {
		return title + " - " + components.Brand
	}
	return components.Brand
}

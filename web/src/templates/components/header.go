package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Brand is the shop name shown in the header and footer.
const Brand = "Pet Shop"

// Header renders the static branding strip at the top of the page.
func Header() cmp.Node {
	return g.Header(
		g.Class("header"),
		g.Div(
			g.Class("header__brand"),
			g.Span(g.Class("header__logo"), g.Aria("hidden", "true"), cmp.Text("🐾")),
			g.Span(g.Class("header__name"), cmp.Text(Brand)),
		),
	)
}

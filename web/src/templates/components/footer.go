package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Copyright is the fixed closing line of the page.
const Copyright = "© 2024 " + Brand + ". All rights reserved."

// Footer renders the static closing strip at the bottom of the page.
func Footer() cmp.Node {
	return g.Footer(
		g.Class("footer"),
		g.P(g.Class("footer__text"), cmp.Text(Copyright)),
	)
}

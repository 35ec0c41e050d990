package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// ViewMoreButton renders the decorative call-to-action. It has no action bound
// to it: no form, no link, no script hook.
func ViewMoreButton(label string) cmp.Node {
	return g.Button(
		g.Type("button"),
		g.Class("view-more"),
		cmp.Text(label),
	)
}

package pages

import (
	"github.com/nfrund/petshop/internal/domain"
	"github.com/nfrund/petshop/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Home composes the landing page body. The order is fixed: header, hero
// heading, the tiles followed by the call-to-action, footer.
func Home(page domain.HomePage, assetBase string) cmp.Node {
	return g.Div(
		g.Class("home"),
		components.Header(),
		g.Main(
			components.Heading(page.Hero, assetBase),
			g.Div(
				g.Class("container"),
				g.Div(
					g.Class("tiles"),
					cmp.Map(page.Tiles, func(tile domain.DisplayCard) cmp.Node {
						return components.Tile(tile, assetBase)
					}),
				),
				components.ViewMoreButton(page.CallToAction),
			),
		),
		components.Footer(),
	)
}

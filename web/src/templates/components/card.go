package components

import (
	"path"

	"github.com/nfrund/petshop/internal/assets"
	"github.com/nfrund/petshop/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// imageSrc returns the image's URL relative to the document.
func imageSrc(assetBase string, img domain.ImageRef) string {
	return path.Join(assetBase, assets.ImagePath(img.Name))
}

// Heading renders the hero banner: a large image with the page title and a
// short description.
func Heading(card domain.DisplayCard, assetBase string) cmp.Node {
	return g.Section(
		g.Class("heading"),
		g.Img(
			g.Class("heading__image"),
			g.Src(imageSrc(assetBase, card.Image)),
			g.Alt(card.AltText()),
		),
		g.Div(
			g.Class("heading__text"),
			g.H1(g.Class("heading__title"), cmp.Text(card.Title)),
			g.P(g.Class("heading__description"), cmp.Text(card.Description)),
		),
	)
}

// Tile renders one promotional card below the hero banner.
func Tile(card domain.DisplayCard, assetBase string) cmp.Node {
	return g.Article(
		g.Class("tile"),
		g.Img(
			g.Class("tile__image"),
			g.Src(imageSrc(assetBase, card.Image)),
			g.Alt(card.AltText()),
		),
		g.H2(g.Class("tile__title"), cmp.Text(card.Title)),
		g.P(g.Class("tile__description"), cmp.Text(card.Description)),
	)
}

package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/petshop/internal/view"
	cmp "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"
)

// Description is the document's meta description.
const Description = "Pet food, toys, accessories and grooming supplies for every kind of pet."

// Base wraps the page content in a complete HTML5 document. stylesheet is the
// href of the page's CSS; an empty value omits the link.
func Base(title, stylesheet string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		doc := c.HTML5(c.HTML5Props{
			Title:       CalculateTitle(title),
			Description: Description,
			Language:    "en",
			Head: []cmp.Node{
				cmp.If(stylesheet != "", g.Link(g.Rel("stylesheet"), g.Href(stylesheet))),
			},
			Body: []cmp.Node{view.AdaptTemplToGomponentContext(ctx, content)},
		})
		return doc.Render(w)
	})
}

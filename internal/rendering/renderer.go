package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Renderer defines the contract for rendering any supported component (templ, gomponents, etc.).
// It uses any for the component input to support heterogeneous types.
type Renderer interface {
	// RenderComponent renders a component to a slice of bytes.
	RenderComponent(ctx context.Context, component any) ([]byte, error)

}

// UniversalRenderer is the concrete implementation that handles rendering for multiple component types.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode defines the structural interface for gomponents.Node,
// which only requires an io.Writer.
type gomponentNode interface {
	Render(w io.Writer) error
}

// render inspects the component type and calls the appropriate render method.
func (tr *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)

	case gomponentNode:
		return c.Render(w)

	default:
		return fmt.Errorf("unsupported component type: %T. Component must be templ.Component or implement Render(io.Writer) error (like gomponents.Node)", component)
	}
}

// RenderComponent implements the Renderer interface.
func (tr *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tr.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

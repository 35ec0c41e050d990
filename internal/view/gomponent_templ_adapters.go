package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// --- GOMPONENTS -> TEMPL ADAPTER ---

// GomponentToTemplAdapter wraps a gomponents.Node to satisfy the templ.Component interface.
// This allows Gomponents content to be rendered inside Templ layouts.
type GomponentToTemplAdapter struct {
	Node gomponents.Node
}

// Render implements the templ.Component interface by delegating the writing to the
// underlying gomponents.Node.
func (a *GomponentToTemplAdapter) Render(ctx context.Context, w io.Writer) error {
	return a.Node.Render(w)
}

// AdaptGomponentToTempl converts a Gomponents Node into a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return &GomponentToTemplAdapter{Node: node}
}

// --- TEMPL -> GOMPONENTS ADAPTER ---

// TemplToGomponentAdapter wraps a templ.Component to satisfy the gomponents.Node interface.
// Gomponents' Render does not take a context, so the adapter carries the one
// the component should see.
type TemplToGomponentAdapter struct {
	Ctx       context.Context
	Component templ.Component
}

// Render implements the gomponents.Node interface.
func (a *TemplToGomponentAdapter) Render(w io.Writer) error {
	ctx := a.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return a.Component.Render(ctx, w)
}

// AdaptTemplToGomponentContext converts a Templ Component into a Gomponents
// Node rendered with ctx, for layouts that are themselves rendered with one.
func AdaptTemplToGomponentContext(ctx context.Context, component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Ctx: ctx, Component: component}
}

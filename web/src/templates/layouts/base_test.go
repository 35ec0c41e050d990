package layouts

import (
	"context"
	"strings"
	"testing"

	"github.com/nfrund/petshop/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func TestCalculateTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "Pet Shop"},
		{in: "Pet Shop", want: "Pet Shop"},
		{in: "Home", want: "Home - Pet Shop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateTitle(tt.in), "CalculateTitle(%q)", tt.in)
	}
}

func TestBase_WrapsContentInDocument(t *testing.T) {
	body := view.AdaptGomponentToTempl(g.P(cmp.Text("inner")))

	var sb strings.Builder
	require.NoError(t, Base("Home", "assets/home.css", body).Render(context.Background(), &sb))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"), out)
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "<title>Home - Pet Shop</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="assets/home.css">`)
	assert.Contains(t, out, "<body><p>inner</p></body>")
}

func TestBase_OmitsEmptyStylesheet(t *testing.T) {
	body := view.AdaptGomponentToTempl(g.P(cmp.Text("inner")))

	var sb strings.Builder
	require.NoError(t, Base("", "", body).Render(context.Background(), &sb))
	assert.NotContains(t, sb.String(), "stylesheet")
}

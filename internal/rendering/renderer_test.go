package rendering

import (
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func TestUniversalRenderer_RenderComponent(t *testing.T) {
	r := NewUniversalRenderer()
	ctx := context.Background()

	tests := []struct {
		name      string
		component any
		want      string
		wantErr   bool
	}{
		{
			name:      "gomponents node",
			component: g.H1(gomponents.Text("Pet Shop")),
			want:      "<h1>Pet Shop</h1>",
		},
		{
			name: "templ component",
			component: templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				_, err := io.WriteString(w, "<p>templ</p>")
				return err
			}),
			want: "<p>templ</p>",
		},
		{
			name:      "unsupported type",
			component: "just a string",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.RenderComponent(ctx, tt.component)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported component type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nfrund/petshop/internal/config"
	"github.com/nfrund/petshop/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree in an isolated working directory so a stray
// .env or CONFIG_PATH cannot leak into the test.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("PETSHOP_ASSET_DIR", "")

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "petshop v"+version+"\n", out)
}

func TestRender_WritesSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")

	out, err := execute(t, "render", "--out", dir)
	require.NoError(t, err)

	for _, name := range []string{
		"index.html",
		"assets/css/home.css",
		"assets/images/pets.svg",
		"assets/images/pet_food.svg",
		"assets/images/pet_toys.svg",
		"assets/images/pet_groom.svg",
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(name)))
		assert.Contains(t, out, name+"\t")
	}

	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Welcome to Pet Shop")
	assert.Equal(t, 1, strings.Count(string(html), "<button"))
}

func TestRender_IsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := execute(t, "render", "-o", dir)
	require.NoError(t, err)
	second, err := execute(t, "render", "-o", dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_UsesConfigFile(t *testing.T) {
	base := t.TempDir()
	out := filepath.Join(base, "site")
	cfgPath := filepath.Join(base, "petshop.yaml")
	yaml := "site:\n  out_dir: " + out + "\n  asset_base: static\n  title: Spring Sale\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0644))

	_, err := execute(t, "--config", cfgPath, "render")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "static", "css", "home.css"))
	html, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Spring Sale - Pet Shop</title>")
}

func TestRender_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logger:\n  format: xml\n"), 0644))

	_, err := execute(t, "--config", cfgPath, "render")
	assert.Error(t, err)
}

func TestRender_MissingAssetDir(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "petshop.yaml")
	yaml := "site:\n  asset_dir: /definitely/missing/assets\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0644))

	_, err := execute(t, "--config", cfgPath, "render", "--out", t.TempDir())
	assert.Error(t, err)
}

func TestRender_RejectsOutDirInsideAssetDir(t *testing.T) {
	assetDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assetDir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assetDir, "css", "home.css"), []byte("body{}"), 0o644))
	cfgPath := filepath.Join(t.TempDir(), "petshop.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("site:\n  asset_dir: "+assetDir+"\n"), 0o644))

	out := filepath.Join(assetDir, "dist")
	_, err := execute(t, "--config", cfgPath, "render", "--out", out)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.NoDirExists(t, out)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Page is valid (3 tiles, assets from embedded)")
}

func TestWatch_RequiresAssetDir(t *testing.T) {
	_, err := execute(t, "watch", "--out", t.TempDir())
	assert.ErrorIs(t, err, errNoAssetDir)
}

func TestExportPDF_UnknownFormat(t *testing.T) {
	_, err := execute(t, "export", "pdf", "--format", "b0", "--out", filepath.Join(t.TempDir(), "x.pdf"))
	assert.ErrorIs(t, err, export.ErrUnknownPaper)
}

func TestExportPDF_MissingChrome(t *testing.T) {
	t.Setenv("CHROME_BIN", "/definitely/missing/chrome")
	target := filepath.Join(t.TempDir(), "page.pdf")

	_, err := execute(t, "export", "pdf", "--out", target)
	assert.Error(t, err)
	assert.NoFileExists(t, target)
}

func TestWritePDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	target := filepath.Join(dir, "flyer.pdf")

	require.NoError(t, writePDF(context.Background(), target, []byte("%PDF-1.7")))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
	assert.NoFileExists(t, target+".tmp")

	require.NoError(t, writePDF(context.Background(), target, []byte("%PDF-2.0")))
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-2.0", string(data))
}

func TestWritePDF_ParentIsAFile(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))

	assert.Error(t, writePDF(context.Background(), filepath.Join(parent, "page.pdf"), []byte("%PDF")))
}

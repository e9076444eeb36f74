package mailer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".html"), []byte(body), 0o644))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "low_moisture", `<p>{{.PlantName}}: {{.Moisture}}%</p>`)

	r := NewRenderer(dir)
	html, err := r.Render("low_moisture", map[string]interface{}{
		"PlantName": "Hebe",
		"Moisture":  "12.5",
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hebe: 12.5%</p>", html)
}

func TestRenderEscapesHTML(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "low_moisture", `<p>{{.PlantName}}</p>`)

	r := NewRenderer(dir)
	html, err := r.Render("low_moisture", map[string]interface{}{
		"PlantName": `<script>alert("x")</script>`,
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.Render("nope", nil)
	assert.Error(t, err)
}

func TestRendererCachesForever(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "low_moisture", `v1 {{.PlantName}}`)

	r := NewRenderer(dir)
	first, err := r.Render("low_moisture", map[string]interface{}{"PlantName": "Hebe"})
	require.NoError(t, err)
	assert.Equal(t, "v1 Hebe", first)

	// Rewriting the file must not change anything: the cache is populated
	// lazily and never invalidated at runtime.
	writeTemplate(t, dir, "low_moisture", `v2 {{.PlantName}}`)
	second, err := r.Render("low_moisture", map[string]interface{}{"PlantName": "Hebe"})
	require.NoError(t, err)
	assert.Equal(t, "v1 Hebe", second)
}

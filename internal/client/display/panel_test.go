package display

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = "<h2>Summary</h2><p>All <em>good</em>.</p><script>x()</script>"

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestPanel_SetSummaryPrintsImmediately(t *testing.T) {
	var out bytes.Buffer
	p := NewPanel(&out)

	p.SetSummary(sampleHTML)
	assert.Equal(t, models.Summary(sampleHTML), p.Summary())
	assert.Contains(t, out.String(), PanelTitle)
	assert.Contains(t, out.String(), "All good.")
	assert.NotContains(t, out.String(), "x()")
}

func TestPanel_RenderEmpty(t *testing.T) {
	var out bytes.Buffer
	p := NewPanel(nil)
	require.NoError(t, p.Render(&out))
	assert.Contains(t, out.String(), "Upload a report")
}

func TestPanel_SaveNothing(t *testing.T) {
	_, err := NewPanel(nil).Save("")
	assert.ErrorIs(t, err, ErrNoSummary)
}

func TestPanel_SaveDefaultDirVerbatim(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	p := NewPanel(nil)
	p.SetSummary(sampleHTML)

	first, err := p.Save("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, DownloadDir, DefaultSaveName), first)

	got, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, sampleHTML, string(got))

	second, err := p.Save("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, DownloadDir, "report-summary (1).html"), second)
}

func TestPanel_SaveExplicitPaths(t *testing.T) {
	tmp := t.TempDir()
	p := NewPanel(nil)
	p.SetSummary(sampleHTML)

	file := filepath.Join(tmp, "nested", "mine.html")
	got, err := p.Save(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	got, err = p.Save(tmp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, DefaultSaveName), got)
}

func TestPanel_Clear(t *testing.T) {
	p := NewPanel(nil)
	p.SetSummary("<p>x</p>")
	p.Clear()
	assert.Empty(t, p.Summary())
}

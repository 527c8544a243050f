package display

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/filex"
)

const (
	PanelTitle      = "Sample Report Summary"
	DownloadDir     = "download"
	DefaultSaveName = "report-summary.html"
)

var ErrNoSummary = errors.New("no summary to save yet")

// Panel holds the latest summary for the session. When out is set, a new
// summary is printed as soon as it arrives.
type Panel struct {
	mu      sync.Mutex
	summary models.Summary
	out     io.Writer
}

func NewPanel(out io.Writer) *Panel {
	return &Panel{out: out}
}

// SetSummary stores s verbatim and shows it.
func (p *Panel) SetSummary(s models.Summary) {
	p.mu.Lock()
	p.summary = s
	out := p.out
	p.mu.Unlock()

	if out != nil {
		_ = p.Render(out)
	}
}

func (p *Panel) Summary() models.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary
}

func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary = ""
}

// Render prints the panel: title then the rendered summary, if any.
func (p *Panel) Render(w io.Writer) error {
	s := p.Summary()

	fmt.Fprintln(w, PanelTitle)
	fmt.Fprintln(w, "=====================")
	if s == "" {
		_, err := fmt.Fprintln(w, "Upload a report to see its summary here.")
		return err
	}
	return Render(w, string(s))
}

// Save writes the summary HTML byte for byte. An empty target saves into
// DownloadDir; a directory target gets DefaultSaveName inside it. Existing
// files are never overwritten when the name is chosen here. It returns the
// path written.
func (p *Panel) Save(target string) (string, error) {
	s := p.Summary()
	if s == "" {
		return "", ErrNoSummary
	}

	var path string
	if target == "" {
		dir, err := filex.EnsureDir(DownloadDir)
		if err != nil {
			return "", err
		}
		path = filex.UniquePath(dir, DefaultSaveName)
	} else if fi, err := os.Stat(target); err == nil && fi.IsDir() {
		path = filex.UniquePath(target, DefaultSaveName)
	} else {
		dir, err := filex.EnsureDir(filepath.Dir(target))
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, filepath.Base(target))
	}

	if err := filex.WriteFile(path, []byte(s), 0o600); err != nil {
		return "", fmt.Errorf("save summary: %w", err)
	}
	return path, nil
}

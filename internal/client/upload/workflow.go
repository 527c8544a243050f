package upload

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/medreport/internal/client/client"
	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/logging"
)

type State int

const (
	Idle State = iota
	FileSelected
	Uploading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FileSelected:
		return "file selected"
	case Uploading:
		return "uploading"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TokenSource reports the current session token ("" when signed out).
type TokenSource interface {
	Token(ctx context.Context) string
}

// Uploader sends a report and returns its summary.
type Uploader interface {
	Upload(ctx context.Context, file models.PendingFile) (models.Summary, error)
}

// Notifier shows transient messages and the busy indicator.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Busy(on bool)
}

// AuthPrompter opens the sign-in prompt.
type AuthPrompter interface {
	RequestAuth(ctx context.Context)
}

// SummarySink receives the summary of a successful upload.
type SummarySink interface {
	SetSummary(s models.Summary)
}

// Workflow is the uploader state machine. It is safe for concurrent use;
// a second Upload while one is running fails with ErrBusy.
type Workflow struct {
	tokens   TokenSource
	uploader Uploader
	notifier Notifier
	prompter AuthPrompter
	sink     SummarySink
	load     func(path string) (models.PendingFile, error)
	logger   logging.Logger

	mu         sync.Mutex
	state      State
	consent    bool
	dragActive bool
	file       *models.PendingFile
	input      string
}

type Option func(*Workflow)

// WithLoader replaces LoadPendingFile, e.g. to avoid the disk in tests.
func WithLoader(load func(path string) (models.PendingFile, error)) Option {
	return func(w *Workflow) { w.load = load }
}

func WithLogger(l logging.Logger) Option {
	return func(w *Workflow) { w.logger = l }
}

func NewWorkflow(tokens TokenSource, uploader Uploader, notifier Notifier, prompter AuthPrompter, sink SummarySink, opts ...Option) *Workflow {
	w := &Workflow{
		tokens:   tokens,
		uploader: uploader,
		notifier: notifier,
		prompter: prompter,
		sink:     sink,
		load:     LoadPendingFile,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) Consent() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.consent
}

func (w *Workflow) DragActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dragActive
}

// File returns a copy of the selected file, or nil.
func (w *Workflow) File() *models.PendingFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	f := *w.file
	return &f
}

// InputValue is the path last entered through the picker. It is cleared
// when a picked file is rejected and after a successful upload so the same
// path can be chosen again.
func (w *Workflow) InputValue() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

func (w *Workflow) SetConsent(agreed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.consent = agreed
	if !agreed {
		w.dragActive = false
	}
}

// Drag tracks a drag hovering over the drop zone. The zone only lights up
// once consent is given.
func (w *Workflow) Drag(over bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dragActive = over && w.consent
}

// Pick selects path through the file picker. Consent is not checked here,
// only at upload time.
func (w *Workflow) Pick(ctx context.Context, path string) error {
	if !w.authenticated(ctx) {
		return ErrAuthRequired
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Uploading {
		return ErrBusy
	}

	w.input = path
	if err := w.selectLocked(ctx, path); err != nil {
		w.input = ""
		return err
	}
	return nil
}

// Drop selects path dropped onto the drop zone. Consent must already be
// given.
func (w *Workflow) Drop(ctx context.Context, path string) error {
	w.mu.Lock()
	w.dragActive = false
	w.mu.Unlock()

	if !w.authenticated(ctx) {
		return ErrAuthRequired
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Uploading {
		return ErrBusy
	}
	if !w.consent {
		return w.rejectLocked(MsgConsentRequired)
	}
	return w.selectLocked(ctx, path)
}

func (w *Workflow) selectLocked(ctx context.Context, path string) error {
	f, err := w.load(path)
	if err != nil {
		w.logger.Warn(ctx, "cannot read selected file", "path", path, "error", err)
		w.notifier.Error(fmt.Sprintf("Cannot read %s", path))
		return fmt.Errorf("load %s: %w", path, err)
	}

	if err := Validate(f); err != nil {
		w.notifier.Error(err.Error())
		return err
	}

	w.file = &f
	w.state = FileSelected
	w.logger.Debug(ctx, "report selected", "file", f.Name, "bytes", f.Size)
	return nil
}

func (w *Workflow) rejectLocked(msg string) error {
	w.notifier.Error(msg)
	return &ValidationError{Message: msg}
}

// Upload sends the selected file. On success the summary goes to the sink,
// the selection is dropped and the workflow is Idle again. On failure the
// file stays selected for a retry.
func (w *Workflow) Upload(ctx context.Context) (models.Summary, error) {
	w.mu.Lock()
	if w.state == Uploading {
		w.mu.Unlock()
		return "", ErrBusy
	}
	if w.file == nil {
		err := w.rejectLocked(MsgNoFile)
		w.mu.Unlock()
		return "", err
	}
	if !w.consent {
		err := w.rejectLocked(MsgConsentRequired)
		w.mu.Unlock()
		return "", err
	}
	w.mu.Unlock()

	if !w.authenticated(ctx) {
		return "", ErrAuthRequired
	}

	w.mu.Lock()
	if w.state == Uploading || w.file == nil {
		w.mu.Unlock()
		return "", ErrBusy
	}
	file := *w.file
	w.state = Uploading
	w.mu.Unlock()

	w.notifier.Busy(true)
	summary, err := w.uploader.Upload(ctx, file)
	w.notifier.Busy(false)

	w.mu.Lock()
	if err != nil {
		w.state = FileSelected
		w.mu.Unlock()
		w.notifier.Error(client.MessageOr(err, MsgUploadFailed))
		return "", err
	}
	w.file = nil
	w.input = ""
	w.state = Idle
	w.mu.Unlock()

	w.sink.SetSummary(summary)
	w.notifier.Success(MsgUploaded)
	return summary, nil
}

// Reset returns the uploader to a fresh Idle state with consent cleared, as
// after navigating back to the landing screen.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Uploading {
		return
	}
	w.state = Idle
	w.file = nil
	w.input = ""
	w.consent = false
	w.dragActive = false
}

func (w *Workflow) authenticated(ctx context.Context) bool {
	if w.tokens.Token(ctx) != "" {
		return true
	}
	w.prompter.RequestAuth(ctx)
	return false
}

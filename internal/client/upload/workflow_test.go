package upload

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/medreport/internal/client/client"
	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeTokens struct{ token string }

func (f *fakeTokens) Token(context.Context) string { return f.token }

type fakeUploader struct {
	mu      sync.Mutex
	calls   int
	summary models.Summary
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeUploader) Upload(ctx context.Context, file models.PendingFile) (models.Summary, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.summary, f.err
}

func (f *fakeUploader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	busy      []bool
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *fakeNotifier) Busy(on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.busy = append(n.busy, on)
}

type fakePrompter struct{ calls int }

func (p *fakePrompter) RequestAuth(context.Context) { p.calls++ }

type fakeSink struct{ got []models.Summary }

func (s *fakeSink) SetSummary(sum models.Summary) { s.got = append(s.got, sum) }

type harness struct {
	wf       *Workflow
	tokens   *fakeTokens
	uploader *fakeUploader
	notifier *fakeNotifier
	prompter *fakePrompter
	sink     *fakeSink
	files    map[string]models.PendingFile
}

func newHarness(t *testing.T, token string) *harness {
	t.Helper()
	h := &harness{
		tokens:   &fakeTokens{token: token},
		uploader: &fakeUploader{summary: "<h2>Summary</h2>"},
		notifier: &fakeNotifier{},
		prompter: &fakePrompter{},
		sink:     &fakeSink{},
		files: map[string]models.PendingFile{
			"/tmp/report.pdf": {Name: "report.pdf", Path: "/tmp/report.pdf", MIMEType: common.PDFMimeType, Size: 2 * 1024 * 1024},
			"/tmp/big.pdf":    {Name: "big.pdf", Path: "/tmp/big.pdf", MIMEType: common.PDFMimeType, Size: common.MaxReportSize + 1},
			"/tmp/edge.pdf":   {Name: "edge.pdf", Path: "/tmp/edge.pdf", MIMEType: common.PDFMimeType, Size: common.MaxReportSize},
			"/tmp/photo.png":  {Name: "photo.png", Path: "/tmp/photo.png", MIMEType: "image/png", Size: 100},
		},
	}
	load := func(path string) (models.PendingFile, error) {
		f, ok := h.files[path]
		if !ok {
			return models.PendingFile{}, errors.New("no such file")
		}
		return f, nil
	}
	h.wf = NewWorkflow(h.tokens, h.uploader, h.notifier, h.prompter, h.sink, WithLoader(load))
	return h
}

// ---- TESTS ----

func TestPick_LoggedOut_PromptsAndKeepsState(t *testing.T) {
	h := newHarness(t, "")

	err := h.wf.Pick(context.Background(), "/tmp/report.pdf")
	require.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, 1, h.prompter.calls)
	assert.Equal(t, Idle, h.wf.State())
	assert.Nil(t, h.wf.File())
}

func TestDrop_LoggedOut_PromptsAndAcceptsNothing(t *testing.T) {
	h := newHarness(t, "")
	h.wf.SetConsent(true)

	err := h.wf.Drop(context.Background(), "/tmp/report.pdf")
	require.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, 1, h.prompter.calls)
	assert.Equal(t, Idle, h.wf.State())
	assert.Nil(t, h.wf.File())
}

func TestDrop_WithoutConsent_Rejected(t *testing.T) {
	h := newHarness(t, "tok")

	err := h.wf.Drop(context.Background(), "/tmp/report.pdf")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgConsentRequired, ve.Message)
	assert.Equal(t, []string{MsgConsentRequired}, h.notifier.errors)
	assert.Equal(t, Idle, h.wf.State())
}

func TestDrop_WithConsent_Accepted(t *testing.T) {
	h := newHarness(t, "tok")
	h.wf.SetConsent(true)
	h.wf.Drag(true)
	require.True(t, h.wf.DragActive())

	require.NoError(t, h.wf.Drop(context.Background(), "/tmp/report.pdf"))
	assert.False(t, h.wf.DragActive())
	assert.Equal(t, FileSelected, h.wf.State())
	assert.Equal(t, "report.pdf", h.wf.File().Name)
}

func TestDrag_NeedsConsent(t *testing.T) {
	h := newHarness(t, "tok")

	h.wf.Drag(true)
	assert.False(t, h.wf.DragActive())

	h.wf.SetConsent(true)
	h.wf.Drag(true)
	assert.True(t, h.wf.DragActive())
	h.wf.Drag(false)
	assert.False(t, h.wf.DragActive())
}

func TestPick_Validation(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{name: "wrong type", path: "/tmp/photo.png", wantMsg: MsgPDFOnly},
		{name: "too large", path: "/tmp/big.pdf", wantMsg: MsgTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "tok")

			err := h.wf.Pick(context.Background(), tt.path)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantMsg, ve.Message)
			assert.Equal(t, []string{tt.wantMsg}, h.notifier.errors)
			assert.Equal(t, Idle, h.wf.State())
			assert.Empty(t, h.wf.InputValue())
		})
	}
}

func TestPick_RejectionKeepsPreviousSelection(t *testing.T) {
	h := newHarness(t, "tok")
	ctx := context.Background()

	require.NoError(t, h.wf.Pick(ctx, "/tmp/report.pdf"))
	require.Error(t, h.wf.Pick(ctx, "/tmp/photo.png"))

	assert.Equal(t, FileSelected, h.wf.State())
	assert.Equal(t, "report.pdf", h.wf.File().Name)
	assert.Empty(t, h.wf.InputValue())
}

func TestPick_ExactlyTenMiBAccepted(t *testing.T) {
	h := newHarness(t, "tok")
	require.NoError(t, h.wf.Pick(context.Background(), "/tmp/edge.pdf"))
	assert.Equal(t, FileSelected, h.wf.State())
}

func TestPick_UnreadableFile(t *testing.T) {
	h := newHarness(t, "tok")
	err := h.wf.Pick(context.Background(), "/tmp/missing.pdf")
	require.Error(t, err)
	assert.Len(t, h.notifier.errors, 1)
	assert.Equal(t, Idle, h.wf.State())
	assert.Empty(t, h.wf.InputValue())
}

func TestUpload_NoFile(t *testing.T) {
	h := newHarness(t, "tok")
	h.wf.SetConsent(true)

	_, err := h.wf.Upload(context.Background())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgNoFile, ve.Message)
	assert.Zero(t, h.uploader.Calls())
}

// Picker without consent, then upload without consent.
func TestUpload_WithoutConsent_RefusedStaysSelected(t *testing.T) {
	h := newHarness(t, "tok")
	ctx := context.Background()

	require.NoError(t, h.wf.Pick(ctx, "/tmp/report.pdf"))
	assert.Equal(t, FileSelected, h.wf.State())

	_, err := h.wf.Upload(ctx)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgConsentRequired, ve.Message)
	assert.Equal(t, FileSelected, h.wf.State())
	assert.Zero(t, h.uploader.Calls())
}

func TestUpload_TokenGone_PromptsNoNetwork(t *testing.T) {
	h := newHarness(t, "tok")
	ctx := context.Background()
	h.wf.SetConsent(true)
	require.NoError(t, h.wf.Pick(ctx, "/tmp/report.pdf"))

	h.tokens.token = ""
	_, err := h.wf.Upload(ctx)
	require.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, 1, h.prompter.calls)
	assert.Zero(t, h.uploader.Calls())
	assert.Equal(t, FileSelected, h.wf.State())
}

func TestUpload_Success(t *testing.T) {
	h := newHarness(t, "tok")
	ctx := context.Background()
	h.wf.SetConsent(true)
	require.NoError(t, h.wf.Pick(ctx, "/tmp/report.pdf"))
	require.Equal(t, "/tmp/report.pdf", h.wf.InputValue())

	got, err := h.wf.Upload(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Summary("<h2>Summary</h2>"), got)
	assert.Equal(t, []models.Summary{"<h2>Summary</h2>"}, h.sink.got)
	assert.Equal(t, []string{MsgUploaded}, h.notifier.successes)
	assert.Equal(t, []bool{true, false}, h.notifier.busy)
	assert.Equal(t, Idle, h.wf.State())
	assert.Nil(t, h.wf.File())
	assert.Empty(t, h.wf.InputValue())
}

func TestUpload_Failure_KeepsFileForRetry(t *testing.T) {
	h := newHarness(t, "tok")
	ctx := context.Background()
	h.wf.SetConsent(true)
	require.NoError(t, h.wf.Pick(ctx, "/tmp/report.pdf"))

	h.uploader.err = &client.ServerError{Status: 500, Message: "An error occurred"}
	_, err := h.wf.Upload(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{MsgUploadFailed}, h.notifier.errors)
	assert.Equal(t, FileSelected, h.wf.State())
	assert.Empty(t, h.sink.got)

	h.uploader.err = nil
	_, err = h.wf.Upload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, h.uploader.Calls())
}

func TestUpload_FailureShowsServerMessage(t *testing.T) {
	h := newHarness(t, "tok")
	ctx := context.Background()
	h.wf.SetConsent(true)
	require.NoError(t, h.wf.Pick(ctx, "/tmp/report.pdf"))

	h.uploader.err = &client.ServerError{Status: 422, Message: "Could not parse PDF"}
	_, err := h.wf.Upload(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{"Could not parse PDF"}, h.notifier.errors)
}

func TestUpload_ConcurrentRefused(t *testing.T) {
	h := newHarness(t, "tok")
	ctx := context.Background()
	h.wf.SetConsent(true)
	require.NoError(t, h.wf.Pick(ctx, "/tmp/report.pdf"))

	h.uploader.block = make(chan struct{})
	h.uploader.started = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := h.wf.Upload(ctx)
		done <- err
	}()
	<-h.uploader.started
	assert.Equal(t, Uploading, h.wf.State())

	_, err := h.wf.Upload(ctx)
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, h.wf.Pick(ctx, "/tmp/report.pdf"), ErrBusy)

	close(h.uploader.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.uploader.Calls())
	assert.Equal(t, Idle, h.wf.State())
}

func TestReset(t *testing.T) {
	h := newHarness(t, "tok")
	h.wf.SetConsent(true)
	require.NoError(t, h.wf.Pick(context.Background(), "/tmp/report.pdf"))

	h.wf.Reset()
	assert.Equal(t, Idle, h.wf.State())
	assert.False(t, h.wf.Consent())
	assert.Nil(t, h.wf.File())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "file selected", FileSelected.String())
	assert.Equal(t, "uploading", Uploading.String())
	assert.Equal(t, "State(9)", State(9).String())
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/medreport/internal/client/client"
	"github.com/dmitrijs2005/medreport/internal/client/display"
	"github.com/dmitrijs2005/medreport/internal/client/forms"
	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/client/services"
	"github.com/dmitrijs2005/medreport/internal/client/session"
	"github.com/dmitrijs2005/medreport/internal/client/upload"
	"github.com/dmitrijs2005/medreport/internal/logging"
)

// SessionSource is what the REPL needs from the session store.
type SessionSource interface {
	Get(ctx context.Context) session.Session
	Token(ctx context.Context) string
	Subscribe(fn func(session.Session)) (unsubscribe func())
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Auth     services.AuthService
	Reports  services.ReportService
	Sessions SessionSource
	Router   *Router
	Logger   logging.Logger
	In       io.Reader
	Out      io.Writer

	// Loader overrides how selected paths are read. Nil means upload.LoadPendingFile.
	Loader func(path string) (models.PendingFile, error)
}

// App is the interactive MedReport client: one REPL session standing in
// for one page load.
type App struct {
	auth     services.AuthService
	sessions SessionSource
	router   *Router
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	workflow *upload.Workflow
	panel    *display.Panel

	loginGate  forms.Gate
	signupGate forms.Gate

	mu            sync.Mutex
	session       session.Session
	authRequested bool
	unsubscribe   func()
}

func NewApp(ctx context.Context, d Deps) *App {
	a := &App{
		auth:     d.Auth,
		sessions: d.Sessions,
		router:   d.Router,
		logger:   d.Logger,
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
		panel:    display.NewPanel(d.Out),
	}
	if a.router == nil {
		a.router = NewRouter()
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}

	opts := []upload.Option{upload.WithLogger(a.logger)}
	if d.Loader != nil {
		opts = append(opts, upload.WithLoader(d.Loader))
	}
	a.workflow = upload.NewWorkflow(d.Sessions, d.Reports, a, a, a.panel, opts...)

	a.session = d.Sessions.Get(ctx)
	a.unsubscribe = d.Sessions.Subscribe(a.onSession)
	return a
}

// onSession replaces the page reload that followed every login and logout.
func (a *App) onSession(s session.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) currentSession() session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *App) isLoggedIn() bool {
	return a.currentSession().Authenticated()
}

func (a *App) getStatus() string {
	s := a.currentSession()
	if !s.Authenticated() {
		return ""
	}
	if initial := s.User.Initial(); initial != "" {
		return fmt.Sprintf(" [%s]", initial)
	}
	return " [signed in]"
}

// Run shows the landing screen and blocks in the REPL until the user exits
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.unsubscribe()

	a.landing()
	fmt.Fprintln(a.out, "Type 'help' for commands.")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) landing() {
	s := a.currentSession()
	display.Landing(a.out, s.Authenticated(), s.User, display.ViewOf(a.workflow))
}

func (a *App) afterCommand(ctx context.Context) {
	a.followRedirects(ctx)

	a.mu.Lock()
	requested := a.authRequested
	a.authRequested = false
	a.mu.Unlock()

	if requested && !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please sign in to continue.")
		_ = a.Login(ctx)
		a.followRedirects(ctx)
	}
}

// followRedirects applies every route queued so far, so none is left to
// fire after a later command.
func (a *App) followRedirects(ctx context.Context) {
	for {
		route, ok := a.router.Take()
		if !ok {
			return
		}
		a.navigate(ctx, route)
	}
}

// navigate resets the page state the way a full page load would.
func (a *App) navigate(ctx context.Context, route string) {
	a.logger.Info(ctx, "navigating", "route", route)
	a.workflow.Reset()
	a.panel.Clear()
	a.landing()
}

// RequestAuth implements upload.AuthPrompter. The sign-in prompt opens once
// the current command has finished.
func (a *App) RequestAuth(context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authRequested = true
}

// Success, Error and Busy implement upload.Notifier.
func (a *App) Success(msg string) { fmt.Fprintln(a.out, "✔ "+msg) }

func (a *App) Error(msg string) { fmt.Fprintln(a.out, "✖ "+msg) }

func (a *App) Busy(on bool) {
	if on {
		fmt.Fprintln(a.out, "⏳ Uploading and analyzing your report...")
	}
}

func (a *App) HowItWorks(context.Context) error {
	fmt.Fprint(a.out, display.HowItWorksText())
	return nil
}

func (a *App) Home(context.Context) error {
	a.landing()
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.currentSession()
	switch {
	case !s.Authenticated():
		fmt.Fprintln(a.out, "Not signed in.")
	case s.User == nil:
		fmt.Fprintln(a.out, "Signed in.")
	default:
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", s.User.Name, s.User.Email)
	}
	return nil
}

// userError prints err the way a toast would show it.
func (a *App) userError(err error, fallback string) {
	a.Error(client.MessageOr(err, fallback))
}

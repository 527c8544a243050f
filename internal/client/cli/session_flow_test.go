package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/medreport/internal/client/client"
	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/medreport/internal/client/services"
	"github.com/dmitrijs2005/medreport/internal/client/session"
	"github.com/dmitrijs2005/medreport/internal/common"
	"github.com/dmitrijs2005/medreport/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A rejected login answers 401 without a bearer token. The next commands
// must not be reset by it.
func TestApp_RejectedLoginDoesNotResetLaterState(t *testing.T) {
	capturePrintln(t)
	stubTerminal(t, false, nil, errors.New("no tty"))
	ctx := context.Background()

	var mu sync.Mutex
	logins := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		mu.Lock()
		logins++
		n := logins
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]string{"id": "1", "name": "Ann Lee", "email": "ann@example.com"},
		})
	}))
	t.Cleanup(srv.Close)

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "jar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db, cookies.NewSQLiteRepository(db), logging.Discard())
	router := NewRouter()
	api, err := client.NewHTTPClient(srv.URL+"/api", store, client.WithRedirector(router))
	require.NoError(t, err)

	script := []string{
		"select /reports/labs.pdf",
		"ann@example.com", "wrong-password",
		"ann@example.com", "right-password",
		"consent on",
		"select /reports/labs.pdf",
		"exit",
	}
	out := &bytes.Buffer{}
	app := NewApp(ctx, Deps{
		Auth:     services.NewAuthService(api, store, 0),
		Reports:  services.NewReportService(api, logging.Discard()),
		Sessions: store,
		Router:   router,
		In:       strings.NewReader(strings.Join(script, "\n") + "\n"),
		Out:      out,
		Loader: func(path string) (models.PendingFile, error) {
			if path != "/reports/labs.pdf" {
				return models.PendingFile{}, os.ErrNotExist
			}
			return models.PendingFile{Name: "labs.pdf", Path: path, MIMEType: common.PDFMimeType, Size: 1024}, nil
		},
	})
	app.Run(ctx)

	assert.Equal(t, 2, logins)
	assert.Contains(t, out.String(), "✖ Invalid credentials")
	assert.Contains(t, out.String(), "Welcome, Ann Lee!")
	assert.True(t, app.isLoggedIn())
	assert.True(t, app.workflow.Consent())
	require.NotNil(t, app.workflow.File())
	assert.Equal(t, "labs.pdf", app.workflow.File().Name)

	_, pending := router.Take()
	assert.False(t, pending)
}

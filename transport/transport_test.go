package transport_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fplassist/go-fpl-client/creds"
	"github.com/fplassist/go-fpl-client/creds/credsfakes"
	"github.com/fplassist/go-fpl-client/session"
	"github.com/fplassist/go-fpl-client/transport"
)

// fakeService mimics the remote service's token handling: a single valid
// access/refresh pair, rotated on every successful refresh.
type fakeService struct {
	mu            sync.Mutex
	validAccess   string
	validRefresh  string
	refreshCalls  int
	refreshDelay  time.Duration
	refreshBroken bool
	pingAlways401 bool
}

// methodOnly restricts a handler to one HTTP method. Go 1.21's ServeMux does
// not support "METHOD /path" patterns, so the restriction is enforced here.
func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/refresh", methodOnly(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		delay := f.refreshDelay
		f.mu.Unlock()
		time.Sleep(delay)

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.refreshCalls++

		if f.refreshBroken || body.RefreshToken != f.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid refresh token"})
			return
		}

		// Rotation: the old refresh token is dead from here on.
		f.validAccess = fmt.Sprintf("access-%d", f.refreshCalls)
		f.validRefresh = fmt.Sprintf("refresh-%d", f.refreshCalls)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":  f.validAccess,
			"refresh_token": f.validRefresh,
			"token_type":    "bearer",
		})
	}))

	mux.HandleFunc("/ping", methodOnly(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		authorized := !f.pingAlways401 && r.Header.Get("Authorization") == "Bearer "+f.validAccess
		f.mu.Unlock()

		if !authorized {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))

	mux.HandleFunc("/rejected", methodOnly(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "gameweek out of range"})
	}))

	mux.HandleFunc("/open", methodOnly(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "unexpected credential"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))

	return mux
}

type fixture struct {
	service  *fakeService
	server   *httptest.Server
	sessions *session.Manager
	client   *transport.Client
}

func setup(t *testing.T, service *fakeService) *fixture {
	t.Helper()

	server := httptest.NewServer(service.handler())
	t.Cleanup(server.Close)

	sessions, err := session.NewManager(credsfakes.NewFakeStore())
	require.NoError(t, err)

	client, err := transport.New(server.URL, sessions)
	require.NoError(t, err)

	return &fixture{service: service, server: server, sessions: sessions, client: client}
}

func (f *fixture) refreshCalls() int {
	f.service.mu.Lock()
	defer f.service.mu.Unlock()
	return f.service.refreshCalls
}

func TestAcceptedCredentialNeedsNoRefresh(t *testing.T) {
	f := setup(t, &fakeService{validAccess: "access-0", validRefresh: "refresh-0"})
	require.NoError(t, f.sessions.Adopt(creds.Pair{Access: "access-0", Refresh: "refresh-0"}))

	var out map[string]bool
	require.NoError(t, f.client.Get(context.Background(), "/ping", nil, &out))
	require.True(t, out["ok"])
	require.Equal(t, 0, f.refreshCalls())
}

func TestUnauthenticatedRequestCarriesNoCredential(t *testing.T) {
	f := setup(t, &fakeService{})

	var out map[string]bool
	require.NoError(t, f.client.Get(context.Background(), "/open", nil, &out))
	require.True(t, out["ok"])
}

func TestRefreshAndRetryExactlyOnce(t *testing.T) {
	f := setup(t, &fakeService{validAccess: "access-0", validRefresh: "stale-refresh"})
	require.NoError(t, f.sessions.Adopt(creds.Pair{Access: "stale-access", Refresh: "stale-refresh"}))

	var out map[string]bool
	require.NoError(t, f.client.Get(context.Background(), "/ping", nil, &out))
	require.True(t, out["ok"])
	require.Equal(t, 1, f.refreshCalls())

	// The rotated pair was adopted and persists for the next request.
	pair, held := f.sessions.Current()
	require.True(t, held)
	require.Equal(t, "access-1", pair.Access)
	require.Equal(t, "refresh-1", pair.Refresh)
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	f := setup(t, &fakeService{
		validAccess:  "access-0",
		validRefresh: "stale-refresh",
		refreshDelay: 75 * time.Millisecond,
	})
	require.NoError(t, f.sessions.Adopt(creds.Pair{Access: "stale-access", Refresh: "stale-refresh"}))

	const concurrency = 8
	start := make(chan struct{})
	errs := make(chan error, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			var out map[string]bool
			errs <- f.client.Get(context.Background(), "/ping", nil, &out)
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 1, f.refreshCalls())
}

func TestRefreshFailureClearsSessionForAllWaiters(t *testing.T) {
	f := setup(t, &fakeService{
		validAccess:   "access-0",
		validRefresh:  "stale-refresh",
		refreshBroken: true,
		refreshDelay:  50 * time.Millisecond,
	})
	require.NoError(t, f.sessions.Adopt(creds.Pair{Access: "stale-access", Refresh: "stale-refresh"}))

	const concurrency = 4
	start := make(chan struct{})
	errs := make(chan error, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- f.client.Get(context.Background(), "/ping", nil, nil)
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.ErrorIs(t, err, transport.ErrUnauthorized)
	}
	require.Equal(t, 1, f.refreshCalls())
	require.False(t, f.sessions.Authenticated())
}

func TestSecondRejectionAfterRefreshIsHardUnauthorized(t *testing.T) {
	f := setup(t, &fakeService{
		validAccess:   "access-0",
		validRefresh:  "refresh-0",
		pingAlways401: true,
	})
	require.NoError(t, f.sessions.Adopt(creds.Pair{Access: "access-0", Refresh: "refresh-0"}))

	err := f.client.Get(context.Background(), "/ping", nil, nil)
	require.ErrorIs(t, err, transport.ErrUnauthorized)
	require.Equal(t, 1, f.refreshCalls())
	require.False(t, f.sessions.Authenticated())
}

func TestNetworkFailureIsUnreachable(t *testing.T) {
	f := setup(t, &fakeService{})
	f.server.Close()

	err := f.client.Get(context.Background(), "/ping", nil, nil)
	require.ErrorIs(t, err, transport.ErrUnreachable)
}

func TestRejectionCarriesDetailVerbatim(t *testing.T) {
	f := setup(t, &fakeService{})

	err := f.client.Get(context.Background(), "/rejected", nil, nil)

	var rejected *transport.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusUnprocessableEntity, rejected.Status)
	require.Equal(t, "gameweek out of range", rejected.Detail)
}

func TestUnauthenticated401SurfacesDetail(t *testing.T) {
	// A 401 on a request that carried no credential (e.g. a bad login) has
	// nothing to refresh and maps straight to Unauthorized.
	f := setup(t, &fakeService{validAccess: "access-0"})

	err := f.client.Get(context.Background(), "/ping", nil, nil)
	require.ErrorIs(t, err, transport.ErrUnauthorized)
	require.Contains(t, err.Error(), "Could not validate credentials")
	require.Equal(t, 0, f.refreshCalls())
}

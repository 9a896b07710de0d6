// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/claim-poster/distriator"
	"github.com/danielhkuo/claim-poster/render"
	"github.com/danielhkuo/claim-poster/signer"
	"github.com/danielhkuo/claim-poster/testutil"
	"github.com/danielhkuo/claim-poster/workflow"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	store := testutil.SetupTestStore(t)
	api := testutil.NewFakeAPI(t)
	sig := &testutil.FakeSigner{
		SignResult: signer.SignResult{Signature: "SIG", PublicKey: "STM111"},
	}
	client := distriator.New(api.Server.URL, api.Server.URL, time.Second, store)
	wf := workflow.New(store, sig, client)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("Failed to build renderer: %v", err)
	}
	return NewRouter(wf, renderer)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Expected HTML content type, got '%s'", ct)
	}
}

func TestRootOnlyMatchesExactPath(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/no-such-page", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// Test that routes respond (handler is invoked). Mutating routes answer
	// with a redirect back to the page regardless of workflow outcome.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/login"},
		{"POST", "/logout"},

		{"POST", "/claims/refresh"},
		{"POST", "/claims/claim-0/toggle"},
		{"POST", "/claims/claim-0/post"},

		{"POST", "/upload"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
			if w.Code == http.StatusNotFound {
				t.Errorf("Route %s %s returned 404, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},        // Only GET is defined
		{"GET", "/login"},          // Only POST is defined
		{"DELETE", "/claims/refresh"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMutatingRoutesRedirect(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []string{
		"/login",
		"/logout",
		"/claims/refresh",
		"/claims/claim-0/toggle",
		"/claims/claim-0/post",
		"/upload",
	}

	for _, path := range testCases {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("POST", path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusSeeOther {
				t.Errorf("Expected 303 for POST %s, got %d", path, w.Code)
			}
			if loc := w.Header().Get("Location"); loc != "/" {
				t.Errorf("Expected redirect to '/', got '%s'", loc)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux := newTestRouter(t)

	// A malformed claim id is the one case a claim route rejects directly.
	req := httptest.NewRequest("POST", "/claims/not-a-claim/toggle", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed claim id, got %d", w.Code)
	}
}

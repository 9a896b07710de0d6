// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/claim-poster/distriator"
	"github.com/danielhkuo/claim-poster/models"
	"github.com/danielhkuo/claim-poster/render"
	"github.com/danielhkuo/claim-poster/signer"
	"github.com/danielhkuo/claim-poster/testutil"
	"github.com/danielhkuo/claim-poster/workflow"
)

func newTestWorkflow(t *testing.T) (*workflow.Controller, *testutil.FakeAPI, *testutil.FakeSigner) {
	t.Helper()

	store := testutil.SetupTestStore(t)
	api := testutil.NewFakeAPI(t)
	sig := &testutil.FakeSigner{
		SignResult: signer.SignResult{Signature: "SIG", PublicKey: "STM111"},
	}
	client := distriator.New(api.Server.URL, api.Server.URL, time.Second, store)
	wf := workflow.New(store, sig, client)

	// Seed a logged-in session the way a page reload would restore it.
	if err := store.Set(testutil.SignedTestToken(t, "alice"), "bearer"); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}
	return wf, api, sig
}

func formRequest(method, path string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestBuildPageView(t *testing.T) {
	claim := testutil.SampleClaim()

	testCases := []struct {
		name          string
		snap          workflow.Snapshot
		wantLoggedIn  bool
		wantComposing bool
		wantClaims    int
	}{
		{
			name:         "logged out",
			snap:         workflow.Snapshot{State: workflow.LoggedOut},
			wantLoggedIn: false,
		},
		{
			name: "viewing claim",
			snap: workflow.Snapshot{
				State:    workflow.ClaimViewing,
				Username: "alice",
				Fetched:  true,
				Claims:   []workflow.ClaimEntry{{Index: 0, Claim: claim}},
			},
			wantLoggedIn: true,
			wantClaims:   1,
		},
		{
			name: "composing",
			snap: workflow.Snapshot{
				State:    workflow.ClaimComposing,
				Username: "alice",
				Fetched:  true,
				Claims:   []workflow.ClaimEntry{{Index: 0, Claim: claim}},
				Draft:    models.PostDraft{Title: "My review"},
			},
			wantLoggedIn:  true,
			wantComposing: true,
			wantClaims:    1,
		},
		{
			name: "submitting keeps compose form",
			snap: workflow.Snapshot{
				State:    workflow.Submitting,
				Username: "alice",
				Fetched:  true,
				Claims:   []workflow.ClaimEntry{{Index: 0, Claim: claim}},
			},
			wantLoggedIn:  true,
			wantComposing: true,
			wantClaims:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			view := BuildPageView(tc.snap)

			if view.LoggedIn != tc.wantLoggedIn {
				t.Errorf("LoggedIn = %v, want %v", view.LoggedIn, tc.wantLoggedIn)
			}
			if len(view.Claims) != tc.wantClaims {
				t.Fatalf("Got %d claims, want %d", len(view.Claims), tc.wantClaims)
			}
			if tc.wantClaims > 0 && view.Claims[0].Composing != tc.wantComposing {
				t.Errorf("Composing = %v, want %v", view.Claims[0].Composing, tc.wantComposing)
			}
		})
	}
}

func TestBuildPageView_Notices(t *testing.T) {
	snap := workflow.Snapshot{
		Notices: []workflow.Notice{
			{Message: "Login successful! Token and type saved.", Level: "success"},
			{Message: "Failed to fetch claims: boom", Level: "danger"},
		},
	}

	view := BuildPageView(snap)

	if len(view.Notices) != 2 {
		t.Fatalf("Got %d notices, want 2", len(view.Notices))
	}
	if view.Notices[0].Level != "success" || view.Notices[1].Level != "danger" {
		t.Errorf("Notice levels not preserved: %+v", view.Notices)
	}
}

func TestHome(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("Failed to build renderer: %v", err)
	}
	handler := NewPageHandler(wf, renderer)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.Home(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Expected HTML content type, got '%s'", ct)
	}
	if !strings.Contains(w.Body.String(), "Claim Poster") {
		t.Error("Expected rendered page body")
	}
}

func TestLoginRedirects(t *testing.T) {
	wf, api, sig := newTestWorkflow(t)
	api.SetLogin(http.StatusOK, models.LoginResponse{Token: testutil.SignedTestToken(t, "alice"), Type: "bearer"})
	handler := NewAuthHandler(wf)

	req := formRequest("POST", "/login", url.Values{"username": {"alice"}})
	w := httptest.NewRecorder()

	handler.Login(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
	if sig.SignCalls != 1 {
		t.Errorf("Expected one sign call, got %d", sig.SignCalls)
	}
}

func TestLoginFailureStillRedirects(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)
	handler := NewAuthHandler(wf)

	// Empty username: the workflow records a notice, the handler redirects.
	req := formRequest("POST", "/login", url.Values{})
	w := httptest.NewRecorder()

	handler.Login(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
	snap := wf.Snapshot()
	if len(snap.Notices) == 0 {
		t.Error("Expected a notice explaining the failure")
	}
}

func TestLogout(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)
	wf.Restore(context.Background())
	handler := NewAuthHandler(wf)

	req := httptest.NewRequest("POST", "/logout", nil)
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
	if wf.State() != workflow.LoggedOut {
		t.Errorf("Got state %s, want logged_out", wf.State())
	}
}

func TestToggle(t *testing.T) {
	wf, api, _ := newTestWorkflow(t)
	claim := testutil.SampleClaim()
	api.SetClaim(&claim)
	wf.Restore(context.Background())
	handler := NewClaimHandler(wf)

	req := httptest.NewRequest("POST", "/claims/claim-0/toggle", nil)
	req.SetPathValue("id", "claim-0")
	w := httptest.NewRecorder()

	handler.Toggle(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
	if wf.State() != workflow.ClaimComposing {
		t.Errorf("Got state %s, want claim_composing", wf.State())
	}
}

func TestToggleInvalidID(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)
	handler := NewClaimHandler(wf)

	req := httptest.NewRequest("POST", "/claims/bogus/toggle", nil)
	req.SetPathValue("id", "bogus")
	w := httptest.NewRecorder()

	handler.Toggle(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed id, got %d", w.Code)
	}
}

func TestSubmitPassesDraft(t *testing.T) {
	wf, api, sig := newTestWorkflow(t)
	claim := testutil.SampleClaim()
	api.SetClaim(&claim)
	wf.Restore(context.Background())
	handler := NewClaimHandler(wf)

	req := formRequest("POST", "/claims/claim-0/post", url.Values{
		"title": {"My review"},
		"body":  {"Great food, would claim again."},
	})
	req.SetPathValue("id", "claim-0")
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
	if sig.BroadcastCalls != 1 {
		t.Fatalf("Expected one broadcast, got %d", sig.BroadcastCalls)
	}
}

func TestRefresh(t *testing.T) {
	wf, api, _ := newTestWorkflow(t)
	wf.Restore(context.Background())
	claim := testutil.SampleClaim()
	api.SetClaim(&claim)
	handler := NewClaimHandler(wf)

	req := httptest.NewRequest("POST", "/claims/refresh", nil)
	w := httptest.NewRecorder()

	handler.Refresh(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
	if wf.State() != workflow.ClaimViewing {
		t.Errorf("Got state %s, want claim_viewing", wf.State())
	}
}

func multipartUpload(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to build multipart body: %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadJSON(t *testing.T) {
	wf, api, _ := newTestWorkflow(t)
	wf.Restore(context.Background())
	api.UploadURL = "https://images.hive.blog/alice/photo.png"
	handler := NewUploadHandler(wf)

	req := multipartUpload(t, "photo.png", []byte{1, 2, 3})
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.UploadResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.URL != "https://images.hive.blog/alice/photo.png" {
		t.Errorf("Got url %q", result.URL)
	}
	if result.Markdown != "![photo.png](https://images.hive.blog/alice/photo.png)" {
		t.Errorf("Got markdown %q", result.Markdown)
	}
}

func TestUploadFormRedirects(t *testing.T) {
	wf, api, _ := newTestWorkflow(t)
	wf.Restore(context.Background())
	api.UploadURL = "https://images.hive.blog/alice/photo.png"
	handler := NewUploadHandler(wf)

	req := multipartUpload(t, "photo.png", []byte{1, 2, 3})
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
}

func TestUploadJSONErrors(t *testing.T) {
	testCases := []struct {
		name       string
		loggedIn   bool
		withFile   bool
		wantStatus int
	}{
		{"missing file", true, false, http.StatusBadRequest},
		{"not logged in", false, true, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wf, _, _ := newTestWorkflow(t)
			if tc.loggedIn {
				wf.Restore(context.Background())
			}
			handler := NewUploadHandler(wf)

			var req *http.Request
			if tc.withFile {
				req = multipartUpload(t, "photo.png", []byte{1, 2, 3})
			} else {
				req = multipartUpload(t, "photo.png", nil)
			}
			req.Header.Set("Accept", "application/json")
			w := httptest.NewRecorder()

			handler.Upload(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/claim-poster/models"
	"github.com/danielhkuo/claim-poster/session"
	"github.com/danielhkuo/claim-poster/signer"
)

// SetupTestStore creates a session store backed by a temp sqlite database.
func SetupTestStore(t *testing.T) *session.Store {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := session.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return session.NewStore(db)
}

// SignedTestToken builds a JWT carrying a username claim, like the tokens
// the claims API issues.
func SignedTestToken(t *testing.T, username string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to build test token: %v", err)
	}
	return token
}

// SampleClaim returns the reference claim used across tests.
func SampleClaim() models.Claim {
	return models.Claim{
		Invoice:           "INV-42",
		Amount:            "10.000 HBD",
		Business:          "Example Store",
		Country:           "PT",
		Timestamp:         1747659265218,
		PaymentMethod:     "HBD",
		ClaimValue:        "1.000 HBD",
		Percentage:        "10 %",
		TransactionAmount: "10.000 HBD",
		Guides: []models.Guide{
			{Name: "guide1", Percent: "5 %", GuidesPercent: "50 %", Value: "0.500 HBD"},
		},
	}
}

// FakeSigner is a scripted signer capability for tests.
type FakeSigner struct {
	mu sync.Mutex

	SignResult   signer.SignResult
	SignErr      error
	BroadcastErr error

	SignCalls      int
	BroadcastCalls int
	LastAccount    string
	LastMessage    string
	LastRole       string
	LastOperations any
}

func (f *FakeSigner) SignBuffer(ctx context.Context, account, message, role string) (signer.SignResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignCalls++
	f.LastAccount = account
	f.LastMessage = message
	f.LastRole = role
	if f.SignErr != nil {
		return signer.SignResult{}, f.SignErr
	}
	return f.SignResult, nil
}

func (f *FakeSigner) Broadcast(ctx context.Context, account string, operations any, role string) (signer.BroadcastResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BroadcastCalls++
	f.LastAccount = account
	f.LastOperations = operations
	f.LastRole = role
	if f.BroadcastErr != nil {
		return signer.BroadcastResult{}, f.BroadcastErr
	}
	return signer.BroadcastResult{ID: "tx-fake"}, nil
}

// FakeAPI is an httptest-backed claims API and image host. Fields may be
// swapped between requests to script successive responses.
type FakeAPI struct {
	mu sync.Mutex

	LoginResponse  models.LoginResponse
	LoginStatus    int
	Claim          *models.Claim
	ClaimStatus    int
	UploadURL      string
	UploadStatus   int
	LoginRequests  int
	ClaimRequests  int
	UploadRequests int

	Server *httptest.Server
}

// NewFakeAPI starts a fake claims API. The server is closed with the test.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	api := &FakeAPI{
		LoginStatus:  http.StatusOK,
		ClaimStatus:  http.StatusOK,
		UploadStatus: http.StatusOK,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", api.handleLogin)
	mux.HandleFunc("GET /claims/v2", api.handleClaims)
	mux.HandleFunc("POST /{account}/{signature}", api.handleUpload)

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Server.Close)
	return api
}

// SetClaim scripts the next claim fetch response.
func (a *FakeAPI) SetClaim(claim *models.Claim) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Claim = claim
}

// SetLogin scripts the next login response.
func (a *FakeAPI) SetLogin(status int, resp models.LoginResponse) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.LoginStatus = status
	a.LoginResponse = resp
}

func (a *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.LoginRequests++
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.LoginStatus)
	json.NewEncoder(w).Encode(a.LoginResponse)
}

func (a *FakeAPI) handleClaims(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ClaimRequests++
	w.Header().Set("Content-Type", "application/json")
	if a.ClaimStatus != http.StatusOK {
		w.WriteHeader(a.ClaimStatus)
		w.Write([]byte(`{"message":"unauthorized"}`))
		return
	}
	json.NewEncoder(w).Encode(models.ClaimResponse{Claim: a.Claim})
}

func (a *FakeAPI) handleUpload(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.UploadRequests++
	w.Header().Set("Content-Type", "application/json")
	if a.UploadStatus != http.StatusOK {
		w.WriteHeader(a.UploadStatus)
		return
	}
	json.NewEncoder(w).Encode(models.UploadResponse{URL: a.UploadURL})
}

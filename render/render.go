// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/danielhkuo/claim-poster/models"
)

// Notice is a transient user-facing message. Level maps to the page's
// alert styling (info, success, danger).
type Notice struct {
	Message string
	Level   string
}

// GuideRow is one row of the guides breakdown table.
type GuideRow struct {
	Name          string
	Percent       string
	GuidesPercent string
	Value         string
}

// OnborderView is the optional onborder table.
type OnborderView struct {
	Name    string
	Percent string
	Value   string
}

// ClaimView is the display representation of a claim. Exactly one of the
// read-only card and the compose form is visible, switched by Composing.
type ClaimView struct {
	ID                string
	Invoice           string
	Amount            string
	Business          string
	Country           string
	Date              string
	PaymentMethod     string
	ClaimValue        string
	Percentage        string
	TransactionAmount string
	Guides            []GuideRow
	Onborder          *OnborderView
	Composing         bool
	DraftTitle        string
	DraftBody         string
}

// PageView is the full page model.
type PageView struct {
	LoggedIn bool
	Username string
	Fetched  bool
	Claims   []ClaimView
	Notices  []Notice
}

// NewClaimView maps a claim to its display representation. index becomes the
// claim's page-local identity.
func NewClaimView(claim models.Claim, index int, composing bool, draft models.PostDraft) ClaimView {
	view := ClaimView{
		ID:                fmt.Sprintf("claim-%d", index),
		Invoice:           claim.Invoice,
		Amount:            claim.Amount,
		Business:          claim.Business,
		Country:           claim.Country,
		Date:              time.UnixMilli(claim.Timestamp).Format("2006-01-02 15:04:05"),
		PaymentMethod:     claim.PaymentMethod,
		ClaimValue:        claim.ClaimValue,
		Percentage:        claim.Percentage,
		TransactionAmount: claim.TransactionAmount,
		Composing:         composing,
		DraftTitle:        draft.Title,
		DraftBody:         draft.Body,
	}
	for _, guide := range claim.Guides {
		view.Guides = append(view.Guides, GuideRow(guide))
	}
	if claim.Onborder != nil {
		onborder := OnborderView(*claim.Onborder)
		view.Onborder = &onborder
	}
	return view
}

// Renderer renders the single application page.
type Renderer struct {
	tmpl *template.Template
}

// New parses the page templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page for the given view.
func (r *Renderer) Render(w io.Writer, view PageView) error {
	return r.tmpl.Execute(w, view)
}

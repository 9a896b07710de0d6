// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package composer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/danielhkuo/claim-poster/models"
)

// Fixed identifiers stamped into every published post.
const (
	appID              = "distriator.ninja/0.0.0"
	developer          = "thecrazygm"
	team               = "mithril.destiny"
	parentCommunity    = "hive-106130"
	beneficiaryAccount = "distriator.bene"
	beneficiaryWeight  = 6000 // 60%
	maxAcceptedPayout  = "100000.000 HBD"
	percentHBD         = 10000 // 100% liquid HBD
)

var (
	ErrMissingUsername = errors.New("username required")
	ErrEmptyDraft      = errors.New("post title and body required")

	whitespace = regexp.MustCompile(`\s+`)
)

// Operation is one Hive operation in its wire form: a [name, payload] pair.
type Operation struct {
	Name string
	Body any
}

// MarshalJSON emits the operation as the two-element array the chain expects.
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{o.Name, o.Body})
}

// Operations is the ordered operation list passed to the broadcast boundary.
type Operations []Operation

// CommentPayload is the comment operation body. Field order matches the
// serialized form the signature is computed over; do not reorder.
type CommentPayload struct {
	ParentAuthor   string `json:"parent_author"`
	ParentPermlink string `json:"parent_permlink"`
	Category       string `json:"category"`
	Author         string `json:"author"`
	Permlink       string `json:"permlink"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	JSONMetadata   string `json:"json_metadata"`
}

// CommentOptionsPayload fixes the payout ceiling, reward split, and the
// beneficiary allocation. Field order is part of the wire form; do not
// reorder.
type CommentOptionsPayload struct {
	Author               string      `json:"author"`
	Permlink             string      `json:"permlink"`
	AllowVotes           bool        `json:"allow_votes"`
	AllowCurationRewards bool        `json:"allow_curation_rewards"`
	MaxAcceptedPayout    string      `json:"max_accepted_payout"`
	PercentHBD           int         `json:"percent_hbd"`
	Extensions           []Extension `json:"extensions"`
}

// Beneficiary is one reward redirection entry.
type Beneficiary struct {
	Account string `json:"account"`
	Weight  int    `json:"weight"`
}

// Extension is a comment_options extension: a [id, value] pair where id 0
// carries the beneficiary list.
type Extension struct {
	ID    int
	Value BeneficiarySet
}

// BeneficiarySet is the id-0 extension value.
type BeneficiarySet struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}

// MarshalJSON emits the extension as the [id, value] pair form.
func (e Extension) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.ID, e.Value})
}

// Metadata is the post's json_metadata document. Field order matches the
// original page's insertion order so the serialized form is reproducible.
type Metadata struct {
	App                     string   `json:"app"`
	BusinessDisplayName     string   `json:"business_display_name"`
	BusinessName            string   `json:"business_name"`
	ClaimPercent            string   `json:"claim_percent"`
	ClaimValue              string   `json:"claim_value"`
	Developer               string   `json:"developer"`
	Format                  string   `json:"format"`
	GuidesPercent           string   `json:"guides_percent"`
	Image                   []string `json:"image"`
	InvoiceID               string   `json:"invoice_id"`
	InvoiceMemo             string   `json:"invoice_memo"`
	SpendHBDLink            string   `json:"spend_hbd_link"`
	Tags                    []string `json:"tags"`
	Team                    string   `json:"team"`
	TotalValue              string   `json:"total_value"`
	UniqueBusinessInvoiceID string   `json:"unique_business_invoice_id"`
	Users                   []string `json:"users"`
}

// Slug lower-cases a business name and collapses whitespace runs to hyphens.
func Slug(business string) string {
	return whitespace.ReplaceAllString(strings.ToLower(business), "-")
}

// Permlink derives the permanent link for a claim's post: <slug>-<invoice>,
// lower-cased.
func Permlink(business, invoice string) string {
	return strings.ToLower(Slug(business) + "-" + invoice)
}

// BuildBody appends the fixed promotional template to the user's markdown.
func BuildBody(userBody string, claim models.Claim) string {
	template := fmt.Sprintf(`

---

Business name: [%s](https://distriator.com/#/businesses/%s)
[Open SpendHBD Business Page]()

Paid Amount: %s
Rewards Claimed: %s (%s of %s)

To benefit from Distriator and receive discounts on your Hive Dollars purchases:

1. Spend Hive Dollars at listed businesses on Distriator (See business list here - <https://distriator.com/#/businesses>).
2. Make sure business issues a QR Invoice from v4v.app / Hive-Keychain app.
3. Go to <https://distriator.com>, log in, follow the instructions, and make your claim.
`,
		claim.Business,
		url.PathEscape(strings.ToLower(claim.Business)),
		claim.Amount,
		claim.ClaimValue,
		claim.Percentage,
		claim.Amount,
	)
	return strings.TrimSpace(userBody) + template
}

// BuildPost constructs the comment and comment_options operations for a
// draft. The construction is pure: identical inputs yield byte-identical
// operations, which downstream signature verification depends on.
func BuildPost(draft models.PostDraft, claim models.Claim, username string) (Operations, error) {
	title := strings.TrimSpace(draft.Title)
	body := strings.TrimSpace(draft.Body)
	if username == "" {
		return nil, ErrMissingUsername
	}
	if title == "" || body == "" {
		return nil, ErrEmptyDraft
	}

	slug := Slug(claim.Business)
	metadata := Metadata{
		App:                     appID,
		BusinessDisplayName:     claim.Business,
		BusinessName:            slug,
		ClaimPercent:            claim.Percentage,
		ClaimValue:              claim.ClaimValue,
		Developer:               developer,
		Format:                  "markdown",
		GuidesPercent:           guidesPercent(claim),
		Image:                   []string{},
		InvoiceID:               claim.Invoice,
		InvoiceMemo:             claim.Memo,
		SpendHBDLink:            "",
		Tags:                    []string{"spendhbd", "distriator", "spendtoearn"},
		Team:                    team,
		TotalValue:              claim.Amount,
		UniqueBusinessInvoiceID: slug + "-" + claim.Invoice,
		Users:                   []string{username},
	}
	rawMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode post metadata: %w", err)
	}

	permlink := Permlink(claim.Business, claim.Invoice)
	return Operations{
		{
			Name: "comment",
			Body: CommentPayload{
				ParentAuthor:   "",
				ParentPermlink: parentCommunity,
				Category:       parentCommunity,
				Author:         username,
				Permlink:       permlink,
				Title:          title,
				Body:           BuildBody(body, claim),
				JSONMetadata:   string(rawMetadata),
			},
		},
		{
			Name: "comment_options",
			Body: CommentOptionsPayload{
				Author:               username,
				Permlink:             permlink,
				AllowVotes:           true,
				AllowCurationRewards: true,
				MaxAcceptedPayout:    maxAcceptedPayout,
				PercentHBD:           percentHBD,
				Extensions: []Extension{
					{ID: 0, Value: BeneficiarySet{
						Beneficiaries: []Beneficiary{
							{Account: beneficiaryAccount, Weight: beneficiaryWeight},
						},
					}},
				},
			},
		},
	}, nil
}

// guidesPercent pulls the first guide's percent with the " %" suffix
// stripped, defaulting to "0".
func guidesPercent(claim models.Claim) string {
	if len(claim.Guides) == 0 {
		return "0"
	}
	percent := strings.Replace(claim.Guides[0].Percent, " %", "", 1)
	if percent == "" {
		return "0"
	}
	return percent
}

// FormatCurrency renders a currency value for display. Already-formatted
// strings pass through unchanged; raw numerics get en-US grouping with
// exactly three fixed decimal digits.
func FormatCurrency(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return formatFixed(v)
	case float32:
		return formatFixed(float64(v))
	case int:
		return formatFixed(float64(v))
	case int64:
		return formatFixed(float64(v))
	default:
		return fmt.Sprint(value)
	}
}

func formatFixed(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	// Insert thousands separators into the integer part.
	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return sign + grouped.String() + "." + frac
}

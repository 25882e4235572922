package invoice

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// randIndex is swapped in tests to make suffixes deterministic.
var randIndex = rand.IntN

// Settings are the per-business defaults used to seed new documents.
type Settings struct {
	Prefix       string
	Currency     string
	Language     string
	Template     string
	AccentColor  string
	PaymentTerms int
	Notes        string
	PaymentInfo  string
	TaxRate      float64
	TaxLabel     string
}

// Terms returns the payment window in days, falling back to DefaultPaymentTerms.
func (s Settings) Terms() int {
	if s.PaymentTerms > 0 {
		return s.PaymentTerms
	}
	return DefaultPaymentTerms
}

// GenerateNumber builds "<PREFIX>-XXXXYYY": the last four base-36 digits of
// the millisecond clock followed by three random base-36 digits, upper-cased.
// Uniqueness is best effort only.
func GenerateNumber(prefix string, now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	if len(ts) > 4 {
		ts = ts[len(ts)-4:]
	}
	var sb strings.Builder
	sb.WriteString(normalizePrefix(prefix))
	sb.WriteString(ts)
	for range 3 {
		sb.WriteByte(base36[randIndex(len(base36))])
	}
	return strings.ToUpper(sb.String())
}

func normalizePrefix(prefix string) string {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = DefaultPrefix
	}
	if !strings.HasSuffix(p, "-") {
		p += "-"
	}
	return p
}

// DueDate returns issue plus the payment window.
func DueDate(issue time.Time, s Settings) Date {
	return NewDate(issue).AddDays(s.Terms())
}

// NewDocument seeds a blank invoice for business: a fresh number, today's
// date, the default due date and one empty line item.
func NewDocument(s Settings, business Party, now time.Time) *Document {
	d := &Document{
		Number:      GenerateNumber(s.Prefix, now),
		IssueDate:   NewDate(now),
		DueDate:     DueDate(now, s),
		Status:      StatusDraft,
		Business:    business,
		Items:       []LineItem{NewLineItem()},
		Discount:    DiscountPolicy{Type: DiscountNone},
		Tax:         TaxPolicy{Rate: Number(s.TaxRate), Label: s.TaxLabel},
		Notes:       s.Notes,
		PaymentInfo: s.PaymentInfo,
		Presentation: Presentation{
			Template:    s.Template,
			AccentColor: s.AccentColor,
			Language:    s.Language,
			Currency:    s.Currency,
		},
		CreatedAt: now.UTC(),
	}
	d.Normalize()
	return d
}

// Duplicate copies src under a new number with today's dates. The copy has no
// ID, so saving it creates a new record.
func Duplicate(src *Document, s Settings, now time.Time) *Document {
	d := src.Clone()
	d.ID = ""
	d.Number = GenerateNumber(s.Prefix, now)
	d.IssueDate = NewDate(now)
	d.DueDate = DueDate(now, s)
	d.Status = StatusDraft
	d.CreatedAt = now.UTC()
	for i := range d.Items {
		d.Items[i].ID = ""
	}
	d.Normalize()
	return d
}

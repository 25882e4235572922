// Package invoice holds the invoice document model, the totals engine and the
// numbering defaults. Nothing in this package performs I/O.
package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state shown on an invoice.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// DiscountType selects how DiscountPolicy.Value is interpreted.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Defaults applied to fresh documents.
const (
	DefaultAccentColor  = "#4F46E5"
	DefaultTemplate     = "modern"
	DefaultLanguage     = "en"
	DefaultCurrency     = "USD"
	DefaultPrefix       = "INV"
	DefaultPaymentTerms = 30
)

// LineItem is one billable row.
type LineItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	UnitPrice   Number `json:"price"`
}

// NewLineItem returns a blank item with quantity 1 and a fresh ID.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.NewString(), Quantity: 1}
}

// DiscountPolicy is none, a percentage (0-100) of the subtotal, or a fixed amount.
type DiscountPolicy struct {
	Type  DiscountType `json:"type"`
	Value Number       `json:"value"`
}

// TaxPolicy applies Rate percent to the discounted subtotal.
type TaxPolicy struct {
	Rate  Number `json:"rate"`
	Label string `json:"label,omitempty"`
}

// Party is the free-text identity block of the business or the client.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	LogoURL string `json:"logo,omitempty"`
}

// Presentation groups the settings that change how, not what, is rendered.
type Presentation struct {
	Template    string `json:"template"`
	AccentColor string `json:"accentColor"`
	Language    string `json:"language"`
	Currency    string `json:"currency"`
}

// Signature is the optional sign-off block.
type Signature struct {
	ImageURL string `json:"imageUrl,omitempty"`
	StampURL string `json:"stampUrl,omitempty"`
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
}

// Empty reports whether there is nothing to show.
func (s Signature) Empty() bool {
	return s.ImageURL == "" && s.StampURL == "" && s.Name == "" && s.Title == ""
}

// Document is the complete invoice being edited. Totals are not stored on it;
// call Totals to derive them from the current field values.
type Document struct {
	ID              string         `json:"id,omitempty"`
	Number          string         `json:"invoiceNumber"`
	IssueDate       Date           `json:"invoiceDate"`
	DueDate         Date           `json:"dueDate"`
	Status          Status         `json:"invoiceStatus"`
	Business        Party          `json:"business"`
	Client          Party          `json:"client"`
	PONumber        string         `json:"poNumber,omitempty"`
	ShippingAddress string         `json:"shippingAddress,omitempty"`
	Items           []LineItem     `json:"items"`
	Discount        DiscountPolicy `json:"discount"`
	Tax             TaxPolicy      `json:"tax"`
	Presentation    Presentation   `json:"presentation"`
	Notes           string         `json:"notes,omitempty"`
	PaymentInfo     string         `json:"paymentInfo,omitempty"`
	Signature       Signature      `json:"signature"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// Totals runs the totals engine over the document's current values.
func (d *Document) Totals() Totals {
	return ComputeTotals(d.Items, d.Discount, d.Tax.Rate.Float())
}

// Clone returns a deep copy that shares no mutable state with d.
func (d *Document) Clone() *Document {
	c := *d
	if d.Items != nil {
		c.Items = make([]LineItem, len(d.Items))
		copy(c.Items, d.Items)
	}
	return &c
}

// Normalize fills presentation defaults and guarantees at least one line item.
func (d *Document) Normalize() {
	if d.Presentation.Template == "" {
		d.Presentation.Template = DefaultTemplate
	}
	if d.Presentation.AccentColor == "" {
		d.Presentation.AccentColor = DefaultAccentColor
	}
	if d.Presentation.Language == "" {
		d.Presentation.Language = DefaultLanguage
	}
	if d.Presentation.Currency == "" {
		d.Presentation.Currency = DefaultCurrency
	}
	if d.Status == "" {
		d.Status = StatusDraft
	}
	if d.Discount.Type == "" {
		d.Discount.Type = DiscountNone
	}
	for i := range d.Items {
		if d.Items[i].ID == "" {
			d.Items[i].ID = uuid.NewString()
		}
	}
	if len(d.Items) == 0 {
		d.Items = []LineItem{NewLineItem()}
	}
}

// AddItem appends item, assigning an ID when missing.
func (d *Document) AddItem(item LineItem) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	d.Items = append(d.Items, item)
}

// RemoveItem deletes the item with id. It refuses to remove the last item and
// reports whether anything was removed.
func (d *Document) RemoveItem(id string) bool {
	if len(d.Items) <= 1 {
		return false
	}
	for i, it := range d.Items {
		if it.ID == id {
			d.Items = append(d.Items[:i:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

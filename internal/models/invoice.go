package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/invoice"
)

// Invoice stores a document snapshot plus the denormalised columns used for
// listing, filtering and the dashboard.
type Invoice struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Number      string          `gorm:"size:50;index" json:"invoiceNumber"`
	ClientName  string          `gorm:"size:255;index" json:"clientName"`
	ClientEmail string          `gorm:"size:255" json:"clientEmail,omitempty"`
	Status      invoice.Status  `gorm:"size:20;default:'draft';index" json:"invoiceStatus"`
	Currency    string          `gorm:"size:3" json:"currency"`
	IssueDate   *time.Time      `json:"invoiceDate,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Total       decimal.Decimal `gorm:"type:decimal(20,4)" json:"total"`

	Document datatypes.JSONType[invoice.Document] `json:"document"`
}

// BeforeCreate assigns a UUID when none is set.
func (i *Invoice) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}

// Sync copies doc into the record and refreshes the denormalised columns.
// The record keeps its own copy; later changes to doc do not leak in.
func (i *Invoice) Sync(doc *invoice.Document) {
	snap := doc.Clone()
	snap.ID = i.ID
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	i.Number = snap.Number
	i.ClientName = snap.Client.Name
	i.ClientEmail = snap.Client.Email
	i.Status = snap.Status
	if !i.Status.Valid() {
		i.Status = invoice.StatusDraft
		snap.Status = invoice.StatusDraft
	}
	i.Currency = snap.Presentation.Currency
	i.IssueDate = datePtr(snap.IssueDate)
	i.DueDate = datePtr(snap.DueDate)
	i.Total = snap.Totals().Total
	i.Document = datatypes.NewJSONType(*snap)
}

// ToDocument returns an independent copy of the stored document.
func (i *Invoice) ToDocument() *invoice.Document {
	doc := i.Document.Data()
	out := doc.Clone()
	out.ID = i.ID
	out.Status = i.Status
	return out
}

// IsOverdue reports whether the invoice is unpaid past its due date.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == invoice.StatusOverdue {
		return true
	}
	if i.Status == invoice.StatusPaid || i.Status == invoice.StatusCancelled || i.DueDate == nil {
		return false
	}
	return i.DueDate.Before(invoice.NewDate(now).Time)
}

// SortDate is the issue date, or the creation time for undated invoices.
func (i *Invoice) SortDate() time.Time {
	if i.IssueDate != nil {
		return *i.IssueDate
	}
	return i.CreatedAt
}

func datePtr(d invoice.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

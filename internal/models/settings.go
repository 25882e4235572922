package models

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/diewo77/invoice-builder/internal/invoice"
)

// BusinessSettings is the issuing business profile.
type BusinessSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name    string `gorm:"size:255" json:"name"`
	Email   string `gorm:"size:255" json:"email"`
	Phone   string `gorm:"size:50" json:"phone"`
	Website string `gorm:"size:255" json:"website"`
	Address string `gorm:"size:1000" json:"address"`
	GST     string `gorm:"size:20" json:"gst"`
	PAN     string `gorm:"size:20" json:"pan"`
	LogoURL string `gorm:"type:text" json:"logo"`
}

// Configured reports whether a business name has been saved.
func (b *BusinessSettings) Configured() bool {
	return strings.TrimSpace(b.Name) != ""
}

// Party returns the business as the from block of an invoice.
func (b *BusinessSettings) Party() invoice.Party {
	return invoice.Party{
		Name:    b.Name,
		Address: b.Address,
		Email:   b.Email,
		Phone:   b.Phone,
		LogoURL: b.LogoURL,
	}
}

// InvoiceSettings are the defaults applied to new invoices.
type InvoiceSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"-"`

	Prefix       string `gorm:"size:20" json:"prefix"`
	NextNumber   int    `json:"nextNumber"`
	Currency     string `gorm:"size:3" json:"currency"`
	PaymentTerms int    `json:"paymentTerms"`
	Notes        string `gorm:"type:text" json:"notes"`
	Template     string `gorm:"size:20" json:"template"`
	Language     string `gorm:"size:5" json:"language,omitempty"`
	AccentColor  string `gorm:"size:7" json:"accentColor,omitempty"`
}

// DefaultInvoiceSettings returns the settings used before any are saved.
func DefaultInvoiceSettings() InvoiceSettings {
	return InvoiceSettings{
		ID:           SingletonID,
		Prefix:       invoice.DefaultPrefix,
		NextNumber:   1,
		Currency:     invoice.DefaultCurrency,
		PaymentTerms: invoice.DefaultPaymentTerms,
		Template:     invoice.DefaultTemplate,
	}
}

// TaxPreset is a named tax rate offered in the editor.
type TaxPreset struct {
	ID       uint           `gorm:"primaryKey" json:"-"`
	Position int            `json:"-"`
	Name     string         `gorm:"size:50;not null" json:"name"`
	Rate     invoice.Number `json:"rate"`
}

// DefaultTaxPresets are seeded into an empty database.
func DefaultTaxPresets() []TaxPreset {
	return []TaxPreset{
		{Name: "GST", Rate: 18},
		{Name: "CGST", Rate: 9},
		{Name: "SGST", Rate: 9},
	}
}

// PaymentSettings describe how clients pay.
type PaymentSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"-"`

	BankName      string `gorm:"size:255" json:"bankName"`
	AccountName   string `gorm:"size:255" json:"accountName"`
	AccountNumber string `gorm:"size:50" json:"accountNumber"`
	IFSC          string `gorm:"size:20" json:"ifscCode"`
	Branch        string `gorm:"size:255" json:"bankBranch"`
	UPIID         string `gorm:"size:100" json:"upiId"`
	Instructions  string `gorm:"type:text" json:"instructions"`
}

// Text renders the payment block printed on invoices, one labelled line per field.
func (p *PaymentSettings) Text() string {
	lines := lo.Compact([]string{
		labelled("Bank", p.BankName),
		labelled("Account Name", p.AccountName),
		labelled("Account Number", p.AccountNumber),
		labelled("IFSC", p.IFSC),
		labelled("Branch", p.Branch),
		labelled("UPI", p.UPIID),
	})
	if s := strings.TrimSpace(p.Instructions); s != "" {
		lines = append(lines, "\n"+s)
	}
	return strings.Join(lines, "\n")
}

func labelled(label, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	return label + ": " + v
}

// DocumentSettings merges the stored defaults into the form NewDocument expects.
func DocumentSettings(inv InvoiceSettings, pay PaymentSettings, tax []TaxPreset) invoice.Settings {
	s := invoice.Settings{
		Prefix:       inv.Prefix,
		Currency:     inv.Currency,
		Language:     inv.Language,
		Template:     inv.Template,
		AccentColor:  inv.AccentColor,
		PaymentTerms: inv.PaymentTerms,
		Notes:        inv.Notes,
		PaymentInfo:  pay.Text(),
	}
	if len(tax) > 0 {
		s.TaxRate = tax[0].Rate.Float()
		s.TaxLabel = tax[0].Name
	}
	return s
}

package invoice

import (
	"bytes"
	"encoding/json"
	"strings"
)

// flatFields is the one-level invoice layout written by the browser app
// ("businessName", "taxRate", ...). Each field only fills its nested
// counterpart when that counterpart is empty.
type flatFields struct {
	Status          Status  `json:"status"`
	Language        string  `json:"language"`
	Currency        string  `json:"currency"`
	Template        string  `json:"template"`
	AccentColor     string  `json:"accentColor"`
	BusinessName    string  `json:"businessName"`
	BusinessAddress string  `json:"businessAddress"`
	BusinessEmail   string  `json:"businessEmail"`
	BusinessPhone   string  `json:"businessPhone"`
	BusinessLogo    string  `json:"businessLogo"`
	ClientName      string  `json:"clientName"`
	ClientAddress   string  `json:"clientAddress"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone"`
	TaxRate         *Number `json:"taxRate"`
	TaxName         string  `json:"taxName"`
	DiscountType    string  `json:"discountType"`
	DiscountValue   *Number `json:"discountValue"`
	SignatureURL    string  `json:"signatureUrl"`
	StampURL        string  `json:"stampUrl"`
	SignatureName   string  `json:"signatureName"`
	SignatureTitle  string  `json:"signatureTitle"`
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// pending is the browser app's name for a sent invoice.
const pending Status = "pending"

func (f *flatFields) apply(d *Document) {
	if d.Status == "" {
		d.Status = f.Status
	}
	if d.Status == pending {
		d.Status = StatusSent
	}
	fill(&d.Presentation.Language, f.Language)
	fill(&d.Presentation.Currency, f.Currency)
	fill(&d.Presentation.Template, f.Template)
	fill(&d.Presentation.AccentColor, f.AccentColor)

	fill(&d.Business.Name, f.BusinessName)
	fill(&d.Business.Address, f.BusinessAddress)
	fill(&d.Business.Email, f.BusinessEmail)
	fill(&d.Business.Phone, f.BusinessPhone)
	fill(&d.Business.LogoURL, f.BusinessLogo)
	fill(&d.Client.Name, f.ClientName)
	fill(&d.Client.Address, f.ClientAddress)
	fill(&d.Client.Email, f.ClientEmail)
	fill(&d.Client.Phone, f.ClientPhone)

	if f.TaxRate != nil && d.Tax.Rate == 0 {
		d.Tax.Rate = *f.TaxRate
	}
	fill(&d.Tax.Label, f.TaxName)
	if d.Discount.Type == "" && f.DiscountType != "" {
		d.Discount.Type = DiscountType(f.DiscountType)
	}
	if f.DiscountValue != nil && d.Discount.Value == 0 {
		d.Discount.Value = *f.DiscountValue
	}

	fill(&d.Signature.ImageURL, f.SignatureURL)
	fill(&d.Signature.StampURL, f.StampURL)
	fill(&d.Signature.Name, f.SignatureName)
	fill(&d.Signature.Title, f.SignatureTitle)
}

// UnmarshalJSON accepts both the nested layout and the flat browser layout,
// whose ids are numbers.
func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
		flatFields
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.ID = looseID(aux.ID)
	aux.flatFields.apply(d)
	return nil
}

// UnmarshalJSON accepts numeric item ids.
func (it *LineItem) UnmarshalJSON(data []byte) error {
	type plain LineItem
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(it)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	it.ID = looseID(aux.ID)
	return nil
}

// looseID reads a string or numeric id; anything else is no id.
func looseID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

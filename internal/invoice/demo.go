package invoice

import "time"

// DemoDocument is the sample invoice shown before a business profile exists.
func DemoDocument(now time.Time) *Document {
	d := &Document{
		Number:    GenerateNumber(DefaultPrefix, now),
		IssueDate: NewDate(now),
		DueDate:   NewDate(now).AddDays(DefaultPaymentTerms),
		Status:    StatusDraft,
		Business: Party{
			Name:    "Nexus Digital Solutions",
			Address: "1250 Innovation Drive, Suite 400\nSan Francisco, CA 94107\nUnited States",
			Email:   "billing@nexusdigital.io",
			Phone:   "+1 (415) 555-0198",
			LogoURL: "https://img.logoipsum.com/297.svg",
		},
		Client: Party{
			Name:    "Horizon Technologies Inc.",
			Address: "888 Enterprise Boulevard\nAustin, TX 78701\nUnited States",
			Email:   "accounts@horizontech.com",
			Phone:   "+1 (512) 555-0234",
		},
		Items: []LineItem{
			{Description: "Website Design & Development - E-commerce Platform", Quantity: 1, UnitPrice: 4500},
			{Description: "Custom API Integration Services", Quantity: 8, UnitPrice: 150},
			{Description: "UI/UX Design Consultation (hours)", Quantity: 12, UnitPrice: 95},
			{Description: "Monthly Hosting & Maintenance Package", Quantity: 3, UnitPrice: 199},
		},
		Discount: DiscountPolicy{Type: DiscountNone},
		Tax:      TaxPolicy{Rate: 8.25, Label: "Sales Tax"},
		Notes: "Payment is due within 30 days of invoice date.\n" +
			"Late payments may incur a 1.5% monthly fee.\n\n" +
			"Thank you for choosing Nexus Digital Solutions!",
		PaymentInfo: "Bank: First National Bank\n" +
			"Account Name: Nexus Digital Solutions LLC\n" +
			"Account Number: 4829-7156-3302\n" +
			"Routing: 021000089\n\n" +
			"Or pay via PayPal: payments@nexusdigital.io",
		Presentation: Presentation{
			Template:    DefaultTemplate,
			AccentColor: DefaultAccentColor,
			Language:    DefaultLanguage,
			Currency:    DefaultCurrency,
		},
		CreatedAt: now.UTC(),
	}
	d.Normalize()
	return d
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
)

func TestSettingsDefaults(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t), logger.NewNop())
	st, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Business.Configured())
	assert.Equal(t, "INV", st.Invoice.Prefix)
	require.Len(t, st.Tax, 3)
	assert.Equal(t, "GST", st.Tax[0].Name)

	ds := st.DocumentSettings()
	assert.Equal(t, 18.0, ds.TaxRate)
	assert.Equal(t, "GST", ds.TaxLabel)
	assert.Equal(t, 30, ds.Terms())
}

func TestSaveSettings(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(setupTestDB(t), logger.NewNop())

	_, err := svc.SaveBusiness(ctx, models.BusinessSettings{Name: "Acme", LogoURL: "javascript:alert(1)"})
	assert.True(t, ierr.IsValidation(err))
	_, err = svc.SaveBusiness(ctx, models.BusinessSettings{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)

	_, err = svc.SaveInvoice(ctx, models.InvoiceSettings{Template: "fancy"})
	assert.True(t, ierr.IsValidation(err))
	_, err = svc.SaveInvoice(ctx, models.InvoiceSettings{Currency: "XYZ"})
	assert.True(t, ierr.IsValidation(err))
	saved, err := svc.SaveInvoice(ctx, models.InvoiceSettings{Prefix: " BILL ", Currency: "eur", AccentColor: "nope"})
	require.NoError(t, err)
	assert.Equal(t, "BILL", saved.Prefix)
	assert.Equal(t, "EUR", saved.Currency)
	assert.Equal(t, "modern", saved.Template)
	assert.Equal(t, 30, saved.PaymentTerms)

	presets, err := svc.SaveTax(ctx, []models.TaxPreset{{Name: "VAT", Rate: 20}, {Name: " ", Rate: 5}, {Name: "Reduced", Rate: 5.5}})
	require.NoError(t, err)
	require.Len(t, presets, 2)
	_, err = svc.SaveTax(ctx, []models.TaxPreset{{Name: "Bad", Rate: 120}})
	assert.True(t, ierr.IsValidation(err))

	_, err = svc.SavePayment(ctx, models.PaymentSettings{BankName: "First Bank", Instructions: "Pay within 30 days"})
	require.NoError(t, err)

	st, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, st.Business.Configured())
	assert.Equal(t, "EUR", st.Invoice.Currency)
	require.Len(t, st.Tax, 2)
	assert.Equal(t, "VAT", st.Tax[0].Name)
	assert.Equal(t, "Reduced", st.Tax[1].Name)
	assert.Equal(t, "Bank: First Bank\n\nPay within 30 days", st.DocumentSettings().PaymentInfo)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
)

func TestClientCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(setupTestDB(t), logger.NewNop())

	_, err := svc.Save(ctx, &models.Client{Name: "  "})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	c, err := svc.Save(ctx, &models.Client{Name: " Horizon ", Email: "ap@horizon.test", Company: "Horizon Ventures"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	assert.Equal(t, "Horizon", c.Name)
	created := c.CreatedAt

	c.Phone = "555"
	c.CreatedAt = created.AddDate(-1, 0, 0)
	updated, err := svc.Save(ctx, c)
	require.NoError(t, err)
	assert.True(t, created.Equal(updated.CreatedAt), "created at must survive updates")

	_, err = svc.Save(ctx, &models.Client{Name: "Atlas", Email: "hi@atlas.test"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Atlas", all[0].Name)

	found, err := svc.List(ctx, "ventures")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "555", found[0].Phone)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, ierr.IsNotFound(svc.Delete(ctx, c.ID)))
	_, err = svc.Get(ctx, c.ID)
	assert.True(t, ierr.IsNotFound(err))
}

func TestExtractFromInvoices(t *testing.T) {
	ctx := context.Background()
	gdb := setupTestDB(t)
	invoices := NewInvoiceService(gdb, logger.NewNop())
	clients := NewClientService(gdb, logger.NewNop())

	for _, d := range []*invoice.Document{
		newInvoice("INV-1", "Acme", invoice.StatusPaid, 10),
		newInvoice("INV-2", "acme", invoice.StatusSent, 20),
		newInvoice("INV-3", "Known", invoice.StatusSent, 30),
		newInvoice("INV-4", "", invoice.StatusDraft, 40),
	} {
		_, err := invoices.Save(ctx, d)
		require.NoError(t, err)
	}
	_, err := clients.Save(ctx, &models.Client{Name: "Known", Email: "k@known.test"})
	require.NoError(t, err)

	created, err := clients.ExtractFromInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Acme", created[0].Name)
	assert.Equal(t, "Acme@example.com", created[0].Email)

	again, err := clients.ExtractFromInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

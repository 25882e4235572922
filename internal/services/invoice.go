package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/validation"
)

type InvoiceService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInvoiceService(db *gorm.DB, log *logger.Logger) *InvoiceService {
	return &InvoiceService{db: db, log: logger.Or(log)}
}

// Save validates and stores doc. A document without an ID, or with an ID
// that is not stored yet, is created; otherwise the record is replaced.
// The returned document is a fresh copy of what was stored.
func (s *InvoiceService) Save(ctx context.Context, doc *invoice.Document) (*invoice.Document, error) {
	if err := ValidateDocument(doc).Err(); err != nil {
		return nil, err
	}
	working := doc.Clone()
	working.Normalize()

	db := s.db.WithContext(ctx)
	var rec models.Invoice
	create := true
	if working.ID != "" {
		err := db.First(&rec, "id = ?", working.ID).Error
		switch {
		case err == nil:
			create = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec = models.Invoice{ID: working.ID}
		default:
			return nil, dbError(err, "load invoice")
		}
	} else {
		rec.ID = uuid.NewString()
	}

	rec.Sync(working)
	var err error
	if create {
		err = db.Create(&rec).Error
	} else {
		err = db.Save(&rec).Error
	}
	if err != nil {
		s.log.Errorw("failed to save invoice", "id", rec.ID, "number", rec.Number, "error", err)
		return nil, dbError(err, "save invoice")
	}
	s.log.Debugw("invoice saved", "id", rec.ID, "number", rec.Number, "created", create)
	return rec.ToDocument(), nil
}

// Get loads an invoice by ID or, failing that, by invoice number.
func (s *InvoiceService) Get(ctx context.Context, ref string) (*invoice.Document, error) {
	rec, err := s.record(ctx, ref)
	if err != nil {
		return nil, err
	}
	return rec.ToDocument(), nil
}

func (s *InvoiceService) record(ctx context.Context, ref string) (*models.Invoice, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ierr.NewError("empty invoice reference").Mark(ierr.ErrNotFound)
	}
	var rec models.Invoice
	err := s.db.WithContext(ctx).
		Where("id = ? OR number = ?", ref, ref).
		Order("updated_at desc").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ierr.WithError(err).
			WithHintf("invoice %q not found", ref).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, dbError(err, "load invoice")
	}
	return &rec, nil
}

// ListFilter narrows and orders List results. Zero values match everything.
type ListFilter struct {
	Query  string // matches number, client name or client email
	Status string // "" or "all" for any
	Range  string // today, week, month, quarter, year
	Sort   string // newest (default), oldest, highest, lowest
	Now    time.Time
}

// List returns stored invoices matching f.
func (s *InvoiceService) List(ctx context.Context, f ListFilter) ([]models.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&models.Invoice{})
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(number) LIKE ? OR LOWER(client_name) LIKE ? OR LOWER(client_email) LIKE ?", like, like, like)
	}
	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}
	var recs []models.Invoice
	if err := q.Find(&recs).Error; err != nil {
		return nil, dbError(err, "list invoices")
	}

	if since, ok := rangeStart(f.Range, lo.Ternary(f.Now.IsZero(), time.Now(), f.Now)); ok {
		recs = lo.Filter(recs, func(r models.Invoice, _ int) bool {
			return !r.SortDate().Before(since)
		})
	}
	sortInvoices(recs, f.Sort)
	return recs, nil
}

func rangeStart(r string, now time.Time) (time.Time, bool) {
	today := invoice.NewDate(now).Time
	switch r {
	case "today":
		return today, true
	case "week":
		return today.AddDate(0, 0, -7), true
	case "month":
		return today.AddDate(0, -1, 0), true
	case "quarter":
		return today.AddDate(0, -3, 0), true
	case "year":
		return today.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

func sortInvoices(recs []models.Invoice, order string) {
	slices.SortStableFunc(recs, func(a, b models.Invoice) int {
		switch order {
		case "oldest":
			return a.SortDate().Compare(b.SortDate())
		case "highest":
			return b.Total.Cmp(a.Total)
		case "lowest":
			return a.Total.Cmp(b.Total)
		default:
			return b.SortDate().Compare(a.SortDate())
		}
	})
}

// Delete removes the invoice with id or number ref.
func (s *InvoiceService) Delete(ctx context.Context, ref string) error {
	rec, err := s.record(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", rec.ID).Error; err != nil {
		return dbError(err, "delete invoice")
	}
	s.log.Infow("invoice deleted", "id", rec.ID, "number", rec.Number)
	return nil
}

// Duplicate stores a copy of ref under a new number dated now.
func (s *InvoiceService) Duplicate(ctx context.Context, ref string, settings invoice.Settings, now time.Time) (*invoice.Document, error) {
	src, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, invoice.Duplicate(src, settings, now))
}

// SetStatus updates the status of every listed invoice in one transaction.
func (s *InvoiceService) SetStatus(ctx context.Context, ids []string, status invoice.Status) (int, error) {
	if !status.Valid() {
		return 0, validation.Violations{"status": "invalid_value"}.Err()
	}
	updated := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recs []models.Invoice
		if err := tx.Where("id IN ?", lo.Uniq(ids)).Find(&recs).Error; err != nil {
			return err
		}
		for i := range recs {
			doc := recs[i].ToDocument()
			doc.Status = status
			recs[i].Sync(doc)
			if err := tx.Save(&recs[i]).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, dbError(err, "update invoice status")
	}
	return updated, nil
}

// GetRevenue sums the totals of paid invoices.
func (s *InvoiceService) GetRevenue(ctx context.Context) (decimal.Decimal, error) {
	var recs []models.Invoice
	err := s.db.WithContext(ctx).
		Select("total").
		Where("status = ?", invoice.StatusPaid).
		Find(&recs).Error
	if err != nil {
		return decimal.Zero, dbError(err, "load revenue")
	}
	return lo.Reduce(recs, func(acc decimal.Decimal, r models.Invoice, _ int) decimal.Decimal {
		return acc.Add(r.Total)
	}, decimal.Zero), nil
}

// InvoiceSummary is a list row on the dashboard.
type InvoiceSummary struct {
	ID         string          `json:"id"`
	Number     string          `json:"invoiceNumber"`
	ClientName string          `json:"clientName"`
	Status     invoice.Status  `json:"status"`
	Currency   string          `json:"currency"`
	Total      decimal.Decimal `json:"total"`
	Overdue    bool            `json:"overdue"`
}

// ClientTotal is the billed amount per client name.
type ClientTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// Dashboard aggregates invoice counts and amounts. Amounts are summed as
// plain numbers whatever their currency.
type Dashboard struct {
	TotalInvoices int              `json:"totalInvoices"`
	Paid          int              `json:"paid"`
	Pending       int              `json:"pending"`
	Overdue       int              `json:"overdue"`
	Drafts        int              `json:"drafts"`
	PaidAmount    decimal.Decimal  `json:"paidAmount"`
	PendingAmount decimal.Decimal  `json:"pendingAmount"`
	OverdueAmount decimal.Decimal  `json:"overdueAmount"`
	Revenue       decimal.Decimal  `json:"revenue"`
	Recent        []InvoiceSummary `json:"recent"`
	TopClients    []ClientTotal    `json:"topClients"`
}

const dashboardListSize = 5

// Dashboard computes the summary as of now. Revenue counts paid, pending
// and overdue invoices; drafts and cancelled invoices are excluded.
func (s *InvoiceService) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	recs, err := s.List(ctx, ListFilter{Sort: "newest", Now: now})
	if err != nil {
		return nil, err
	}
	d := &Dashboard{
		TotalInvoices: len(recs),
		Recent:        []InvoiceSummary{},
		TopClients:    []ClientTotal{},
	}
	for _, r := range recs {
		switch {
		case r.Status == invoice.StatusPaid:
			d.Paid++
			d.PaidAmount = d.PaidAmount.Add(r.Total)
		case r.Status == invoice.StatusCancelled:
		case r.IsOverdue(now):
			d.Overdue++
			d.OverdueAmount = d.OverdueAmount.Add(r.Total)
		case r.Status == invoice.StatusDraft:
			d.Drafts++
		default:
			d.Pending++
			d.PendingAmount = d.PendingAmount.Add(r.Total)
		}
	}
	d.Revenue = d.PaidAmount.Add(d.PendingAmount).Add(d.OverdueAmount)

	for _, r := range lo.Slice(recs, 0, dashboardListSize) {
		d.Recent = append(d.Recent, summarize(r, now))
	}

	byClient := map[string]decimal.Decimal{}
	var order []string
	for _, r := range recs {
		name := lo.Ternary(strings.TrimSpace(r.ClientName) == "", "Unknown Client", r.ClientName)
		if _, ok := byClient[name]; !ok {
			order = append(order, name)
		}
		byClient[name] = byClient[name].Add(r.Total)
	}
	tops := lo.Map(order, func(n string, _ int) ClientTotal { return ClientTotal{Name: n, Total: byClient[n]} })
	slices.SortStableFunc(tops, func(a, b ClientTotal) int { return b.Total.Cmp(a.Total) })
	d.TopClients = append(d.TopClients, lo.Slice(tops, 0, dashboardListSize)...)
	return d, nil
}

func summarize(r models.Invoice, now time.Time) InvoiceSummary {
	return InvoiceSummary{
		ID:         r.ID,
		Number:     r.Number,
		ClientName: r.ClientName,
		Status:     r.Status,
		Currency:   r.Currency,
		Total:      r.Total,
		Overdue:    r.IsOverdue(now),
	}
}

func dbError(err error, op string) error {
	return ierr.WithError(err).WithMessage(op).Mark(ierr.ErrDatabase)
}

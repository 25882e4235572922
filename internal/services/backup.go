package services

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
)

// BackupVersion is written to every export.
const BackupVersion = "1.0"

// Backup is the full export document. On import, nil sections are absent and
// left untouched; present sections (even empty ones) replace stored data.
type Backup struct {
	Version          string                   `json:"version"`
	ExportDate       time.Time                `json:"exportDate"`
	Invoices         []invoice.Document       `json:"invoices"`
	Clients          []models.Client          `json:"clients"`
	BusinessSettings *models.BusinessSettings `json:"businessSettings,omitempty"`
	InvoiceSettings  *models.InvoiceSettings  `json:"invoiceSettings,omitempty"`
	TaxSettings      []models.TaxPreset       `json:"taxSettings"`
	PaymentSettings  *models.PaymentSettings  `json:"paymentSettings,omitempty"`
}

// InvoiceExport wraps a single invoice for sharing.
type InvoiceExport struct {
	Version    string            `json:"version"`
	ExportDate time.Time         `json:"exportDate"`
	Invoice    *invoice.Document `json:"invoice"`
}

// ImportResult counts what an import applied.
type ImportResult struct {
	Invoices int      `json:"invoices"`
	Clients  int      `json:"clients"`
	Sections []string `json:"sections"`
}

type BackupService struct {
	db       *gorm.DB
	invoices *InvoiceService
	log      *logger.Logger
}

func NewBackupService(db *gorm.DB, log *logger.Logger) *BackupService {
	return &BackupService{db: db, invoices: NewInvoiceService(db, log), log: logger.Or(log)}
}

// Export snapshots every collection.
func (s *BackupService) Export(ctx context.Context, now time.Time) (*Backup, error) {
	db := s.db.WithContext(ctx)
	var recs []models.Invoice
	if err := db.Order("created_at").Find(&recs).Error; err != nil {
		return nil, dbError(err, "export invoices")
	}
	var clients []models.Client
	if err := db.Order("created_at").Find(&clients).Error; err != nil {
		return nil, dbError(err, "export clients")
	}
	st, err := loadSettings(db)
	if err != nil {
		return nil, err
	}
	return &Backup{
		Version:    BackupVersion,
		ExportDate: now.UTC(),
		Invoices: lo.Map(recs, func(r models.Invoice, _ int) invoice.Document {
			return *r.ToDocument()
		}),
		Clients:          lo.Ternary(clients == nil, []models.Client{}, clients),
		BusinessSettings: &st.Business,
		InvoiceSettings:  &st.Invoice,
		TaxSettings:      st.Tax,
		PaymentSettings:  &st.Payment,
	}, nil
}

// DecodeBackup parses a backup and rejects documents without a version.
func DecodeBackup(r io.Reader) (*Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, ierr.WithError(err).WithHint("backup file is not valid JSON").Mark(ierr.ErrInvalidBackup)
	}
	if err := b.check(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Backup) check() error {
	if strings.TrimSpace(b.Version) == "" {
		return ierr.NewError("backup has no version").
			WithHint("invalid backup file: missing version").
			Mark(ierr.ErrInvalidBackup)
	}
	return nil
}

// Import applies every section present in b inside one transaction, so a
// failure leaves stored data as it was. Invoices that fail validation abort
// the whole import.
func (s *BackupService) Import(ctx context.Context, b *Backup) (*ImportResult, error) {
	if b == nil {
		return nil, ierr.NewError("empty backup").Mark(ierr.ErrInvalidBackup)
	}
	if err := b.check(); err != nil {
		return nil, err
	}
	for i := range b.Invoices {
		if err := ValidateDocument(&b.Invoices[i]).Err(); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("invoice %d (%s) is invalid", i, b.Invoices[i].Number).
				Mark(ierr.ErrInvalidBackup)
		}
	}

	res := &ImportResult{Sections: []string{}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if b.Invoices != nil {
			if err := all.Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
			for i := range b.Invoices {
				rec := invoiceRecord(&b.Invoices[i])
				if err := tx.Create(rec).Error; err != nil {
					return err
				}
			}
			res.Invoices = len(b.Invoices)
			res.Sections = append(res.Sections, "invoices")
		}
		if b.Clients != nil {
			if err := all.Delete(&models.Client{}).Error; err != nil {
				return err
			}
			clients := make([]models.Client, len(b.Clients))
			copy(clients, b.Clients)
			if len(clients) > 0 {
				if err := tx.Create(&clients).Error; err != nil {
					return err
				}
			}
			res.Clients = len(clients)
			res.Sections = append(res.Sections, "clients")
		}
		if b.BusinessSettings != nil {
			bs := *b.BusinessSettings
			bs.ID = models.SingletonID
			if err := tx.Save(&bs).Error; err != nil {
				return err
			}
			res.Sections = append(res.Sections, "businessSettings")
		}
		if b.InvoiceSettings != nil {
			is := *b.InvoiceSettings
			is.ID = models.SingletonID
			if err := tx.Save(&is).Error; err != nil {
				return err
			}
			res.Sections = append(res.Sections, "invoiceSettings")
		}
		if b.TaxSettings != nil {
			if err := replacePresets(tx, cleanPresets(b.TaxSettings)); err != nil {
				return err
			}
			res.Sections = append(res.Sections, "taxSettings")
		}
		if b.PaymentSettings != nil {
			ps := *b.PaymentSettings
			ps.ID = models.SingletonID
			if err := tx.Save(&ps).Error; err != nil {
				return err
			}
			res.Sections = append(res.Sections, "paymentSettings")
		}
		return nil
	})
	if err != nil {
		s.log.Errorw("backup import failed", "error", err)
		return nil, dbError(err, "import backup")
	}
	s.log.Infow("backup imported", "invoices", res.Invoices, "clients", res.Clients, "sections", res.Sections)
	return res, nil
}

func invoiceRecord(doc *invoice.Document) *models.Invoice {
	d := doc.Clone()
	d.Normalize()
	rec := &models.Invoice{ID: lo.Ternary(d.ID == "", uuid.NewString(), d.ID)}
	rec.Sync(d)
	return rec
}

// ExportInvoice wraps one stored invoice.
func (s *BackupService) ExportInvoice(ctx context.Context, ref string, now time.Time) (*InvoiceExport, error) {
	doc, err := s.invoices.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &InvoiceExport{Version: BackupVersion, ExportDate: now.UTC(), Invoice: doc}, nil
}

// ImportInvoice stores the wrapped invoice as a new record.
func (s *BackupService) ImportInvoice(ctx context.Context, in *InvoiceExport) (*invoice.Document, error) {
	if in == nil || strings.TrimSpace(in.Version) == "" {
		return nil, ierr.NewError("invoice export has no version").
			WithHint("invalid invoice file: missing version").
			Mark(ierr.ErrInvalidBackup)
	}
	if in.Invoice == nil {
		return nil, ierr.NewError("invoice export has no invoice").
			WithHint("invalid invoice file: missing invoice").
			Mark(ierr.ErrInvalidBackup)
	}
	doc := in.Invoice.Clone()
	doc.ID = ""
	return s.invoices.Save(ctx, doc)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/currency"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/validation"
	"github.com/diewo77/invoice-builder/view"
)

// Settings is every settings section at once.
type Settings struct {
	Business models.BusinessSettings `json:"businessSettings"`
	Invoice  models.InvoiceSettings  `json:"invoiceSettings"`
	Tax      []models.TaxPreset      `json:"taxSettings"`
	Payment  models.PaymentSettings  `json:"paymentSettings"`
}

// DocumentSettings returns the defaults for seeding new documents.
func (s *Settings) DocumentSettings() invoice.Settings {
	return models.DocumentSettings(s.Invoice, s.Payment, s.Tax)
}

type SettingsService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsService(db *gorm.DB, log *logger.Logger) *SettingsService {
	return &SettingsService{db: db, log: logger.Or(log)}
}

// Get loads all sections. Missing rows come back as their defaults.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	return loadSettings(s.db.WithContext(ctx))
}

func loadSettings(db *gorm.DB) (*Settings, error) {
	out := &Settings{Invoice: models.DefaultInvoiceSettings()}
	if err := firstOrDefault(db, &out.Business); err != nil {
		return nil, dbError(err, "load business settings")
	}
	if err := firstOrDefault(db, &out.Invoice); err != nil {
		return nil, dbError(err, "load invoice settings")
	}
	if err := firstOrDefault(db, &out.Payment); err != nil {
		return nil, dbError(err, "load payment settings")
	}
	if err := db.Order("position").Find(&out.Tax).Error; err != nil {
		return nil, dbError(err, "load tax presets")
	}
	if out.Tax == nil {
		out.Tax = []models.TaxPreset{}
	}
	return out, nil
}

// firstOrDefault loads the singleton row into dst, leaving dst untouched when absent.
func firstOrDefault(db *gorm.DB, dst any) error {
	err := db.Where("id = ?", models.SingletonID).Take(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *SettingsService) SaveBusiness(ctx context.Context, b models.BusinessSettings) (*models.BusinessSettings, error) {
	v := validation.Violations{}
	validation.Required("name", b.Name, v)
	if strings.TrimSpace(b.LogoURL) != "" && view.SafeImageURL(b.LogoURL) == "" {
		v["logo"] = "invalid_value"
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	b.ID = models.SingletonID
	if err := s.db.WithContext(ctx).Save(&b).Error; err != nil {
		return nil, dbError(err, "save business settings")
	}
	return &b, nil
}

func (s *SettingsService) SaveInvoice(ctx context.Context, in models.InvoiceSettings) (*models.InvoiceSettings, error) {
	v := validation.Violations{}
	if in.PaymentTerms < 0 {
		v["paymentTerms"] = "must_be_non_negative"
	}
	if in.Currency != "" {
		if _, ok := currency.Lookup(in.Currency); !ok {
			v["currency"] = "invalid_value"
		}
	}
	validation.OneOf("template", in.Template, lo.Map(view.Variants(), func(x view.Variant, _ int) string { return string(x) }), v)
	if err := v.Err(); err != nil {
		return nil, err
	}
	def := models.DefaultInvoiceSettings()
	in.ID = models.SingletonID
	in.Prefix = lo.Ternary(strings.TrimSpace(in.Prefix) == "", def.Prefix, strings.TrimSpace(in.Prefix))
	in.Currency = lo.Ternary(in.Currency == "", def.Currency, strings.ToUpper(in.Currency))
	in.Template = lo.Ternary(in.Template == "", def.Template, in.Template)
	if in.PaymentTerms == 0 {
		in.PaymentTerms = def.PaymentTerms
	}
	if in.NextNumber < 1 {
		in.NextNumber = 1
	}
	if in.AccentColor != "" {
		in.AccentColor = string(view.SafeAccent(in.AccentColor))
	}
	if err := s.db.WithContext(ctx).Save(&in).Error; err != nil {
		return nil, dbError(err, "save invoice settings")
	}
	return &in, nil
}

// SaveTax replaces the tax presets. Presets with empty names are dropped.
func (s *SettingsService) SaveTax(ctx context.Context, presets []models.TaxPreset) ([]models.TaxPreset, error) {
	kept := cleanPresets(presets)
	v := validation.Violations{}
	for i, p := range kept {
		validation.RangeFloat(fmt.Sprintf("taxSettings[%d].rate", i), p.Rate.Float(), 0, 100, v)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replacePresets(tx, kept)
	})
	if err != nil {
		return nil, dbError(err, "save tax presets")
	}
	return kept, nil
}

func cleanPresets(presets []models.TaxPreset) []models.TaxPreset {
	kept := lo.Filter(presets, func(p models.TaxPreset, _ int) bool {
		return strings.TrimSpace(p.Name) != ""
	})
	return lo.Map(kept, func(p models.TaxPreset, i int) models.TaxPreset {
		return models.TaxPreset{Name: strings.TrimSpace(p.Name), Rate: p.Rate, Position: i}
	})
}

func replacePresets(tx *gorm.DB, presets []models.TaxPreset) error {
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.TaxPreset{}).Error; err != nil {
		return err
	}
	if len(presets) == 0 {
		return nil
	}
	return tx.Create(&presets).Error
}

func (s *SettingsService) SavePayment(ctx context.Context, p models.PaymentSettings) (*models.PaymentSettings, error) {
	p.ID = models.SingletonID
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, dbError(err, "save payment settings")
	}
	return &p, nil
}

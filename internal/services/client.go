package services

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/validation"
)

type ClientService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientService(db *gorm.DB, log *logger.Logger) *ClientService {
	return &ClientService{db: db, log: logger.Or(log)}
}

// List returns clients ordered by name, optionally filtered by a search term
// over name, email and company.
func (s *ClientService) List(ctx context.Context, query string) ([]models.Client, error) {
	q := s.db.WithContext(ctx).Order("name")
	if term := strings.ToLower(strings.TrimSpace(query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?", like, like, like)
	}
	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		return nil, dbError(err, "list clients")
	}
	return clients, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	err := s.db.WithContext(ctx).First(&c, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ierr.WithError(err).WithHintf("client %q not found", id).Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, dbError(err, "load client")
	}
	return &c, nil
}

// ValidateClient requires a name and an email.
func ValidateClient(c *models.Client) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	validation.Required("email", c.Email, v)
	return v
}

// Save creates c when it has no ID, otherwise updates the stored client.
func (s *ClientService) Save(ctx context.Context, c *models.Client) (*models.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if err := ValidateClient(c).Err(); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if c.ID == "" {
		if err := db.Create(c).Error; err != nil {
			return nil, dbError(err, "create client")
		}
		return c, nil
	}
	existing, err := s.Get(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt
	if err := db.Save(c).Error; err != nil {
		return nil, dbError(err, "update client")
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return dbError(res.Error, "delete client")
	}
	if res.RowsAffected == 0 {
		return ierr.NewError("client not found").WithHintf("client %q not found", id).Mark(ierr.ErrNotFound)
	}
	return nil
}

// ExtractFromInvoices creates a client for every distinct client name on
// stored invoices that is not in the address book yet. It returns the
// clients it created.
func (s *ClientService) ExtractFromInvoices(ctx context.Context) ([]models.Client, error) {
	var recs []models.Invoice
	if err := s.db.WithContext(ctx).Order("created_at").Find(&recs).Error; err != nil {
		return nil, dbError(err, "load invoices")
	}
	existing, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	known := lo.SliceToMap(existing, func(c models.Client) (string, bool) {
		return strings.ToLower(c.Name), true
	})

	candidates := lo.UniqBy(lo.Filter(recs, func(r models.Invoice, _ int) bool {
		name := strings.TrimSpace(r.ClientName)
		return name != "" && !known[strings.ToLower(name)]
	}), func(r models.Invoice) string { return strings.ToLower(strings.TrimSpace(r.ClientName)) })

	created := lo.Map(candidates, func(r models.Invoice, _ int) models.Client {
		doc := r.ToDocument()
		return models.Client{
			Name:    strings.TrimSpace(doc.Client.Name),
			Email:   doc.Client.Email,
			Phone:   doc.Client.Phone,
			Address: doc.Client.Address,
		}
	})
	if len(created) == 0 {
		return []models.Client{}, nil
	}
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, dbError(err, "create clients")
	}
	s.log.Infow("clients extracted from invoices", "count", len(created))
	return created, nil
}

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/internal/invoice"
)

// Client is an address book entry used to pre-fill invoices.
type Client struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name    string `gorm:"size:255;not null;index" json:"name"`
	Email   string `gorm:"size:255" json:"email"`
	Phone   string `gorm:"size:50" json:"phone"`
	Company string `gorm:"size:255" json:"company"`
	Address string `gorm:"size:1000" json:"address"`
	GST     string `gorm:"size:20" json:"gst"`
	PAN     string `gorm:"size:20" json:"pan"`
	Notes   string `gorm:"type:text" json:"notes"`
}

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

// Party returns the client as the bill-to block of an invoice.
func (c *Client) Party() invoice.Party {
	addr := c.Address
	if c.Company != "" && c.Company != c.Name {
		addr = strings.TrimSpace(c.Company + "\n" + addr)
	}
	return invoice.Party{
		Name:    c.Name,
		Address: addr,
		Email:   c.Email,
		Phone:   c.Phone,
	}
}

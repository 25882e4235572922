package services

import (
	"context"
	"strings"
	"time"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/invoice"
)

// Source says where an editor document came from.
type Source string

const (
	SourceLoaded Source = "loaded"
	SourceClient Source = "client"
	SourceNew    Source = "new"
	SourceDemo   Source = "demo"
)

// EditorRequest mirrors the editor navigation parameters.
type EditorRequest struct {
	Load     string // invoice ID or number; "edit" is an alias
	Client   string // client ID to pre-fill a new invoice
	Download bool
	Lang     string // language for notices
}

// EditorState is the document the editor should show.
type EditorState struct {
	Document *invoice.Document `json:"document"`
	Source   Source            `json:"source"`
	Notice   string            `json:"notice,omitempty"`
	Download bool              `json:"download,omitempty"`
}

type EditorService struct {
	invoices *InvoiceService
	clients  *ClientService
	settings *SettingsService
	now      func() time.Time
}

func NewEditorService(inv *InvoiceService, cl *ClientService, st *SettingsService) *EditorService {
	return &EditorService{invoices: inv, clients: cl, settings: st, now: time.Now}
}

// Open resolves the editor parameters. Loading an invoice takes precedence
// over pre-filling from a client. Unknown references fall back to a fresh
// document with a notice instead of failing.
func (s *EditorService) Open(ctx context.Context, req EditorRequest) (*EditorState, error) {
	now := s.now()
	if ref := strings.TrimSpace(req.Load); ref != "" {
		doc, err := s.invoices.Get(ctx, ref)
		switch {
		case err == nil:
			return &EditorState{Document: doc, Source: SourceLoaded, Download: req.Download}, nil
		case !ierr.IsNotFound(err):
			return nil, err
		}
		st, err := s.fresh(ctx, now)
		if err != nil {
			return nil, err
		}
		st.Notice = i18n.T(req.Lang, i18n.NoticeLoadNotFound)
		return st, nil
	}

	st, err := s.fresh(ctx, now)
	if err != nil {
		return nil, err
	}
	if id := strings.TrimSpace(req.Client); id != "" {
		c, err := s.clients.Get(ctx, id)
		switch {
		case err == nil:
			st.Document.Client = c.Party()
			st.Document.PONumber = ""
			st.Document.ShippingAddress = ""
			st.Source = SourceClient
		case ierr.IsNotFound(err):
			st.Notice = i18n.T(req.Lang, i18n.NoticeClientGone)
		default:
			return nil, err
		}
	}
	return st, nil
}

// fresh builds a new document from the saved business profile, or the demo
// invoice when no profile has been saved.
func (s *EditorService) fresh(ctx context.Context, now time.Time) (*EditorState, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.Business.Configured() {
		return &EditorState{Document: invoice.DemoDocument(now), Source: SourceDemo}, nil
	}
	return &EditorState{
		Document: invoice.NewDocument(cfg.DocumentSettings(), cfg.Business.Party(), now),
		Source:   SourceNew,
	}, nil
}

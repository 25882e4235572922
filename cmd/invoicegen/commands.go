package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/diewo77/invoice-builder/internal/config"
	"github.com/diewo77/invoice-builder/internal/currency"
	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/invoice"
	"github.com/diewo77/invoice-builder/internal/logger"
	"github.com/diewo77/invoice-builder/internal/pdf"
	"github.com/diewo77/invoice-builder/internal/preview"
	"github.com/diewo77/invoice-builder/view"
)

func outFlag() cli.Flag {
	return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"}
}

func variantFlag() cli.Flag {
	return &cli.StringFlag{Name: "variant", Usage: "modern, classic, minimal or corporate (default: the document's template)"}
}

func newApp(w io.Writer) *cli.App {
	return &cli.App{
		Name:      "invoicegen",
		Usage:     "compute, render and export invoice documents",
		Writer:    w,
		ErrWriter: w,
		Commands: []*cli.Command{
			{
				Name:      "totals",
				Usage:     "print the totals of a document",
				ArgsUsage: "<invoice.json>",
				Action:    totalsCmd,
			},
			{
				Name:      "render",
				Usage:     "render a document as a standalone HTML page",
				ArgsUsage: "<invoice.json>",
				Flags:     []cli.Flag{outFlag(), variantFlag()},
				Action:    renderCmd,
			},
			{
				Name:      "pdf",
				Usage:     "export a document as PDF",
				ArgsUsage: "<invoice.json>",
				Flags:     []cli.Flag{outFlag()},
				Action:    pdfCmd,
			},
			{
				Name:      "watch",
				Usage:     "re-render a document to HTML whenever the file changes",
				ArgsUsage: "<invoice.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output HTML file", Required: true},
					variantFlag(),
					&cli.DurationFlag{Name: "delay", Usage: "debounce delay (default PREVIEW_DEBOUNCE_MS)"},
				},
				Action: watchCmd,
			},
			{
				Name:  "number",
				Usage: "generate an invoice number",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Value: invoice.DefaultPrefix, Usage: "number prefix"},
				},
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprintln(c.App.Writer, invoice.GenerateNumber(c.String("prefix"), time.Now()))
					return err
				},
			},
			{
				Name:   "demo",
				Usage:  "write the demo document as JSON",
				Flags:  []cli.Flag{outFlag()},
				Action: demoCmd,
			},
		},
	}
}

func readDocument(c *cli.Context) (*invoice.Document, error) {
	path := c.Args().First()
	if path == "" {
		return nil, cli.Exit("missing document file", 2)
	}
	return loadDocument(path)
}

func loadDocument(path string) (*invoice.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ierr.WithError(err).WithHintf("cannot open %s", path).Mark(ierr.ErrNotFound)
	}
	defer f.Close()
	var doc invoice.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, ierr.WithError(err).WithHintf("%s is not a valid invoice document", path).Mark(ierr.ErrValidation)
	}
	doc.Normalize()
	return &doc, nil
}

// output writes b to the --out file, or to the app writer when unset.
func output(c *cli.Context, b []byte) error {
	if path := c.String("out"); path != "" {
		return os.WriteFile(path, b, 0o644)
	}
	_, err := c.App.Writer.Write(b)
	return err
}

func totalsCmd(c *cli.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}
	t := doc.Totals()
	code := doc.Presentation.Currency
	lines := []struct {
		label  string
		amount string
	}{
		{"Subtotal", currency.Format(t.Subtotal, code)},
		{"Discount", currency.Format(t.Discount, code)},
		{"After discount", currency.Format(t.AfterDiscount, code)},
		{"Tax", currency.Format(t.Tax, code)},
		{"Total", currency.Format(t.Total, code)},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(c.App.Writer, "%-15s %s\n", l.label, l.amount); err != nil {
			return err
		}
	}
	return nil
}

func renderHTML(doc *invoice.Document, variant string) ([]byte, error) {
	v := view.Lookup(doc.Presentation.Template)
	if variant != "" {
		v = view.Lookup(variant)
	}
	body, err := view.RenderVariant(doc, v, view.DefaultFormatters())
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := view.PageDocument(&sb, doc.Number, doc.Presentation.Language, body); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func renderCmd(c *cli.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}
	out, err := renderHTML(doc, c.String("variant"))
	if err != nil {
		return err
	}
	return output(c, out)
}

func pdfCmd(c *cli.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}
	out, err := pdf.Generate(doc, view.DefaultFormatters())
	if err != nil {
		return err
	}
	path := c.String("out")
	if path == "" {
		path = pdf.FileName(doc)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, path)
	return err
}

func watchCmd(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("missing document file", 2)
	}
	delay := c.Duration("delay")
	if delay <= 0 {
		delay = config.Load().Preview.Debounce()
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch(ctx, path, c.String("out"), c.String("variant"), delay, logger.L)
}

// watch re-renders src into dst until ctx is done. Errors while the file is
// half-written are logged and the previous output is kept.
func watch(ctx context.Context, src, dst, variant string, delay time.Duration, log *logger.Logger) error {
	return preview.Watch(ctx, src, delay, func() {
		doc, err := loadDocument(src)
		if err != nil {
			log.Warnw("skipping render", "path", src, "error", err)
			return
		}
		out, err := renderHTML(doc, variant)
		if err != nil {
			log.Errorw("render failed", "path", src, "error", err)
			return
		}
		if err := os.WriteFile(dst, out, 0o644); err != nil {
			log.Errorw("write failed", "path", dst, "error", err)
			return
		}
		log.Infow("rendered", "path", dst, "total", currency.Format(doc.Totals().Total, doc.Presentation.Currency))
	}, log)
}

func demoCmd(c *cli.Context) error {
	b, err := json.MarshalIndent(invoice.DemoDocument(time.Now()), "", "  ")
	if err != nil {
		return err
	}
	return output(c, append(b, '\n'))
}

// Package export converts rendered document HTML to PDF using a headless
// browser. Requires Chrome/Chromium to be installed on the system.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single PDF conversion.
const DefaultTimeout = 30 * time.Second

// PDFExporter renders HTML into a PDF byte stream.
type PDFExporter interface {
	ExportPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeExporter implements PDFExporter with a headless Chrome instance
// launched per export. Launch cost is acceptable at this call volume.
type ChromeExporter struct {
	timeout time.Duration
}

// NewChromeExporter creates an exporter. A non-positive timeout falls
// back to DefaultTimeout.
func NewChromeExporter(timeout time.Duration) *ChromeExporter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChromeExporter{timeout: timeout}
}

// ExportPDF loads the HTML via a data URL and prints it to PDF with
// print-background enabled so template accent colors survive.
func (e *ChromeExporter) ExportPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.timeout)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("PDF rendering failed: %w", err)
	}
	return pdf, nil
}

package readiness

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-readiness-report/internal/fileutil"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// A4 page dimensions and report margins. Chrome's printToPDF takes
// inches, so millimeter values are converted at build time.
const (
	mmPerInch = 25.4

	paperWidthMM  = 210.0
	paperHeightMM = 297.0

	marginVerticalMM   = 20.0 // top and bottom
	marginHorizontalMM = 15.0 // left and right
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser    *rod.Browser
	timeout    time.Duration
	settleWait time.Duration
}

// newRodRenderer creates a rodRenderer with the given operation timeout
// and post-load settle bound.
func newRodRenderer(timeout, settleWait time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout, settleWait: settleWait}
}

// ensureBrowser lazily connects to the browser.
// Sandboxing and GPU use are disabled so the renderer works in
// containers without extra privileges.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().
		NoSandbox(true).
		Set("disable-gpu")

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Let late resources (fonts, remote images) settle. Bounded idle
	// wait rather than a fixed sleep; timing out here is not an error.
	_ = page.WaitIdle(r.settleWait)

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF for the report:
// A4, background graphics on, 20mm vertical and 15mm horizontal margins.
func buildPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthMM / mmPerInch),
		PaperHeight:     floatPtr(paperHeightMM / mmPerInch),
		MarginTop:       floatPtr(marginVerticalMM / mmPerInch),
		MarginBottom:    floatPtr(marginVerticalMM / mmPerInch),
		MarginLeft:      floatPtr(marginHorizontalMM / mmPerInch),
		MarginRight:     floatPtr(marginHorizontalMM / mmPerInch),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
	closer   io.Closer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout, settleWait time.Duration) *rodConverter {
	r := newRodRenderer(timeout, settleWait)
	return &rodConverter{renderer: r, closer: r}
}

// ToPDF converts HTML content to PDF bytes using headless Chrome.
// A zero-length buffer from the renderer is rejected with ErrEmptyPDF.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pdfBuf, err := c.renderer.RenderFromFile(ctx, tmpPath)
	if err != nil {
		return nil, err
	}
	if len(pdfBuf) == 0 {
		return nil, ErrEmptyPDF
	}
	return pdfBuf, nil
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

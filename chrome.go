package cvpdf

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ahmednasr999/opportunity-engine-sub001/internal/fileutil"
	"github.com/ahmednasr999/opportunity-engine-sub001/internal/process"
)

// pdfConverter prints an HTML page to PDF. The browser engine's only
// dependency on Chrome.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pageSource prints a page already on disk.
type pageSource interface {
	PrintFile(ctx context.Context, path string, page PageSettings) ([]byte, error)
	Close() error
}

var (
	_ pdfConverter = (*chromePrinter)(nil)
	_ pageSource   = (*chromeBrowser)(nil)
)

type pdfOptions struct {
	Page PageSettings
}

// chromePrinter stages HTML in a temp file so relative asset URLs resolve
// from disk, then prints it.
type chromePrinter struct {
	source pageSource
}

func newChromePrinter(timeout time.Duration) *chromePrinter {
	return &chromePrinter{source: &chromeBrowser{timeout: timeout, getenv: os.Getenv}}
}

func (c *chromePrinter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	var page PageSettings
	if opts != nil {
		page = opts.Page
	}

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.source.PrintFile(ctx, path, page)
}

func (c *chromePrinter) Close() error {
	if c.source == nil {
		return nil
	}
	return c.source.Close()
}

// chromeBrowser owns one headless Chrome process, launched on first use.
type chromeBrowser struct {
	timeout  time.Duration
	getenv   func(string) string
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (b *chromeBrowser) connect() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := b.getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if disableSandbox(b.getenv) {
		l = l.NoSandbox(true)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = browser
	b.launcher = l
	return nil
}

// disableSandbox reports whether Chrome must run without its sandbox.
// Containers and CI runners usually lack the namespaces it needs.
func disableSandbox(getenv func(string) string) bool {
	switch {
	case getenv("ROD_NO_SANDBOX") == "1":
		return true
	case getenv("CVPDF_CONTAINER") == "1":
		return true
	case getenv("CI") == "true":
		return true
	case getenv("ROD_BROWSER_BIN") != "":
		return true
	}
	return false
}

// PrintFile loads path in a new tab and prints it. The tab is closed on return.
func (b *chromeBrowser) PrintFile(ctx context.Context, path string, page PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.connect(); err != nil {
		return nil, err
	}

	tab, err := b.browser.Page(proto.TargetCreateTarget{URL: fileURL(path)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = tab.Close() }()

	wait := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		wait = time.Until(deadline)
		if wait <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := tab.Context(ctx).Timeout(wait).WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	stream, err := tab.PDF(printOptions(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// Close shuts Chrome down. Helper processes that outlive the browser are
// killed with their process group.
func (b *chromeBrowser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		if pid := b.launcher.PID(); pid > 0 {
			_ = process.TerminateTree(pid)
		}
		b.launcher.Kill()
		b.launcher.Cleanup()
		b.launcher = nil
	}
	return err
}

// fileURL returns a file:// URL for a local path.
func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if filepath.VolumeName(path) != "" {
		u.Path = "/" + u.Path
	}
	return u.String()
}

// printOptions maps page settings onto Chrome's print parameters.
func printOptions(page PageSettings) *proto.PagePrintToPDF {
	page = page.withDefaults()
	width, height := page.paperInches()
	margin := page.Margin

	return &proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
		PrintBackground: true,
	}
}

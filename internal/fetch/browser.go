package fetch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-toolcards/internal/logging"
	"github.com/alnah/go-toolcards/internal/process"
)

// BrowserSource fetches pages through headless Chrome, for directory sites
// that build their tool lists with JavaScript. Rod downloads Chromium on
// first use if no browser is found.
type BrowserSource struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *zap.Logger
}

// NewBrowserSource creates a BrowserSource. The browser starts on the first
// Fetch, not here.
func NewBrowserSource(opts ClientOptions) *BrowserSource {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserSource{timeout: timeout, logger: logging.OrNop(opts.Logger)}
}

// ensureBrowser lazily launches and connects to the browser.
func (b *BrowserSource) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		b.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.browser = browser
	b.logger.Debug("browser started", zap.Int("pid", l.PID()))
	return nil
}

// Fetch opens url in a new tab, waits for the load event and returns the
// resulting DOM serialized as HTML.
func (b *BrowserSource) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", ErrEmptyURL
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureBrowser(); err != nil {
		return "", err
	}

	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}
	defer func() { _ = page.Close() }()

	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: reading DOM of %s: %v", ErrPageLoad, url, err)
	}
	return html, nil
}

// Close shuts the browser down and removes its process tree.
func (b *BrowserSource) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	b.killLauncher()
	return err
}

func (b *BrowserSource) killLauncher() {
	if b.launcher == nil {
		return
	}
	process.KillTree(b.launcher.PID())
	b.launcher.Kill()
	b.launcher.Cleanup()
	b.launcher = nil
}

// Package rod provides a browser-based implementation of annuaire.Fetcher
// for place websites that render their content with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/lmertens/annuaire"
)

// DefaultMaxPages is the number of pages fetched before the browser is
// recycled. Chrome leaks memory under sustained load even with proper page
// cleanup; restarting it periodically keeps long enrichment runs stable.
const DefaultMaxPages = 75

// Ensure Fetcher implements annuaire.Fetcher at compile time.
var _ annuaire.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using headless Chrome, recycling the
// browser every maxPages fetches. Safe for concurrent use.
type Fetcher struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int
	maxPages  int
	closed    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets the number of pages fetched before browser recycling.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	browser, lnchr, err := launch()
	if err != nil {
		return nil, err
	}
	f.browser = browser
	f.launcher = lnchr

	return f, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	return page.HTML()
}

// acquire returns the current browser, recycling it first if the page
// budget is spent. If relaunching fails the old browser is kept so fetches
// can continue.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, annuaire.Errorf(annuaire.EINTERNAL, "fetcher is closed")
	}

	if f.pageCount >= f.maxPages {
		if browser, lnchr, err := launch(); err == nil {
			old, oldLauncher := f.browser, f.launcher
			f.browser, f.launcher = browser, lnchr
			f.pageCount = 0
			if old != nil {
				_ = old.Close()
			}
			if oldLauncher != nil {
				oldLauncher.Kill()
			}
		}
	}

	f.pageCount++
	return f.browser, nil
}

// Close releases browser resources. Safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// launch starts a headless Chrome instance with stability flags.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return browser, lnchr, nil
}

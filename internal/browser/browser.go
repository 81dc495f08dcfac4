// Package browser acquires rendered seller-orders pages through a scripted
// Chrome session. It owns navigation, the interactive login pause, and the
// scroll pass that forces lazy-loaded rows in; the extraction pipeline only
// ever sees the final snapshot.
package browser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ordersift/ordersift/internal/dom"
	"github.com/ordersift/ordersift/internal/logger"
)

// Config configures one browser session.
type Config struct {
	// ProfileDir is the Chrome user-data directory. A dedicated profile
	// keeps the operator logged in between runs.
	ProfileDir string
	// Headless runs Chrome without a window. Interactive login needs a
	// visible window, so leave this off for sources that may be signed out.
	Headless bool
	// Timeout bounds the whole acquisition, navigation through snapshot.
	Timeout time.Duration
	// ScrollSteps and ScrollPause drive the lazy-load scroll pass.
	ScrollSteps int
	ScrollPause time.Duration
}

// Session is a single-source Chrome session.
type Session struct {
	logger logger.Interface
	cfg    Config

	// stdin is where the login pause reads the operator's Enter from.
	stdin io.Reader
}

// NewSession creates a browser session.
func NewSession(log logger.Interface, cfg Config) *Session {
	return &Session{
		logger: log,
		cfg:    cfg,
		stdin:  os.Stdin,
	}
}

// Snapshot navigates to pageURL, waits for the page to become minimally
// ready, handles a sign-in redirect, scrolls the lazy-loaded table to the
// bottom, and returns the rendered document as a queryable snapshot.
func (s *Session) Snapshot(ctx context.Context, pageURL string) (*dom.Document, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
	)
	if s.cfg.ProfileDir != "" {
		if err := os.MkdirAll(s.cfg.ProfileDir, 0o755); err != nil {
			return nil, fmt.Errorf("create profile dir: %w", err)
		}
		opts = append(opts, chromedp.UserDataDir(s.cfg.ProfileDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, s.cfg.Timeout)
		defer cancel()
	}

	if err := s.navigate(browserCtx, pageURL); err != nil {
		return nil, err
	}
	if err := s.scrollToBottom(browserCtx); err != nil {
		// Lazy loading is best-effort: a failed scroll still leaves a
		// usable page.
		s.logger.Warn("Scroll pass failed", "error", err)
	}

	var markup string
	if err := chromedp.Run(browserCtx,
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}

	return dom.ParseString(markup)
}

// navigate loads the page and, when the site bounces to its sign-in flow,
// pauses for the operator to log in in the Chrome window before re-loading.
func (s *Session) navigate(ctx context.Context, pageURL string) error {
	if err := chromedp.Run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	var current string
	if err := chromedp.Run(ctx, chromedp.Location(&current)); err != nil {
		return fmt.Errorf("read location: %w", err)
	}
	if !isSignInURL(current) {
		return nil
	}

	s.logger.Info("Redirected to sign-in; log in in the Chrome window, then press Enter")
	fmt.Fprintln(os.Stderr, "Redirected to sign-in. Please log in in the Chrome window, then press Enter here.")
	reader := bufio.NewReader(s.stdin)
	if _, err := reader.ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("wait for login: %w", err)
	}

	if err := chromedp.Run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate after login: %w", err)
	}
	return nil
}

// scrollToBottom repeatedly scrolls the viewport to the document bottom,
// pausing between steps so lazy-loaded rows have time to attach.
func (s *Session) scrollToBottom(ctx context.Context) error {
	for i := 0; i < s.cfg.ScrollSteps; i++ {
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(`window.scrollBy(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(s.cfg.ScrollPause),
		); err != nil {
			return err
		}
	}
	return nil
}

// isSignInURL reports whether the browser landed on the sign-in flow.
func isSignInURL(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	return strings.Contains(lower, "signin") || strings.Contains(lower, "login")
}

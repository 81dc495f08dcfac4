package scrape

import (
	"context"
	"fmt"

	"github.com/ordersift/ordersift/internal/browser"
	"github.com/ordersift/ordersift/internal/config"
	"github.com/ordersift/ordersift/internal/extract"
	"github.com/ordersift/ordersift/internal/fetch"
	"github.com/ordersift/ordersift/internal/logger"
)

// treeProvider selects the acquisition collaborator per source driver:
// a scripted Chrome session for live pages, a static fetch for snapshots.
type treeProvider struct {
	logger logger.Interface
	cfg    *config.Config
}

func newTreeProvider(log logger.Interface, cfg *config.Config) *treeProvider {
	return &treeProvider{logger: log, cfg: cfg}
}

// Acquire returns a queryable snapshot of the orders page for one source.
func (p *treeProvider) Acquire(ctx context.Context, src config.Source) (extract.Tree, error) {
	pageURL := p.cfg.PageURL(src)
	log := p.logger.WithSource(src.Name)

	switch src.Driver {
	case config.DriverBrowser:
		session := browser.NewSession(log, browser.Config{
			ProfileDir:  src.ProfileDir,
			Headless:    src.Headless,
			Timeout:     p.cfg.Scrape.Timeout,
			ScrollSteps: p.cfg.Scrape.Scroll.Steps,
			ScrollPause: p.cfg.Scrape.Scroll.Pause,
		})
		return session.Snapshot(ctx, pageURL)
	case config.DriverStatic:
		fetcher := fetch.NewFetcher(log, p.cfg.Scrape.Timeout)
		return fetcher.Snapshot(pageURL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, src.Driver)
	}
}

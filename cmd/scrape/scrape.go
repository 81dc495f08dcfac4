// Package scrape implements the scrape command: one pipeline run per
// configured source, merged, rendered to the console, and saved as CSV.
package scrape

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/ordersift/ordersift/cmd/common"
	"github.com/ordersift/ordersift/internal/aggregate"
	"github.com/ordersift/ordersift/internal/config"
	"github.com/ordersift/ordersift/internal/extract"
	"github.com/ordersift/ordersift/internal/logger"
	"github.com/ordersift/ordersift/internal/metrics"
	"github.com/ordersift/ordersift/internal/output"
)

// Scraper handles the scrape operation.
type Scraper struct {
	config     *config.Config
	logger     logger.Interface
	aggregator *aggregate.Aggregator
	renderer   *output.TableRenderer
	csvWriter  *output.CSVWriter
	metrics    *metrics.RunMetrics
}

// NewScraper creates a new scraper instance.
func NewScraper(
	cfg *config.Config,
	log logger.Interface,
	aggregator *aggregate.Aggregator,
	renderer *output.TableRenderer,
	csvWriter *output.CSVWriter,
	m *metrics.RunMetrics,
) *Scraper {
	return &Scraper{
		config:     cfg,
		logger:     log,
		aggregator: aggregator,
		renderer:   renderer,
		csvWriter:  csvWriter,
		metrics:    m,
	}
}

// Start runs the aggregated scrape and feeds the result to the sinks.
func (s *Scraper) Start(ctx context.Context, sources []config.Source) error {
	if len(sources) == 0 {
		s.logger.Info("No sources found in configuration. Please add sources to your config file.")
		s.logger.Info("You can use the 'sources list' command to view configured sources.")
		return config.ErrNoSources
	}

	dataset, err := s.aggregator.Run(ctx, sources)
	if err != nil {
		return fmt.Errorf("all sources failed: %w", err)
	}

	if s.config.Output.Sort {
		dataset = output.SortForDisplay(dataset)
	}

	s.renderer.RenderTable(dataset)

	if s.config.Output.CSVPath != "" {
		if err := s.csvWriter.Write(s.config.Output.CSVPath, dataset); err != nil {
			return fmt.Errorf("save csv: %w", err)
		}
	}

	snap := s.metrics.Snapshot()
	s.logger.Info("Scrape complete",
		"sources_succeeded", snap.SourcesSucceeded,
		"sources_failed", snap.SourcesFailed,
		"records", snap.RecordsExtracted,
		"elapsed", snap.Elapsed)
	return nil
}

// Command returns the scrape command for use in the root command.
func Command() *cobra.Command {
	var (
		maxRecords int
		status     string
		sourceName string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Extract order records from the configured sources",
		Long: `This command acquires the seller-orders page for every configured source,
runs the record-extraction pipeline over each, merges the results, renders
them as a table, and saves them to a CSV file.

The --source flag restricts the run to one configured source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			scraper, sources, err := constructScraperDependencies(deps, maxRecords, status, sourceName)
			if err != nil {
				return err
			}

			return scraper.Start(cmd.Context(), sources)
		},
	}

	cmd.Flags().IntVar(&maxRecords, "max-records", 0,
		"Override the scrape.max_records setting (0 means use the configured value)")
	cmd.Flags().StringVar(&status, "status", "",
		"Override the orders status filter, e.g. AWAITING_SHIPMENT")
	cmd.Flags().StringVar(&sourceName, "source", "",
		"Run only the named source")

	return cmd
}

// constructScraperDependencies applies flag overrides and wires the
// aggregator and sinks.
func constructScraperDependencies(
	deps *cmdcommon.CommandDeps,
	maxRecords int,
	status string,
	sourceName string,
) (*Scraper, []config.Source, error) {
	cfg := deps.Config
	log := deps.Logger

	if maxRecords > 0 {
		log.Info("Overriding max_records with flag value", "max_records", maxRecords)
		cfg.Scrape.MaxRecords = maxRecords
	}
	if status != "" {
		cfg.Scrape.Status = status
	}

	sources := cfg.Sources
	if sourceName != "" {
		sources = nil
		for _, src := range cfg.Sources {
			if src.Name == sourceName {
				sources = append(sources, src)
			}
		}
		if len(sources) == 0 {
			return nil, nil, fmt.Errorf("source %q not found in configuration", sourceName)
		}
	}

	opts := extract.Options{MaxRecords: cfg.Scrape.MaxRecords}
	if cfg.Scrape.Filter.Enabled {
		opts.Filter = extract.NewKeywordFilter(cfg.Scrape.Filter.Keywords)
	}

	m := metrics.NewRunMetrics()
	provider := newTreeProvider(log, cfg)
	aggregator := aggregate.New(log, provider, opts, cfg.Scrape.Parallel, m)
	renderer := output.NewTableRenderer(log, cfg.Output.TitleWidth)
	csvWriter := output.NewCSVWriter(log)

	return NewScraper(cfg, log, aggregator, renderer, csvWriter, m), sources, nil
}

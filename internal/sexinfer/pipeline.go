package sexinfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/inodb/sexcheck/internal/regions"
	"github.com/inodb/sexcheck/internal/vcf"
)

// Config holds the tunable surface of a run. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// MinQual excludes records at or below this QUAL from both
	// aggregators.
	MinQual float64
	// MaxSkipRate escalates to a fatal corrupt-input error when the
	// fraction of malformed records exceeds it.
	MaxSkipRate float64
	// MinSkipRateRecords is the number of records a group must have seen
	// before the skip rate is enforced, so a single bad record in a tiny
	// region cannot fail a run.
	MinSkipRateRecords int
	// Workers caps how many chromosome groups scan concurrently. Values
	// outside [1, number of groups] mean one worker per group.
	Workers int
	// Thresholds are the classifier bands.
	Thresholds Thresholds
	// Regions restricts the scan (typically to non-pseudoautosomal
	// regions). Empty means whole chromosomes 1-22, X and Y.
	Regions []vcf.Region
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinQual:            20,
		MaxSkipRate:        0.5,
		MinSkipRateRecords: 20,
		Workers:            len(AllGroups()),
		Thresholds:         DefaultThresholds(),
	}
}

// CorruptInputError reports a group whose malformed-record rate exceeded
// the configured limit: the data is too corrupt to trust.
type CorruptInputError struct {
	Group   Group
	Skipped int
	Seen    int
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("input too corrupt to trust: %d of %d records malformed in %s group",
		e.Skipped, e.Seen, e.Group)
}

// Pipeline runs one aggregation pass per chromosome group and classifies
// the combined statistics. A pipeline is stateless given its source and
// configuration; each Run is independent.
type Pipeline struct {
	src    vcf.Source
	cfg    Config
	logger *zap.Logger
}

// NewPipeline creates a pipeline over the given source.
func NewPipeline(src vcf.Source, cfg Config) *Pipeline {
	return &Pipeline{
		src:    src,
		cfg:    cfg,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and warning messages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Run aggregates the three groups in parallel and classifies the result.
//
// Error policy: a failing autosomal baseline is fatal for the run, as is
// a corrupt-input escalation anywhere. A sex chromosome missing from the
// index degrades to "no data" and the classifier reports Indeterminate
// wherever an input is absent, rather than refusing to produce a result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	regs := p.cfg.Regions
	if len(regs) == 0 {
		regs = regions.Defaults()
	}
	byGroup := SplitByGroup(regs, p.src.HasChrPrefix())

	type outcome struct {
		group Group
		stats GroupStats
		err   error
	}

	groups := AllGroups()
	out := make(chan outcome, len(groups))

	workers := p.cfg.Workers
	if workers < 1 || workers > len(groups) {
		workers = len(groups)
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for _, g := range groups {
		wg.Add(1)
		go func(g Group) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			stats, err := p.aggregate(ctx, g, byGroup[g])
			out <- outcome{group: g, stats: stats, err: err}
		}(g)
	}
	wg.Wait()
	close(out)

	stats := make(map[Group]GroupStats, len(groups))
	var fatal error
	for o := range out {
		if o.err == nil {
			stats[o.group] = o.stats
			continue
		}

		var notFound *vcf.RegionNotFoundError
		if errors.As(o.err, &notFound) && o.group != Autosomes {
			p.logger.Warn("sex chromosome absent from index, treating as no data",
				zap.Stringer("group", o.group),
				zap.Error(o.err))
			stats[o.group] = (&accumulator{}).finalize(o.group)
			continue
		}

		if fatal == nil {
			fatal = o.err
		}
	}
	if fatal != nil {
		return nil, fatal
	}

	verdict := NewClassifier(p.cfg.Thresholds).Classify(stats[Autosomes], stats[ChrX], stats[ChrY])
	p.logger.Info("classified sample",
		zap.Stringer("depth_call", verdict.DepthCall),
		zap.Stringer("zygosity_call", verdict.ZygosityCall),
		zap.Stringer("verdict", verdict.Combined))

	return newResult(stats, verdict), nil
}

// aggregate scans every region of one group into a fresh accumulator.
// The accumulator never leaves this goroutine.
func (p *Pipeline) aggregate(ctx context.Context, g Group, regs []vcf.Region) (GroupStats, error) {
	acc := &accumulator{}
	for _, reg := range regs {
		if err := p.scanRegion(ctx, reg, acc); err != nil {
			return GroupStats{}, err
		}
	}

	if rate, seen := acc.skipRate(); seen >= p.cfg.MinSkipRateRecords && rate > p.cfg.MaxSkipRate {
		return GroupStats{}, &CorruptInputError{Group: g, Skipped: acc.skipped, Seen: seen}
	}

	stats := acc.finalize(g)
	p.logger.Debug("aggregated group",
		zap.Stringer("group", g),
		zap.Int("records", stats.Records),
		zap.Int("low_qual", stats.LowQual),
		zap.Int("skipped", stats.Skipped))

	return stats, nil
}

func (p *Pipeline) scanRegion(ctx context.Context, reg vcf.Region, acc *accumulator) error {
	it, err := p.src.Query(ctx, reg)
	if err != nil {
		return err
	}
	defer it.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := it.Next()
		if err != nil {
			var malformed *vcf.MalformedRecordError
			if errors.As(err, &malformed) {
				acc.addMalformed()
				p.logger.Debug("skipping malformed record", zap.Error(err))
				continue
			}
			return fmt.Errorf("scan %s: %w", reg, err)
		}
		if rec == nil {
			return nil
		}

		if rec.Qual <= p.cfg.MinQual {
			acc.addLowQual()
			continue
		}
		acc.add(rec)
	}
}

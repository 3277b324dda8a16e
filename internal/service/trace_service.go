package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nfrtrace/internal/domain"
	"nfrtrace/internal/preprocess"
	"nfrtrace/internal/rank"
	"nfrtrace/internal/similarity"
	"nfrtrace/internal/trace"
	"nfrtrace/internal/vectorspace"
)

// Run names one variant/threshold chain.
type Run struct {
	Variant   preprocess.Variant
	Threshold float64
}

// Result holds every artifact of one chain. Nothing in it is shared with
// another Result.
type Result struct {
	Variant    preprocess.Variant
	Threshold  float64
	Documents  []domain.TokenDocument
	Weights    *vectorspace.WeightMatrix
	Candidates domain.CandidateSet
	Ranked     domain.CandidateSet
	Trace      domain.TraceMatrix
}

// TraceService drives preprocess -> TF-IDF -> cosine -> rank -> binarize.
type TraceService struct {
	opts vectorspace.Options
	log  *zap.Logger
}

func NewTraceService(opts vectorspace.Options, log *zap.Logger) *TraceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TraceService{opts: opts, log: log}
}

// Run executes one chain over c. Each stage finishes before the next starts.
func (s *TraceService) Run(ctx context.Context, c *domain.Corpus, variant preprocess.Variant, threshold float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: nil corpus", domain.ErrInvalidCorpus)
	}
	log := s.log.With(zap.String("variant", string(variant)), zap.Float64("threshold", threshold))

	docs, err := preprocess.Process(c, variant)
	if err != nil {
		return nil, err
	}
	weights := vectorspace.NewBuilder(s.opts).Build(docs)
	log.Debug("tf-idf fitted", zap.Int("documents", len(weights.Rows)), zap.Int("terms", weights.Dimension()))

	candidates, err := similarity.Score(weights, c.IDs(), c.NFRCount())
	if err != nil {
		return nil, err
	}
	if log.Core().Enabled(zap.DebugLevel) {
		for _, nfr := range candidates.NFRs {
			for _, cand := range candidates.List(nfr) {
				log.Debug("cosine similarity", zap.String("nfr", nfr), zap.String("fr", cand.FRID), zap.Float64("score", cand.Score))
			}
		}
	}

	ranked := rank.RankAll(candidates)
	matrix := trace.Binarize(candidates, threshold)
	log.Info("trace matrix built", zap.Int("frs", len(matrix.FRs)), zap.Int("links", trace.Links(matrix)))

	return &Result{
		Variant:    variant,
		Threshold:  threshold,
		Documents:  docs,
		Weights:    weights,
		Candidates: candidates,
		Ranked:     ranked,
		Trace:      matrix,
	}, nil
}

// RunAll executes every chain independently and returns results in runs order.
// The corpus is only read, so chains may run side by side.
func (s *TraceService) RunAll(ctx context.Context, c *domain.Corpus, runs []Run) ([]*Result, error) {
	results := make([]*Result, len(runs))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range runs {
		i, r := i, r
		g.Go(func() error {
			res, err := s.Run(gctx, c, r.Variant, r.Threshold)
			if err != nil {
				return fmt.Errorf("variant %s: %w", r.Variant, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nfrtrace/internal/config"
	"nfrtrace/internal/domain"
	"nfrtrace/internal/evaluate"
	"nfrtrace/internal/loader"
	"nfrtrace/internal/logger"
	"nfrtrace/internal/preprocess"
	"nfrtrace/internal/report"
	"nfrtrace/internal/service"
	"nfrtrace/internal/store"
	"nfrtrace/internal/trace"
	"nfrtrace/internal/vectorspace"
)

// pipelineFlags are shared by run and browse.
type pipelineFlags struct {
	input     string
	variants  []string
	threshold float64
	nfrCount  int
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Requirements file (overrides config requirements)")
	cmd.Flags().StringSliceVar(&f.variants, "variant", nil, "Variants to run: v1, v2, v3 (default: all configured)")
	cmd.Flags().Float64Var(&f.threshold, "threshold", 0, "Threshold applied to every selected variant (overrides config)")
	cmd.Flags().IntVar(&f.nfrCount, "nfrs", 0, "Number of leading requirements that are NFRs (overrides config nfr_count)")
}

var (
	runFlags   pipelineFlags
	runTop     int
	runOut     string
	runGold    string
	runHistory bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build ranked candidates and trace matrices for each variant",
	RunE:  runRun,
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().IntVar(&runTop, "top", 0, "Ranked candidates kept per NFR in ranked_<variant>.csv (overrides config top_n)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Output directory (overrides config output.dir)")
	runCmd.Flags().StringVar(&runGold, "gold", "", "Gold trace matrix CSV to evaluate against")
	runCmd.Flags().BoolVar(&runHistory, "history", false, "Record each run in the SQLite history")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	cfg := *appCfg

	if cmd.Flags().Changed("top") {
		cfg.TopN = runTop
	}
	if runOut != "" {
		cfg.Output.Dir = runOut
	}
	if runGold != "" {
		cfg.Gold = runGold
	}
	if runHistory {
		cfg.History.Enabled = true
	}

	corpus, results, err := runPipeline(ctx, &cfg, &runFlags, cmd.Flags().Changed("threshold"))
	if err != nil {
		return err
	}

	topN := rankedLimit(log, cfg.TopN, corpus.FRCount())
	for _, res := range results {
		if err := writeArtifacts(cfg.Output, corpus, res, topN); err != nil {
			return fmt.Errorf("write %s artifacts: %w", res.Variant, err)
		}
	}
	log.Info("artifacts written", zap.String("dir", cfg.Output.Dir), zap.Int("variants", len(results)))

	var metrics map[preprocess.Variant]*evaluate.Metrics
	if cfg.Gold != "" {
		gold, err := loader.LoadTraceMatrix(cfg.Gold)
		if err != nil {
			return withExitCode(ExitDataError, fmt.Errorf("load gold matrix: %w", err))
		}
		metrics = evaluateResults(log, results, gold)
	}

	if cfg.History.Enabled {
		if err := recordHistory(ctx, cfg.History.Path, cfg.Requirements, results, metrics); err != nil {
			return err
		}
	}

	printSummary(cmd.OutOrStdout(), results, metrics)
	return nil
}

// runPipeline loads the corpus and runs every selected variant concurrently.
func runPipeline(ctx context.Context, cfg *config.AppConfig, f *pipelineFlags, thresholdSet bool) (*domain.Corpus, []*service.Result, error) {
	log := logger.FromContext(ctx)
	if f.input != "" {
		cfg.Requirements = f.input
	}
	if f.nfrCount > 0 {
		cfg.NFRCount = f.nfrCount
	}
	if cfg.Requirements == "" {
		return nil, nil, withExitCode(ExitConfigError, fmt.Errorf("no requirements file: pass --input or set requirements in config"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, withExitCode(ExitConfigError, err)
	}

	var override *float64
	if thresholdSet {
		override = &f.threshold
	}
	runs, err := selectRuns(cfg.Variants, f.variants, override)
	if err != nil {
		return nil, nil, err
	}

	corpus, err := loader.LoadCorpus(cfg.Requirements, cfg.NFRCount)
	if err != nil {
		return nil, nil, withExitCode(ExitDataError, err)
	}
	log.Info("corpus loaded",
		zap.String("path", cfg.Requirements),
		zap.Int("nfrs", corpus.NFRCount()),
		zap.Int("frs", corpus.FRCount()))

	opts := vectorspace.Options{
		Lowercase:   cfg.Vectorizer.LowercaseEnabled(),
		MinTokenLen: cfg.Vectorizer.MinTokenLen,
	}
	svc := service.NewTraceService(opts, log)
	results, err := svc.RunAll(ctx, corpus, runs)
	if err != nil {
		return nil, nil, err
	}
	return corpus, results, nil
}

// selectRuns picks the configured variants named in only (all when empty),
// in configured order. threshold, if non-nil, replaces every configured value.
func selectRuns(configured []config.VariantConfig, only []string, threshold *float64) ([]service.Run, error) {
	want := make(map[preprocess.Variant]bool, len(only))
	for _, name := range only {
		v, err := preprocess.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		want[v] = true
	}

	var runs []service.Run
	for _, vc := range configured {
		v, err := preprocess.ParseVariant(vc.Name)
		if err != nil {
			return nil, err
		}
		if len(want) > 0 && !want[v] {
			continue
		}
		delete(want, v)
		th := vc.Threshold
		if threshold != nil {
			th = *threshold
		}
		runs = append(runs, service.Run{Variant: v, Threshold: th})
	}
	for v := range want {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("variant %s is not configured", v))
	}
	return runs, nil
}

// writeArtifacts writes the CSV outputs of one chain into out.Dir.
func writeArtifacts(out config.OutputConfig, corpus *domain.Corpus, res *service.Result, topN int) error {
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return err
	}
	v := string(res.Variant)
	files := []struct {
		name  string
		write func(io.Writer) error
		skip  bool
	}{
		{name: "ranked_" + v + ".csv", write: func(w io.Writer) error { return report.WriteRanked(w, res.Ranked, topN) }},
		{name: "cross_" + v + ".csv", write: func(w io.Writer) error { return report.WriteCrossBlock(w, res.Candidates) }},
		{name: "trace_" + v + ".csv", write: func(w io.Writer) error { return report.WriteTrace(w, res.Trace) }},
		{
			name:  "preprocessed_" + v + ".csv",
			write: func(w io.Writer) error { return report.WritePreprocessed(w, corpus.IDs(), res.Documents) },
			skip:  !out.WritePreprocessed,
		},
		{
			name:  "weights_" + v + ".csv",
			write: func(w io.Writer) error { return report.WriteWeights(w, corpus.IDs(), res.Weights) },
			skip:  !out.WriteWeights,
		},
	}
	for _, file := range files {
		if file.skip {
			continue
		}
		if err := writeFile(filepath.Join(out.Dir, file.name), file.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// rankedLimit returns how many candidates per NFR the ranked export keeps.
// A top_n beyond the FR count is logged and clamped to the full list.
func rankedLimit(log *zap.Logger, topN, frCount int) int {
	if topN > frCount {
		log.Warn("top_n exceeds FR count, writing full ranking",
			zap.Int("top_n", topN),
			zap.Int("frs", frCount))
		return frCount
	}
	return topN
}

// sweepThresholds are the candidate cut-offs tried against a gold matrix.
func sweepThresholds() []float64 {
	out := make([]float64, 0, 51)
	for i := 0; i <= 50; i++ {
		out = append(out, float64(i)/100)
	}
	return out
}

func evaluateResults(log *zap.Logger, results []*service.Result, gold domain.TraceMatrix) map[preprocess.Variant]*evaluate.Metrics {
	out := make(map[preprocess.Variant]*evaluate.Metrics, len(results))
	for _, res := range results {
		m := evaluate.Compare(res.Trace, gold)
		out[res.Variant] = &m
		log.Info("evaluated against gold",
			zap.String("variant", string(res.Variant)),
			zap.Float64("precision", m.Precision),
			zap.Float64("recall", m.Recall),
			zap.Float64("f2", m.F2))
		if best, ok := evaluate.Best(evaluate.Sweep(res.Candidates, gold, sweepThresholds()), 2); ok {
			log.Info("best threshold by F2",
				zap.String("variant", string(res.Variant)),
				zap.Float64("threshold", best.Threshold),
				zap.Float64("f2", best.Metrics.F2))
		}
	}
	return out
}

func recordHistory(ctx context.Context, path, source string, results []*service.Result, metrics map[preprocess.Variant]*evaluate.Metrics) error {
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	for _, res := range results {
		id, err := db.SaveRun(ctx, store.RunRecord{
			CreatedAt: now,
			Source:    source,
			Variant:   string(res.Variant),
			Threshold: res.Threshold,
			FRCount:   len(res.Trace.FRs),
			Links:     trace.Links(res.Trace),
			Trace:     res.Trace,
			Metrics:   metrics[res.Variant],
		})
		if err != nil {
			return fmt.Errorf("save %s run: %w", res.Variant, err)
		}
		logger.FromContext(ctx).Debug("run recorded", zap.Int64("id", id), zap.String("variant", string(res.Variant)))
	}
	return nil
}

func printSummary(w io.Writer, results []*service.Result, metrics map[preprocess.Variant]*evaluate.Metrics) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"VARIANT", "THRESHOLD", "FRS", "LINKS"}
	if metrics != nil {
		header = append(header, "PRECISION", "RECALL", "F2")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, res := range results {
		row := []string{
			string(res.Variant),
			fmt.Sprintf("%.2f", res.Threshold),
			fmt.Sprintf("%d", len(res.Trace.FRs)),
			fmt.Sprintf("%d", trace.Links(res.Trace)),
		}
		if m := metrics[res.Variant]; m != nil {
			row = append(row, fmt.Sprintf("%.3f", m.Precision), fmt.Sprintf("%.3f", m.Recall), fmt.Sprintf("%.3f", m.F2))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

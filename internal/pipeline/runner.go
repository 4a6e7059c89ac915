// Package pipeline runs the load, bin, summarize and render stages of one run.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/inodb/vibe-density/internal/annotation"
	"github.com/inodb/vibe-density/internal/chart"
	"github.com/inodb/vibe-density/internal/config"
	"github.com/inodb/vibe-density/internal/density"
	"github.com/inodb/vibe-density/internal/duckdb"
	"github.com/inodb/vibe-density/internal/output"
	"github.com/inodb/vibe-density/internal/render"
	"github.com/inodb/vibe-density/internal/vcf"
)

// Result collects what a run produced.
type Result struct {
	Positions []int64
	Bins      density.Result
	Summary   density.Summary
	Features  []annotation.CDSFeature
	Genes     []annotation.GeneCount
	Density   chart.DensityChart
	CDS       chart.AnnotationChart
}

// Runner executes one run for a Config. Every stage runs once, in order.
type Runner struct {
	cfg    config.Config
	logger *zap.Logger
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg config.Config) *Runner {
	return &Runner{cfg: cfg, logger: zap.NewNop()}
}

// SetLogger sets the logger for progress and warning messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Bin loads variant positions, bins them and writes the summary table.
func (r *Runner) Bin() (*Result, error) {
	if r.cfg.VCFPath == "" {
		return nil, fmt.Errorf("variant file is required")
	}

	positions, stats, err := vcf.LoadPositionsFromFile(r.cfg.VCFPath, vcf.PositionFilter{
		Chrom:    r.cfg.Chrom,
		SNVOnly:  r.cfg.SNVOnly,
		PassOnly: r.cfg.PassOnly,
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("loaded variants",
		zap.String("path", r.cfg.VCFPath),
		zap.Int("records", stats.Records),
		zap.Int("positions", len(positions)),
		zap.Int("other_chrom", stats.OtherChrom),
		zap.Int("not_snv", stats.NotSNV),
		zap.Int("not_pass", stats.NotPass))
	if r.cfg.Chrom == "" && len(stats.Chromosomes) > 1 {
		r.logger.Warn("variant file has several chromosomes; all are binned on one axis",
			zap.Int("chromosomes", len(stats.Chromosomes)))
	}
	if len(positions) == 0 {
		r.logger.Warn("no variants to bin", zap.String("path", r.cfg.VCFPath))
	}

	bins, err := density.Bin(positions, r.cfg.GenomeLength, r.cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	if bins.Dropped > 0 {
		r.logger.Debug("positions outside genome dropped",
			zap.Int("dropped", bins.Dropped),
			zap.Int64("genome_length", r.cfg.GenomeLength))
	}

	sum := density.Summarize(bins.Bins)
	r.logger.Info("binned variants",
		zap.Int("windows", len(bins.Bins)),
		zap.Int("binned", bins.Binned),
		zap.Float64("median", sum.Median),
		zap.Float64("q95", sum.Q95),
		zap.Int("max", sum.Max))

	res := &Result{Positions: positions, Bins: bins, Summary: sum}
	if r.cfg.SummaryPath != "" {
		if err := r.writeSummary(res); err != nil {
			return nil, err
		}
		r.logger.Info("wrote summary", zap.String("path", r.cfg.SummaryPath))
	}
	return res, nil
}

// Plot runs Bin, loads the annotation and writes the figure and optional
// HTML page.
func (r *Runner) Plot() (*Result, error) {
	if r.cfg.AnnotationPath == "" {
		return nil, fmt.Errorf("annotation file is required")
	}
	if r.cfg.FigurePath == "" && r.cfg.HTMLPath == "" {
		return nil, fmt.Errorf("no figure or html output requested")
	}
	if r.cfg.FigurePath != "" {
		if _, err := render.NewCanvas(render.FormatFromPath(r.cfg.FigurePath), vg.Inch, vg.Inch); err != nil {
			return nil, err
		}
	}

	res, err := r.Bin()
	if err != nil {
		return nil, err
	}

	loader := annotation.NewLoader(r.cfg.AnnotationPath)
	loader.SetChrom(r.cfg.Chrom)
	loader.SetLogger(r.logger)
	features, stats, err := loader.Load()
	if err != nil {
		return nil, err
	}
	annotation.MarkHighlighted(features, r.cfg.HighlightSet())
	res.Features = features
	r.logger.Info("loaded CDS features",
		zap.String("path", r.cfg.AnnotationPath),
		zap.Int("features", stats.Features),
		zap.Int("highlighted", countHighlighted(features)))
	if len(features) == 0 {
		r.logger.Warn("no CDS features in annotation", zap.String("path", r.cfg.AnnotationPath))
	}

	res.Genes = annotation.CountByGene(features, res.Positions)
	for _, g := range res.Genes {
		log := r.logger.Debug
		if g.Highlight {
			log = r.logger.Info
		}
		log("variants in gene", zap.String("gene", g.GeneName), zap.Int("count", g.Count))
	}

	res.Density = chart.BuildDensity(res.Bins.Bins, res.Summary, r.cfg)
	res.CDS = chart.BuildAnnotation(features, r.cfg)

	if r.cfg.FigurePath != "" {
		top, err := render.DensityPlot(res.Density)
		if err != nil {
			return nil, fmt.Errorf("density chart: %w", err)
		}
		fig := render.NewFigure(top, render.AnnotationPlot(res.CDS),
			vg.Length(r.cfg.WidthInches)*vg.Inch, vg.Length(r.cfg.HeightInches)*vg.Inch)
		if err := fig.Save(r.cfg.FigurePath); err != nil {
			return nil, err
		}
		r.logger.Info("wrote figure", zap.String("path", r.cfg.FigurePath))
	}

	if r.cfg.HTMLPath != "" {
		if err := render.SaveHTML(r.cfg.HTMLPath, res.Density, res.CDS); err != nil {
			return nil, err
		}
		r.logger.Info("wrote html", zap.String("path", r.cfg.HTMLPath))
	}

	return res, nil
}

// writeSummary picks the table format from the summary file extension.
func (r *Runner) writeSummary(res *Result) error {
	path := r.cfg.SummaryPath
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".db":
		return r.writeDuckDB(path, res)
	case ".csv":
		return writeFile(path, func(f *os.File) output.SummaryWriter { return output.NewCSVWriter(f) }, res.Bins.Bins)
	default:
		return writeFile(path, func(f *os.File) output.SummaryWriter { return output.NewTabWriter(f) }, res.Bins.Bins)
	}
}

func writeFile(path string, newWriter func(*os.File) output.SummaryWriter, bins []density.BinCount) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := newWriter(f).WriteBins(bins); err != nil {
		f.Close()
		return fmt.Errorf("write summary: %w", err)
	}
	return f.Close()
}

func (r *Runner) writeDuckDB(path string, res *Result) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing summary: %w", err)
	}
	store, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WriteBins(res.Bins.Bins); err != nil {
		return err
	}

	input := duckdb.FileFingerprint{Path: r.cfg.VCFPath}
	if r.cfg.VCFPath != "-" {
		if input, err = duckdb.StatFile(r.cfg.VCFPath); err != nil {
			return fmt.Errorf("stat variant file: %w", err)
		}
	}
	return store.WriteRun(duckdb.RunInfo{
		Input:        input,
		GenomeLength: r.cfg.GenomeLength,
		WindowSize:   r.cfg.WindowSize,
		Binned:       res.Bins.Binned,
		Dropped:      res.Bins.Dropped,
		Median:       res.Summary.Median,
		Q95:          res.Summary.Q95,
	})
}

func countHighlighted(features []annotation.CDSFeature) int {
	n := 0
	for _, f := range features {
		if f.Highlight {
			n++
		}
	}
	return n
}

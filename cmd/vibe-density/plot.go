package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-density/internal/config"
	"github.com/inodb/vibe-density/internal/pipeline"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [flags] [<vcf> <annotation>]",
		Short: "Bin variants and draw the density and CDS figure",
		Long: `Bin variant positions into fixed-width windows, write the per-window summary
and draw the density chart stacked above the CDS chart.

The summary format follows the --summary extension (.tsv, .csv or .duckdb) and
the figure format follows the --figure extension (.png, .svg, .pdf, .jpg, .tif).
Highlight regions are read from the config file.`,
		Example: `  vibe-density plot calls.vcf.gz genomic.gff
  vibe-density plot --vcf calls.vcf --annotation genes.gtf --window-size 500 --figure fig.pdf
  vibe-density plot --config run.yaml --html density.html`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, args)
			if err != nil {
				return err
			}
			defer logger.Sync()

			r := pipeline.NewRunner(cfg)
			r.SetLogger(logger)
			_, err = r.Plot()
			return err
		},
	}
	addRunFlags(cmd.Flags())
	cmd.Flags().String("annotation", "", "GFF3 or GTF annotation file (plain or gzipped)")
	cmd.Flags().String("figure", config.DefaultFigurePath, "Figure output file")
	cmd.Flags().String("html", "", "Interactive HTML output file (optional)")
	cmd.Flags().StringSlice("highlight-gene", nil, "Gene name to highlight in the CDS chart (repeatable)")
	cmd.Flags().Float64("width", config.DefaultWidthInches, "Figure width in inches")
	cmd.Flags().Float64("height", config.DefaultHeightInches, "Figure height in inches")
	return cmd
}

func newBinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bin [flags] [<vcf>]",
		Short: "Bin variants and write the per-window summary only",
		Example: `  vibe-density bin calls.vcf.gz
  vibe-density bin --window-size 1000 --summary windows.duckdb calls.vcf.gz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, args)
			if err != nil {
				return err
			}
			defer logger.Sync()

			r := pipeline.NewRunner(cfg)
			r.SetLogger(logger)
			_, err = r.Bin()
			return err
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

// addRunFlags registers the flags shared by plot and bin.
func addRunFlags(fs *pflag.FlagSet) {
	fs.String("vcf", "", "Variant file, VCF or VCF.gz ('-' for stdin)")
	fs.String("summary", config.DefaultSummaryPath, "Per-window summary output file")
	fs.Int64("genome-length", config.DefaultGenomeLength, "Genome length in bp")
	fs.Int64("window-size", config.DefaultWindowSize, "Window size in bp")
	fs.String("chrom", "", "Only count records on this chromosome")
	fs.Bool("snv-only", false, "Only count single nucleotide variants")
	fs.Bool("pass-only", false, "Only count records with FILTER PASS or '.'")
	fs.BoolP("verbose", "v", false, "Debug logging")
}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"highlight-gene": "highlight_genes",
}

// setup binds the command's flags and positional arguments to viper and
// decodes the run configuration.
func setup(cmd *cobra.Command, args []string) (config.Config, *zap.Logger, error) {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "verbose" || f.Name == "help" {
			return
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		if err := viper.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return config.Config{}, nil, bindErr
	}

	if len(args) > 0 {
		viper.Set("vcf", args[0])
	}
	if len(args) > 1 {
		viper.Set("annotation", args[1])
	}

	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, usageError{err}
	}
	if cfg.VCFPath == "" {
		return config.Config{}, nil, usageError{fmt.Errorf("variant file required (--vcf or first argument)")}
	}
	if cmd.Name() == "plot" && cfg.AnnotationPath == "" {
		return config.Config{}, nil, usageError{fmt.Errorf("annotation file required (--annotation or second argument)")}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := newLogger(verbose)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// newLogger builds a console logger on stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		zc.DisableCaller = true
		zc.EncoderConfig.TimeKey = ""
	}
	return zc.Build()
}

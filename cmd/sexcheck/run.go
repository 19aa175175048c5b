package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/sexcheck/internal/output"
	"github.com/inodb/sexcheck/internal/regions"
	"github.com/inodb/sexcheck/internal/sexinfer"
	"github.com/inodb/sexcheck/internal/vcf"
)

func newRunCmd() *cobra.Command {
	var (
		regionFile   string
		outputFile   string
		format       string
		verbose      bool
		yMax         float64
		xTolerance   float64
		maleXMax     float64
	)

	defaults := sexinfer.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "run <genome.vcf.gz>",
		Short: "Infer the sample's genetic sex",
		Long: `Run the inference pipeline on a block-compressed VCF. The tabix
index (.tbi or .csi) must sit next to the file; there is no full-scan
fallback when it is missing.`,
		Example: `  sexcheck run genome.vcf.gz
  sexcheck run --regions non_par_regions.tsv -o result.json genome.vcf.gz
  sexcheck run --format text genome.vcf.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaults
			cfg.MinQual = viper.GetFloat64("min_qual")
			cfg.MaxSkipRate = viper.GetFloat64("max_skip_rate")
			cfg.Workers = viper.GetInt("workers")

			// Band thresholds come from the config file; the scalar
			// knobs are also exposed as flags, which win.
			if err := viper.UnmarshalKey("thresholds", &cfg.Thresholds); err != nil {
				return fmt.Errorf("invalid thresholds config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("depth-female-y-max") {
				cfg.Thresholds.DepthFemaleYMax = yMax
			}
			if flags.Changed("ratio-female-x-tolerance") {
				cfg.Thresholds.RatioFemaleXTolerance = xTolerance
			}
			if flags.Changed("ratio-male-x-max") {
				cfg.Thresholds.RatioMaleXMax = maleXMax
			}

			if regionFile != "" {
				regs, err := regions.Load(regionFile)
				if err != nil {
					return err
				}
				cfg.Regions = regs
			}

			return runPipeline(args[0], cfg, outputFile, format, verbose)
		},
	}

	cmd.Flags().StringVar(&regionFile, "regions", "", "Tab-separated region file (CHROM/START/STOP) restricting the scan, e.g. non-PAR regions")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, text")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (development) logging")
	cmd.Flags().Float64("min-qual", defaults.MinQual, "Exclude records with QUAL at or below this value")
	cmd.Flags().Float64("max-skip-rate", defaults.MaxSkipRate, "Fail the run when the malformed-record fraction exceeds this rate")
	cmd.Flags().Int("workers", defaults.Workers, "Concurrent chromosome-group scans (1 serializes the groups)")
	cmd.Flags().Float64Var(&yMax, "depth-female-y-max", defaults.Thresholds.DepthFemaleYMax, "Relative Y depth below which Y coverage counts as noise")
	cmd.Flags().Float64Var(&xTolerance, "ratio-female-x-tolerance", defaults.Thresholds.RatioFemaleXTolerance, "Relative tolerance between X and autosomal het/hom ratios for a female call")
	cmd.Flags().Float64Var(&maleXMax, "ratio-male-x-max", defaults.Thresholds.RatioMaleXMax, "Largest X het/hom ratio (fraction of autosomal) consistent with one X copy")

	_ = viper.BindPFlag("min_qual", cmd.Flags().Lookup("min-qual"))
	_ = viper.BindPFlag("max_skip_rate", cmd.Flags().Lookup("max-skip-rate"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runPipeline(vcfPath string, cfg sexinfer.Config, outputFile, format string, verbose bool) error {
	logger := buildLogger(verbose)
	defer logger.Sync()

	src, err := vcf.NewTabixSource(vcfPath)
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Info("opened variant source",
		zap.String("path", vcfPath),
		zap.Bool("chr_prefix", src.HasChrPrefix()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipe := sexinfer.NewPipeline(src, cfg)
	pipe.SetLogger(logger)

	res, err := pipe.Run(ctx)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	var writer output.ResultWriter
	switch format {
	case "json":
		writer = output.NewJSONWriter(out)
	case "text":
		writer = output.NewTextWriter(out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if err := writer.Write(res); err != nil {
		return err
	}
	return writer.Flush()
}

func buildLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
		return zap.NewNop()
	}
	logger, err := zap.NewProduction()
	if err == nil {
		return logger
	}
	return zap.NewNop()
}

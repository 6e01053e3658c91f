package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/Jai-Chauhan/SCT-DS-2/internal/config"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/pipeline"
	"github.com/Jai-Chauhan/SCT-DS-2/internal/plots"
)

var (
	runDataset       string
	runOutputDir     string
	runFormat        string
	runWorkers       int
	runSampleRows    int
	runTargets       []string
	runMaxCategories int
	runDelimiter     string
	runDecimal       string
	runThousands     string
	runNoPlots       bool
	runXLSX          string
)

var runCmd = &cobra.Command{
	Use:   "run <archive.zip>",
	Short: "Run the full EDA pipeline over one dataset in a ZIP archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		opt, err := runOptions(cmd, c, args[0])
		if err != nil {
			return err
		}
		res, err := pipeline.Run(cmd.Context(), opt, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n✓ Analyzed %s (%d rows after cleaning)\n", res.Dataset, res.Rows)
		if !opt.NoPlots {
			fmt.Fprintf(out, "✓ Wrote %d figures to %s\n", len(res.Figures), opt.OutputDir)
			fmt.Fprintf(out, "✓ Manifest: %s\n", res.Manifest)
		}
		if res.XLSX != "" {
			fmt.Fprintf(out, "✓ Workbook: %s\n", res.XLSX)
		}
		return nil
	},
}

// runOptions merges config with any flags the user set explicitly.
func runOptions(cmd *cobra.Command, c *cfgpkg.Global, archive string) (pipeline.Options, error) {
	f := cmd.Flags()
	o := *c
	if f.Changed("dataset") {
		o.Dataset = runDataset
	}
	if f.Changed("output-dir") {
		o.OutputDir = runOutputDir
	}
	if f.Changed("format") {
		o.ImageFormat = runFormat
	}
	if f.Changed("workers") {
		o.Workers = runWorkers
	}
	if f.Changed("sample-rows") {
		o.SampleRows = runSampleRows
	}
	if f.Changed("target") {
		o.Targets = runTargets
	}
	if f.Changed("max-categories") {
		o.MaxCategories = runMaxCategories
	}
	if f.Changed("delimiter") {
		o.Delimiter = runDelimiter
	}
	if f.Changed("xlsx") {
		o.XLSXPath = runXLSX
	}
	if err := o.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	if !plots.ValidFormat(o.ImageFormat) {
		return pipeline.Options{}, fmt.Errorf("invalid --format %q (use png|svg|pdf)", o.ImageFormat)
	}

	parse := dataset.DefaultParseOptions()
	parse.Delimiter, _ = o.DelimiterRune()
	if o.NAValues != nil {
		parse.NAValues = o.NAValues
	}
	var err error
	if parse.DecimalSeparator, err = cfgpkg.ParseRune("decimal", runDecimal, '.'); err != nil {
		return pipeline.Options{}, err
	}
	if parse.ThousandsSeparator, err = cfgpkg.ParseRune("thousands", runThousands, 0); err != nil {
		return pipeline.Options{}, err
	}
	if parse.DecimalSeparator == parse.ThousandsSeparator {
		return pipeline.Options{}, fmt.Errorf("--decimal and --thousands must differ")
	}

	return pipeline.Options{
		Archive:       archive,
		Dataset:       o.Dataset,
		Parse:         parse,
		SampleRows:    o.SampleRows,
		Targets:       o.Targets,
		NoColor:       o.NoColor,
		OutputDir:     o.OutputDir,
		ImageFormat:   o.ImageFormat,
		Workers:       o.Workers,
		MaxCategories: o.MaxCategories,
		NoPlots:       runNoPlots,
		XLSXPath:      o.XLSXPath,
	}, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runDataset, "dataset", "", "CSV base name to analyze (default: first CSV in the archive)")
	runCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "directory for rendered figures (default from config: eda_plots)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "image format: png|svg|pdf")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "concurrent figure renders (1 = sequential)")
	runCmd.Flags().IntVar(&runSampleRows, "sample-rows", 0, "rows shown in DATA PREVIEW")
	runCmd.Flags().StringSliceVar(&runTargets, "target", nil, "target column candidates in priority order (repeatable)")
	runCmd.Flags().IntVar(&runMaxCategories, "max-categories", 0, "skip count plots for columns with more distinct values (0 = unlimited)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "CSV field delimiter (use \\t or tab for tabs)")
	runCmd.Flags().StringVar(&runDecimal, "decimal", "", "decimal separator for numeric cells (default .)")
	runCmd.Flags().StringVar(&runThousands, "thousands", "", "thousands separator stripped from numeric cells")
	runCmd.Flags().BoolVar(&runNoPlots, "no-plots", false, "skip rendering figures")
	runCmd.Flags().StringVar(&runXLSX, "xlsx", "", "also export the cleaned dataset and summaries to this .xlsx file")
}

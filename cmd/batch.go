package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jsphweid/patternmetrics/constants"
	"github.com/jsphweid/patternmetrics/logger"
	"github.com/jsphweid/patternmetrics/model"
	"github.com/jsphweid/patternmetrics/parse"
	"github.com/jsphweid/patternmetrics/util"
	"github.com/spf13/cobra"
)

var (
	batchMax    int
	batchStrict bool
)

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchMax, "max", 0, "evaluate at most this many pattern files (0 = all)")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "reject patterns whose occurrences differ in length")
}

var batchCmd = &cobra.Command{
	Use:   "batch <piece> <patterns-dir>",
	Short: "Scores every pattern file in a directory",
	Long:  `Scores every .txt pattern file under a directory against the same piece, e.g. the output of several discovery algorithms.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := Batch(args[0], args[1], batchMax, batchStrict)
		if err != nil {
			return err
		}
		printBatch(cmd.OutOrStdout(), rows)
		return nil
	},
}

type BatchRow struct {
	Path   string
	Report model.Report
}

// Batch evaluates each pattern file found under dir. Files that fail to
// parse or score are skipped with a warning.
func Batch(piecePath, dir string, maxNum int, strict bool) ([]BatchRow, error) {
	piece, err := loadPiece(piecePath)
	if err != nil {
		return nil, fmt.Errorf("loading piece %v: %w", piecePath, err)
	}
	paths, err := util.GatherAllPaths(dir, constants.PatternExtensions, maxNum)
	if err != nil {
		return nil, err
	}

	var rows []BatchRow
	for i, path := range paths {
		logger.Infof("Processing %v of %v pattern files", i+1, len(paths))
		patterns, err := parse.ReadPatternsFile(path)
		if err != nil {
			logger.Warnf("Skipping %v because: %v", path, err)
			continue
		}
		report, err := score(patterns, piece, strict)
		if err != nil {
			logger.Warnf("Skipping %v because: %v", path, err)
			continue
		}
		rows = append(rows, BatchRow{Path: path, Report: report})
	}
	return rows, nil
}

func printBatch(w io.Writer, rows []BatchRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "file\tpatterns\tcoverage\tuncovered\tcompression")
	var coverages, compressions []float64
	for _, row := range rows {
		r := row.Report
		fmt.Fprintf(tw, "%v\t%v\t%.4f\t%v\t%.4f\n", row.Path, r.NumPatterns, r.Coverage, r.UncoveredNotes, r.LosslessCompression)
		coverages = append(coverages, r.Coverage)
		compressions = append(compressions, r.LosslessCompression)
	}
	tw.Flush()
	fmt.Fprintf(w, "mean coverage: %.4f\n", util.Mean(coverages))
	fmt.Fprintf(w, "mean lossless compression: %.4f\n", util.Mean(compressions))
}

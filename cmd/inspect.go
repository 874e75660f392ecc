package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jsphweid/patternmetrics/constants"
	"github.com/jsphweid/patternmetrics/metrics"
	"github.com/jsphweid/patternmetrics/midi"
	"github.com/jsphweid/patternmetrics/parse"
	"github.com/jsphweid/patternmetrics/util"
	"github.com/spf13/cobra"
)

var inspectExportDir string

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectExportDir, "export-midi", "", "write each pattern's first occurrence as a .mid file into this directory")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <patterns>",
	Short: "Inspects a pattern file",
	Long:  `Prints each pattern's occurrence count, motif length, translation vectors and TEC cost.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Inspect(cmd.OutOrStdout(), args[0], inspectExportDir)
	},
}

func Inspect(w io.Writer, path string, exportDir string) error {
	patterns, err := parse.ReadPatternsFile(path)
	if err != nil {
		return err
	}
	if err := metrics.Validate(patterns); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
	if exportDir != "" {
		if err := util.EnsureDir(exportDir); err != nil {
			return err
		}
	}

	var total int
	for i, p := range patterns {
		vectors, err := metrics.TranslationVectors(p)
		if err != nil {
			fmt.Fprintf(w, "pattern %v: %v\n", i, err)
			continue
		}
		cost, err := metrics.PatternCost(p)
		if err != nil {
			return err
		}
		total += cost
		fmt.Fprintf(w, "pattern %v: occurrences=%v motif=%v cost=%v\n", i, len(p), len(p[0]), cost)
		shown := util.Min(len(vectors), constants.ShowVectorsLimit)
		for _, v := range vectors[:shown] {
			fmt.Fprintf(w, "  (%v, %+d)\n", v.Onset, v.Pitch)
		}
		if shown < len(vectors) {
			fmt.Fprintf(w, "  ... %v more\n", len(vectors)-shown)
		}

		if exportDir != "" {
			filename := filepath.Join(exportDir, fmt.Sprintf("pattern_%03d.mid", i))
			if err := midi.WriteOccurrence(filename, p[0]); err != nil {
				return fmt.Errorf("exporting pattern %v: %w", i, err)
			}
		}
	}
	fmt.Fprintf(w, "total pattern cost: %v\n", total)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jsphweid/patternmetrics/constants"
	"github.com/jsphweid/patternmetrics/db"
	"github.com/jsphweid/patternmetrics/logger"
	"github.com/jsphweid/patternmetrics/model"
	"github.com/jsphweid/patternmetrics/parse"
	"github.com/jsphweid/patternmetrics/util"
	"github.com/spf13/cobra"
)

var (
	evalStrict bool
	evalJSON   bool
	evalStore  string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().BoolVar(&evalStrict, "strict", false, "reject patterns whose occurrences differ in length")
	evaluateCmd.Flags().BoolVar(&evalJSON, "json", false, "write the report to OUT_DIR/<id>.json")
	evaluateCmd.Flags().StringVar(&evalStore, "store", db.StoreNone, "persist the report: none, sqlite or dynamo")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <piece> <patterns>",
	Short: "Scores a pattern file against a piece",
	Long: `Scores a pattern file against a piece. The piece is a csv of onset,pitch rows
or a .mid file; the pattern file uses pattern/occurrence marker lines.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.NewStore(evalStore)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		rec, err := Evaluate(cmd.Context(), args[0], args[1], EvaluateOptions{
			Strict:    evalStrict,
			WriteJSON: evalJSON,
			OutDir:    constants.GetOutDir(),
			Store:     store,
		})
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), rec)
		return nil
	},
}

type EvaluateOptions struct {
	Strict    bool
	WriteJSON bool
	OutDir    string
	Store     db.Store
}

func Evaluate(ctx context.Context, piecePath, patternsPath string, opts EvaluateOptions) (model.StoredReport, error) {
	piece, err := loadPiece(piecePath)
	if err != nil {
		return model.StoredReport{}, fmt.Errorf("loading piece %v: %w", piecePath, err)
	}
	patterns, err := parse.ReadPatternsFile(patternsPath)
	if err != nil {
		return model.StoredReport{}, fmt.Errorf("loading patterns %v: %w", patternsPath, err)
	}
	logger.Debugf("Loaded %v notes and %v patterns", piece.Len(), len(patterns))

	report, err := score(patterns, piece, opts.Strict)
	if err != nil {
		return model.StoredReport{}, fmt.Errorf("evaluating %v: %w", patternsPath, err)
	}
	rec := db.NewRecord(piecePath, patternsPath, report)

	if opts.WriteJSON {
		if err := util.EnsureDir(opts.OutDir); err != nil {
			return rec, err
		}
		filename := filepath.Join(opts.OutDir, rec.ID+".json")
		if err := util.WriteJSON(filename, rec); err != nil {
			return rec, err
		}
		logger.Infof("Wrote report to %v", filename)
	}
	if opts.Store != nil {
		if err := opts.Store.SaveReport(ctx, rec); err != nil {
			return rec, err
		}
		logger.Infof("Stored report %v", rec.ID)
	}
	return rec, nil
}

func printReport(w io.Writer, rec model.StoredReport) {
	r := rec.Report
	fmt.Fprintf(w, "id: %v\n", rec.ID)
	fmt.Fprintf(w, "piece length: %v\n", r.PieceLength)
	fmt.Fprintf(w, "patterns: %v\n", r.NumPatterns)
	fmt.Fprintf(w, "coverage: %.4f\n", r.Coverage)
	fmt.Fprintf(w, "uncovered notes: %v\n", r.UncoveredNotes)
	fmt.Fprintf(w, "encoding cost: %v\n", r.EncodingCost)
	fmt.Fprintf(w, "lossless compression: %.4f\n", r.LosslessCompression)
}

package cmd

import (
	"context"

	"github.com/jsphweid/patternmetrics/logger"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "patternmetrics",
	Short: "Scores pattern discovery output against a piece",
	Long: `Scores pattern discovery output against a piece: coverage, uncovered notes
and the lossless compression ratio of a translatable-encoding (TEC) encoding.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel == "" {
			return nil
		}
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or FATAL (env: LOG_LEVEL)")
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}

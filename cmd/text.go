package cmd

import (
	"fmt"

	"github.com/aqlanhadi/depsum/extractor/common"
	"github.com/spf13/cobra"
)

var textFile string

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Prints the text extracted from a PDF",
	Long: `Prints the text the scanner sees for a PDF, one extracted row per
line. Useful when tuning the statement patterns.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext, err := newTextExtractor()
		if err != nil {
			return err
		}

		text, err := common.ExtractTextFromFile(ext, textFile)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().StringVarP(&textFile, "file", "f", "", "PDF file to extract (required)")
	textCmd.MarkFlagRequired("file")
}

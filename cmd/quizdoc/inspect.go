// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quizdoc/internal/docx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [document]",
	Short: "Print the text of a generated document",
	Long: `Inspect extracts the plain text of a .docx file, by default the output
document of the last run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("output.document")
		if len(args) == 1 {
			path = args[0]
		}

		text, err := docx.ReadText(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

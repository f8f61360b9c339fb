// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quizdoc/internal/docx"
	"github.com/pdiddy/quizdoc/internal/export"
	"github.com/pdiddy/quizdoc/internal/format"
	"github.com/pdiddy/quizdoc/internal/history"
	"github.com/pdiddy/quizdoc/internal/ocr"
	"github.com/pdiddy/quizdoc/internal/pipeline"
	"github.com/pdiddy/quizdoc/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process [images or directories...]",
	Short: "OCR images and write the formatted questions to a Word document",
	Long: `Process reads each image (.jpg, .jpeg, .png; directories are expanded),
detects its text, extracts numbered questions with their first answer option,
sends them to the formatter model, and writes one paragraph per successful
image into the output document. The document is replaced on every run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig(viper.GetViper(), loadedSecrets)
		ctx := cmd.Context()

		images, err := pipeline.CollectImages(args)
		if err != nil {
			return err
		}
		if len(images) == 0 {
			return fmt.Errorf("no images found in %v", args)
		}

		engine, err := ocr.New(ctx, cfg.OCR)
		if err != nil {
			return err
		}
		backend, err := format.New(ctx, cfg.Formatter)
		if err != nil {
			return err
		}
		if c, ok := backend.(io.Closer); ok {
			defer c.Close()
		}

		p := &pipeline.Pipeline{
			OCR:       engine,
			Formatter: backend,
			Document:  cfg.Output.Document,
			Out:       cmd.OutOrStdout(),
			Verbose:   cfg.Verbose,
		}

		report, err := p.Run(ctx, images)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", cfg.Output.Document, docx.MIMEType)

		if err := writeSinks(cmd, cfg, report); err != nil {
			return err
		}

		failOnError, _ := cmd.Flags().GetBool("fail-on-error")
		if failOnError && report.HasFailures() {
			return fmt.Errorf("%d of %d images failed", report.Failed(), len(report.Results))
		}
		return nil
	},
}

// writeSinks stores the optional outputs of a finished run.
func writeSinks(cmd *cobra.Command, cfg types.Config, report *types.RunReport) error {
	if cfg.Output.Report != "" {
		if err := pipeline.WriteReport(cfg.Output.Report, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.Output.Report)
	}

	if cfg.Output.Workbook != "" {
		if err := export.WriteWorkbook(cfg.Output.Workbook, report.Results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.Output.Workbook)
	}

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Record(cmd.Context(), report); err != nil {
			return err
		}
		slog.Info("history.recorded", "run_id", report.ID, "path", cfg.History.Path)
	}
	return nil
}

func init() {
	processCmd.Flags().StringP("output", "o", types.DefaultDocument, "output .docx path (replaced on every run)")
	processCmd.Flags().String("report", "", "write a YAML run report to this path")
	processCmd.Flags().String("xlsx", "", "write extracted questions to this .xlsx path")
	processCmd.Flags().String("engine", string(types.EngineVision), "ocr engine: vision or tesseract")
	processCmd.Flags().String("credentials", "", "Vision service-account JSON (default: vision_key.json if present)")
	processCmd.Flags().String("formatter", string(types.FormatterREST), "formatter backend: rest or sdk")
	processCmd.Flags().String("model", types.DefaultModel, "generative model identifier")
	processCmd.Flags().Bool("history", false, "record the run in the history database")
	processCmd.Flags().BoolP("verbose", "v", false, "print OCR and formatted text for each image")
	processCmd.Flags().Bool("fail-on-error", false, "exit non-zero when any image fails")

	for key, flag := range map[string]string{
		"output.document":      "output",
		"output.report":        "report",
		"output.workbook":      "xlsx",
		"ocr.engine":           "engine",
		"ocr.credentials_file": "credentials",
		"formatter.backend":    "formatter",
		"formatter.model":      "model",
		"history.enabled":      "history",
		"verbose":              "verbose",
	} {
		viper.BindPFlag(key, processCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(processCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/intake"
)

// PreviewInfo describes what the UI shows before upload.
type PreviewInfo struct {
	Name        string      `json:"name" yaml:"name"`
	ContentType string      `json:"content_type" yaml:"content_type"`
	Kind        intake.Kind `json:"kind" yaml:"kind"`
	Size        int64       `json:"size" yaml:"size"`
	Placeholder bool        `json:"placeholder" yaml:"placeholder"`
	URL         string      `json:"url" yaml:"url"`
	Pages       int         `json:"pages,omitempty" yaml:"pages,omitempty"`
}

var previewInline bool

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show how a document would be previewed",
	Long: `Show the local preview for a document without uploading it.

Images are inlined as data URLs; other documents get a placeholder icon.
PDFs also report their page count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		f, err := intake.Open(args[0])
		if err != nil {
			return err
		}

		p, err := intake.NewPreview(ctx, f)
		if err != nil {
			return err
		}

		info := PreviewInfo{
			Name:        p.Name,
			ContentType: p.ContentType,
			Kind:        p.Kind,
			Size:        f.Size,
			Placeholder: p.Placeholder,
			URL:         p.URL,
		}
		if !p.Placeholder && !previewInline {
			info.URL = fmt.Sprintf("data:%s;base64,... (%d bytes)", p.ContentType, f.Size)
		}

		if pages, err := intake.PageCount(ctx, f); err == nil {
			info.Pages = pages
		} else if f.ContentType == "application/pdf" {
			a.logger.Warn("could not count PDF pages", "file", f.Name, "error", err)
		}

		return api.OutputTo(cmd.OutOrStdout(), api.GetOutputFormat(), info)
	},
}

func init() {
	previewCmd.Flags().BoolVar(&previewInline, "inline", false, "print the full data URL for images")

	rootCmd.AddCommand(previewCmd)
}

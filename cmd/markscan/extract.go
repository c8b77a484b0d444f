package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/extract"
	"github.com/jackzampolin/markscan/internal/intake"
	"github.com/jackzampolin/markscan/internal/render"
	"github.com/jackzampolin/markscan/internal/session"
)

// View selects which result panes the extract command prints.
type View string

const (
	ViewRaw     View = "raw"
	ViewSummary View = "summary"
	ViewBoth    View = "both"
)

func parseView(s string) (View, error) {
	switch View(s) {
	case ViewRaw, ViewSummary, ViewBoth:
		return View(s), nil
	default:
		return "", fmt.Errorf("unknown view %q: want raw, summary or both", s)
	}
}

var (
	extractView string
	extractSave bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract marksheet data from an image or PDF",
	Long: `Upload a document to the extraction service and print the result.

The raw record is printed in the --output format; the summary lists
candidate details, subject scores and the overall result with
confidence tiers. Failures print a single "Error: ..." line.

Examples:
  markscan extract sheet.png
  markscan extract sheet.pdf --view summary
  markscan extract sheet.png -o json --view raw --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := parseView(extractView)
		if err != nil {
			return err
		}

		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		cfg := a.config.Get()

		f, err := intake.Open(args[0])
		if err != nil {
			return err
		}

		sess := session.New(extract.Dial(cfg.ServerURL, cfg.Timeout, a.logger), a.logger)
		out, err := runExtract(cmd.Context(), cmd.OutOrStdout(), sess, f, view, api.GetOutputFormat())
		if err != nil {
			return err
		}

		if extractSave {
			path, err := a.home.SaveResult(out.AttemptID, out.Raw)
			if err != nil {
				return err
			}
			a.logger.Info("result saved", "path", path)
		}
		return nil
	},
}

// runExtract submits f through sess and prints the outcome to w.
// A failed attempt prints nothing and returns the attempt's error.
func runExtract(ctx context.Context, w io.Writer, sess *session.Session, f *intake.File, view View, format api.OutputFormat) (*session.Outcome, error) {
	sess.Select(f)

	out, err := sess.Submit(ctx)
	if err != nil {
		return nil, err
	}
	if out.Failed() {
		return out, out.Err
	}

	if view == ViewRaw || view == ViewBoth {
		if err := api.RawTo(w, format, out.Raw); err != nil {
			return out, err
		}
	}
	if view == ViewBoth {
		fmt.Fprintln(w)
	}
	if view == ViewSummary || view == ViewBoth {
		if err := render.WriteText(w, out.View); err != nil {
			return out, err
		}
	}
	return out, nil
}

func init() {
	extractCmd.Flags().StringVar(&extractView, "view", string(ViewBoth), "what to print: raw, summary or both")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "save the raw result under the home results directory")

	rootCmd.AddCommand(extractCmd)
}

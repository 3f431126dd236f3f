package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/launchrank/internal/launcher"
)

func newSearchCmd(opts *options) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Rank applications against a query",
		Long:  "Rank applications against a query. With no query, applications are listed by launch history, then name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			query := strings.Join(args, " ")
			if limit <= 0 {
				limit = s.cfg.MaxResults
			}
			results := s.launcher.SearchLimit(query, limit)

			out := cmd.OutOrStdout()
			if asJSON {
				type row struct {
					ID       string  `json:"id"`
					Name     string  `json:"name"`
					Command  string  `json:"command"`
					Fuzzy    float64 `json:"fuzzy_score"`
					Frecency float64 `json:"frecency_score"`
					Combined float64 `json:"combined_score"`
				}
				rows := make([]row, 0, len(results))
				for _, r := range results {
					rows = append(rows, row{r.Item.ID, r.Item.Name, r.Item.LaunchCommand(), r.FuzzyScore, r.FrecencyScore, r.CombinedScore})
				}
				return writeJSON(out, rows)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSCORE\tFRECENCY")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.2f\n", r.Item.ID, r.Item.Name, r.CombinedScore, r.FrecencyScore)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results (default max_results)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newLaunchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "launch <id>",
		Short: "Start an application and record the launch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.launcher.Launch(cmd.Context(), args[0])
			if errors.Is(err, launcher.ErrPersist) {
				// Launched; the warning is already logged
				fmt.Fprintf(cmd.OutOrStdout(), "launched %s (history not saved)\n", item.Name)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "launched %s\n", item.Name)
			return nil
		},
	}
}

func newIconCmd(opts *options) *cobra.Command {
	var (
		size  int
		theme string
	)
	cmd := &cobra.Command{
		Use:   "icon <name|path>",
		Short: "Resolve an icon reference to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			var (
				path  string
				found bool
			)
			if cmd.Flags().Changed("theme") {
				path, found = s.launcher.ResolveIconWith(args[0], size, theme)
			} else {
				path, found = s.launcher.ResolveIconSize(args[0], size)
			}
			if !found {
				return fmt.Errorf("icon %q not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "pixel size (default icon_size)")
	cmd.Flags().StringVar(&theme, "theme", "", "icon theme (default icon_theme)")
	return cmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List launched applications by current score",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			entries := s.launcher.History(limit)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, entries)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLAUNCHES\tLAST\tSCORE")
			for _, e := range entries {
				name := e.Name
				if !e.InCatalog {
					name = "-"
				}
				last := time.Unix(int64(e.LastAccessed), 0).Format(time.DateTime)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.2f\n", e.ID, name, e.Frequency, last, e.Score)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum entries (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog, history and icon cache status",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()
			return writeJSON(cmd.OutOrStdout(), s.launcher.Status())
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

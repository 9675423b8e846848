package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inovally/diagnostico/internal/indicator"
	"github.com/inovally/diagnostico/internal/profile"
)

func newIndicatorsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "List the maturity indicator catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printIndicators(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func printIndicators(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"indicators": indicator.All()})
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tNAME\tFULL NAME\tSOLUTION")
		for _, ind := range indicator.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ind.Key, ind.Name, ind.FullName, ind.Solution)
		}
		return tw.Flush()
	default:
		return exitError(3, "unknown format: %s", format)
	}
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles [name]",
		Short: "List built-in profiles or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				names, err := profile.List()
				if err != nil {
					return fmt.Errorf("listing profiles: %w", err)
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}
			p, err := profile.LoadBuiltin(args[0])
			if err != nil {
				return exitError(3, "failed to load profile: %v", err)
			}
			fmt.Fprint(out, profile.Describe(p))
			return nil
		},
	}
}

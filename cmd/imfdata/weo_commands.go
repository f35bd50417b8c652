package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"imfdata/internal/weo"
)

func newWEOCommand(ctx *commandContext) *cobra.Command {
	weoCmd := &cobra.Command{
		Use:   "weo",
		Short: "World Economic Outlook releases",
	}

	weoCmd.AddCommand(newWEOFetchCommand(ctx))
	weoCmd.AddCommand(newWEOVersionCommand(ctx))

	return weoCmd
}

func newWEOFetchCommand(ctx *commandContext) *cobra.Command {
	var versionFlag string
	var conceptFlag string
	var areaFlag string
	var limitFlag int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a release dataset and print its observations",
		Long: `Download a World Economic Outlook release and print its flattened
observations. Without --version the latest published release is used,
falling back to earlier releases while the expected one is not yet out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.weoService()
			if err != nil {
				return err
			}

			var requested *weo.Release
			if strings.TrimSpace(versionFlag) != "" {
				release, err := weo.ParseRelease(versionFlag)
				if err != nil {
					return err
				}
				requested = &release
			}

			dataset, err := service.Fetch(cmd.Context(), requested)
			if err != nil {
				return err
			}
			rows := filterObservations(dataset.Rows, conceptFlag, areaFlag)

			if jsonFlag {
				return writeJSON(cmd, buildWEOFetchPayload(dataset.Release, rows))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Effective version: %s\n", highlight(out, dataset.Release.String()))
			if len(rows) == 0 {
				fmt.Fprintln(out, "No observations match the given filters")
				return nil
			}

			printed := rows
			if limitFlag > 0 && len(rows) > limitFlag {
				printed = rows[:limitFlag]
			}
			fmt.Fprintln(out, renderTable(weoHeaders, buildObservationRows(printed), weoAligns))
			if len(printed) < len(rows) {
				fmt.Fprintf(out, "Showing %d of %d observations (raise --limit, or use --json for all)\n",
					len(printed), len(rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&versionFlag, "version", "", `Pin a release, e.g. "April 2026" (default: latest available)`)
	cmd.Flags().StringVar(&conceptFlag, "concept", "", "Only observations with this concept code")
	cmd.Flags().StringVar(&areaFlag, "area", "", "Only observations with this reference area code")
	cmd.Flags().IntVar(&limitFlag, "limit", 25, "Table rows to print; 0 prints every row")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit observations as JSON")
	return cmd
}

func newWEOVersionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the release expected to be the latest today",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), weo.ExpectedLatest(time.Now()))
			return nil
		},
	}
}

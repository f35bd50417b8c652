package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"imfdata/internal/sdr"
)

func newSDRCommand(ctx *commandContext) *cobra.Command {
	sdrCmd := &cobra.Command{
		Use:   "sdr",
		Short: "SDR reserve-asset feeds",
	}

	sdrCmd.AddCommand(newSDRHoldingsCommand(ctx))
	sdrCmd.AddCommand(newSDRExchangeCommand(ctx))
	sdrCmd.AddCommand(newSDRInterestCommand(ctx))

	return sdrCmd
}

func newSDRHoldingsCommand(ctx *commandContext) *cobra.Command {
	var monthFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "holdings",
		Short: "SDR holdings and allocations by entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.sdrService()
			if err != nil {
				return err
			}

			var month *sdr.Month
			if strings.TrimSpace(monthFlag) != "" {
				parsed, err := parseMonthFlag(monthFlag)
				if err != nil {
					return err
				}
				month = &parsed
			}

			rows, err := service.Holdings(cmd.Context(), month)
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, buildHoldingsPayload(rows))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(holdingsHeaders, buildHoldingRows(rows), holdingsAligns))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", `Publication month, e.g. "2026-04" (default: latest published)`)
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit rows as JSON")
	return cmd
}

func newSDRExchangeCommand(ctx *commandContext) *cobra.Command {
	var basisFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "SDR valuation against the US dollar",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.sdrService()
			if err != nil {
				return err
			}

			basis := sdr.Basis(strings.ToUpper(strings.TrimSpace(basisFlag)))
			rates, err := service.ExchangeRates(cmd.Context(), basis)
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, buildExchangePayload(basis, rates))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(exchangeHeaders(basis), buildExchangeRows(rates), exchangeAligns))
			return nil
		},
	}

	cmd.Flags().StringVar(&basisFlag, "basis", string(sdr.BasisSDR), "Valuation basis: SDR (US$ per SDR) or USD (SDR per US$)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit rows as JSON")
	return cmd
}

func newSDRInterestCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "SDR interest rate by effective window",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := ctx.sdrService()
			if err != nil {
				return err
			}

			rates, err := service.InterestRates(cmd.Context())
			if err != nil {
				return err
			}
			if jsonFlag {
				return writeJSON(cmd, buildInterestPayload(rates))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(interestHeaders, buildInterestRows(rates), interestAligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit rows as JSON")
	return cmd
}

func parseMonthFlag(raw string) (sdr.Month, error) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(raw))
	if err != nil {
		return sdr.Month{}, fmt.Errorf("invalid month %q (want YYYY-MM, e.g. 2026-04)", raw)
	}
	return sdr.NewMonth(parsed.Year(), parsed.Month())
}

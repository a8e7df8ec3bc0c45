package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"hifiwifi/internal/preflight"
)

type probeReport struct {
	BaseURL string             `json:"base_url"`
	Model   string             `json:"model"`
	Ready   bool               `json:"ready"`
	Checks  []preflight.Result `json:"checks"`
	Models  []string           `json:"models"`
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check the Ollama backend and local directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			_, client, err := ctx.newService(ctx.cliLogger())
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			results := preflight.RunAll(cmd.Context(), cfg, client)
			report := probeReport{
				BaseURL: client.Config().BaseURL,
				Model:   client.Config().Model,
				Ready:   len(preflight.Failed(results)) == 0,
				Checks:  results,
				Models:  []string{},
			}
			if models, err := client.ListModels(cmd.Context()); err == nil {
				report.Models = models
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			rows := lo.Map(results, func(r preflight.Result, _ int) []string {
				return []string{r.Name, yesNo(r.Passed), r.Detail}
			})
			fmt.Fprintln(out, renderTable([]string{"Check", "OK", "Detail"}, rows, nil))
			if len(report.Models) > 0 {
				modelRows := lo.Map(report.Models, func(name string, i int) []string {
					return []string{fmt.Sprintf("%d", i+1), name}
				})
				fmt.Fprintln(out, renderTable([]string{"#", "Installed model"}, modelRows, []columnAlignment{alignRight, alignLeft}))
			}
			if !report.Ready {
				return fmt.Errorf("%d preflight check(s) failed", len(preflight.Failed(results)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"stage-alts/feature/alts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate stage loads against the archive",
	Long: `Sets a selection group and loads form directories in order, printing what each load patched.

Selections are written as stage:form:alt, for example battlefield:normal:2 or 0x0b1f2c3d4e:battle:1.
Use "random" as the alt to pick one at random.`,
	Example: `  stage-alts simulate --select battlefield:normal:1 --load stage/battlefield/normal --load stage/battlefield/normal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		selections, _ := cmd.Flags().GetStringArray("select")
		loads, _ := cmd.Flags().GetStringArray("load")
		online, _ := cmd.Flags().GetBool("online")

		if len(loads) == 0 {
			return fmt.Errorf("at least one --load is required")
		}

		reqs := make([]alts.SelectionRequest, 0, len(selections))
		for _, s := range selections {
			req, err := parseSelection(s)
			if err != nil {
				return err
			}
			reqs = append(reqs, req)
		}

		rt, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		rt.alts.Manager().SetOnline(online)
		if len(reqs) > 0 {
			id, err := rt.alts.Select(reqs)
			if err != nil {
				return fmt.Errorf("failed to set selection: %w", err)
			}
			rt.logger.Info("Selection set", zap.String("selection_id", id))
		}

		results := make([]alts.LoadResult, 0, len(loads))
		for _, path := range loads {
			result, err := rt.alts.Load(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			if n := result.Failures(); n > 0 {
				rt.logger.Warn("Directory loaded with failures", zap.String("path", path), zap.Int("failures", n))
			}
			results = append(results, result)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

// parseSelection reads "stage:form:alt". The alt may be "random".
func parseSelection(s string) (alts.SelectionRequest, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return alts.SelectionRequest{}, fmt.Errorf("selection %q: want stage:form:alt", s)
	}

	form, err := alts.ParseForm(parts[1])
	if err != nil {
		return alts.SelectionRequest{}, fmt.Errorf("selection %q: %w", s, err)
	}
	req := alts.SelectionRequest{Stage: parts[0], Form: form}
	if parts[2] == "random" {
		req.Random = true
		return req, nil
	}

	alt, err := strconv.Atoi(parts[2])
	if err != nil || alt < 0 {
		return alts.SelectionRequest{}, fmt.Errorf("selection %q: alt must be a non-negative integer or random", s)
	}
	req.Alt = alt
	return req, nil
}

func init() {
	simulateCmd.Flags().StringArray("select", nil, "Selection entry stage:form:alt (up to 3)")
	simulateCmd.Flags().StringArray("load", nil, "Form directory to load, in order")
	simulateCmd.Flags().Bool("online", false, "Simulate online mode, where loads never advance the selection")
	RootCmd.AddCommand(simulateCmd)
}

package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/registry"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [env]",
	Short: "Show stored rollout summaries",
	Long: `Display the most recent rollout summaries, newest first. Pass an
environment ID to filter.

Examples:
  snakegym runs
  snakegym runs snake-small-v0 --limit 20
  snakegym runs snake-v0 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete stored runs for the environment")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	envID := ""
	if len(args) == 1 {
		envID = args[0]
		if !registry.Exists(envID) {
			return fmt.Errorf("unknown environment %q (run 'snakegym list')", envID)
		}
	}
	if flagRunsClear && envID == "" {
		return errors.New("--clear needs an environment ID")
	}

	dbPath, err := config.ExpandHome(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(envID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s\n", envID)
		return nil
	}

	runs, err := store.RecentRuns(envID, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs yet. Run 'snakegym rollout' to record one.")
		return nil
	}

	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-4s  %-16s  %-14s  %-4s  %-8s  %-8s  %-10s  %s\n",
		"ID", "Env", "Policy", "Grid", "Episodes", "Success", "Mean steps", "Date")
	fmt.Printf("  %-4s  %-16s  %-14s  %-4s  %-8s  %-8s  %-10s  %s\n",
		"--", "---", "------", "----", "--------", "-------", "----------", "----")

	best := make(map[bestKey]float64)
	var order []bestKey
	for _, r := range runs {
		note := ""
		if r.Cancelled {
			note = " (cancelled)"
		}
		fmt.Printf("  %-4d  %-16s  %-14s  %-4d  %-8d  %6.1f%%  %-10.1f  %s%s\n",
			r.ID, r.EnvID, r.Policy, r.GridSize, r.Episodes, r.SuccessRate()*100,
			r.MeanSteps(), r.CreatedAt.Format("2006-01-02 15:04"), note)

		k := bestKey{r.EnvID, r.Policy}
		if _, seen := best[k]; !seen {
			rate, err := store.BestSuccessRate(r.EnvID, r.Policy)
			if err != nil {
				return err
			}
			best[k] = rate
			order = append(order, k)
		}
	}

	fmt.Println()
	fmt.Println("Best success rate")
	sortBestKeys(order)
	for _, k := range order {
		fmt.Printf("  %s / %s: %.1f%%\n", k.env, k.policy, best[k]*100)
	}
	return nil
}

type bestKey struct{ env, policy string }

// sortBestKeys orders keys by environment, then policy.
func sortBestKeys(keys []bestKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].env != keys[j].env {
			return keys[i].env < keys[j].env
		}
		return keys[i].policy < keys[j].policy
	})
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HarleyCoops/SeeDream/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List prior snapshot identifiers, most recent first",
	Long: `History lists the identifiers of snapshots already persisted in the results
directory so prior runs can be compared. With --show, the per-source record
counts of each listed snapshot are printed alongside.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("last", 0, "limit to the N most recent snapshots")
	historyCmd.Flags().Bool("show", false, "print per-source record counts for each snapshot")
	historyCmd.Flags().String("results-dir", "", "directory for snapshot files (default search_results)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("results-dir")
	if dir == "" {
		viper.SetDefault("results_dir", defaultResultsDir)
		dir = viper.GetString("results_dir")
	}

	st := &store.Store{Dir: dir}
	ids, err := st.ListPrior()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No snapshots found.")
		return nil
	}

	last, _ := cmd.Flags().GetInt("last")
	if last > 0 && len(ids) > last {
		ids = ids[:last]
	}

	show, _ := cmd.Flags().GetBool("show")
	for _, id := range ids {
		if !show {
			fmt.Println(id)
			continue
		}
		snap, err := st.Load(id)
		if err != nil {
			fmt.Printf("%s  (unreadable: %v)\n", id, err)
			continue
		}
		fmt.Printf("%s  %d record(s)\n", id, len(snap.Records))
	}
	return nil
}

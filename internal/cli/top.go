package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// defaultTopCount is how many entries the top command shows by default.
const defaultTopCount = 15

// newTopCmd creates the ranking command group.
func newTopCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank nodes within a network",
	}

	cmd.AddCommand(newTopDegreeCmd(configPath))
	cmd.AddCommand(newTopPathologiesCmd(configPath))

	return cmd
}

// newTopDegreeCmd creates the "top degree" subcommand.
func newTopDegreeCmd(configPath *string) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "degree <id>",
		Short: "Show the highest-degree nodes in a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, *configPath)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid network id %q: %w", args[0], err)
			}

			ranked, err := a.cache.TopDegree(cmd.Context(), id, count)
			if err != nil {
				return err
			}
			printRankingTable(fmt.Sprintf("Top %d nodes by degree", len(ranked)), ranked)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultTopCount, "number of entries to show")
	return cmd
}

// newTopPathologiesCmd creates the "top pathologies" subcommand.
func newTopPathologiesCmd(configPath *string) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "pathologies <id>",
		Short: "Show the most connected pathology nodes in a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, *configPath)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid network id %q: %w", args[0], err)
			}

			ranked, err := a.cache.TopPathologies(cmd.Context(), id, count)
			if err != nil {
				return err
			}
			if len(ranked) == 0 {
				printInfo("Network %d has no pathology nodes", id)
				return nil
			}
			printRankingTable(fmt.Sprintf("Top %d pathologies by degree", len(ranked)), ranked)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultTopCount, "number of entries to show")
	return cmd
}

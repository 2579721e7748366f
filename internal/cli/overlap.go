package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// newOverlapCmd creates the overlap command, which prints the node
// overlap between one network and every other stored network.
func newOverlapCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "overlap <id>",
		Short: "Show node-overlap scores against every other network",
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

			row, err := a.cache.Overlap(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(row) == 0 {
				printInfo("No other networks to compare against")
				return nil
			}

			infos, err := a.cache.Store().ListRecentNetworks(cmd.Context())
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(infos))
			for _, info := range infos {
				names[info.ID] = info.Name
			}

			type pair struct {
				id    int64
				score float64
			}
			pairs := make([]pair, 0, len(row))
			for other, score := range row {
				pairs = append(pairs, pair{other, score})
			}
			sort.Slice(pairs, func(i, j int) bool {
				if pairs[i].score != pairs[j].score {
					return pairs[i].score > pairs[j].score
				}
				return pairs[i].id < pairs[j].id
			})

			fmt.Println(StyleTitle.Render(fmt.Sprintf("Overlap with network %d", id)))
			for _, p := range pairs {
				name := names[p.id]
				if name == "" {
					name = strconv.FormatInt(p.id, 10)
				}
				printOverlapRow(name, p.score)
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/biograph-io/biograph/pkg/search"
)

// newSearchCmd creates the keyword search command.
func newSearchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search <id> <query>",
		Short: "Keyword search over a network's names, annotations, and citations",
		Args:  cobra.ExactArgs(2),
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

			g, err := a.cache.Get(cmd.Context(), id, false)
			if err != nil {
				return err
			}

			result := search.Graph(g, args[1])
			if len(result.Nodes) == 0 && len(result.Edges) == 0 {
				printInfo("No matches for %q in %s", args[1], g.Name)
				return nil
			}

			if len(result.Nodes) > 0 {
				fmt.Println(StyleTitle.Render(fmt.Sprintf("Nodes (%d)", len(result.Nodes))))
				for _, n := range result.Nodes {
					printDetail("%s", n.CanonicalName())
				}
			}
			if len(result.Edges) > 0 {
				fmt.Println(StyleTitle.Render(fmt.Sprintf("Edges (%d)", len(result.Edges))))
				for _, e := range result.Edges {
					ref := ""
					if e.Citation != nil {
						ref = " [" + e.Citation.Reference + "]"
					}
					printDetail("%s %s%s", e.Relation, e.Evidence, ref)
				}
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biograph-io/biograph/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// newRenderCmd creates the render command, which runs a query and writes
// the result as a DOT or SVG file.
func newRenderCmd(configPath *string) *cobra.Command {
	var (
		opts     queryOpts
		output   string
		format   string
		evidence bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export a query result as DOT or SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatDOT, formatSVG)
			}

			a, err := setup(cmd, *configPath)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			result, g, err := runQuery(cmd, a, opts)
			if err != nil {
				return err
			}
			if result == nil {
				printWarning("Query matched nothing")
				return nil
			}

			if output == "" {
				output = sanitizeFilename(g.Name) + "." + format
			}

			dot := render.ToDOT(result, render.Options{Evidence: evidence})
			data := []byte(dot)
			if format == formatSVG {
				data, err = render.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}

			printSuccess("Rendered %s", g.Name)
			printStats(result.NodeCount(), result.EdgeCount(), false)
			printDetail("→ %s", output)
			return nil
		},
	}

	registerQueryFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <network>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: dot or svg")
	cmd.Flags().BoolVar(&evidence, "evidence", false, "include evidence text in edge labels")
	return cmd
}

// sanitizeFilename makes a network name safe to use as a file name.
func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = "network"
	}
	return filepath.Clean(name)
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newNetworksCmd creates the network management command group.
func newNetworksCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List, cache, and forget stored networks",
	}

	cmd.AddCommand(newNetworksListCmd(configPath))
	cmd.AddCommand(newNetworksCacheCmd(configPath))
	cmd.AddCommand(newNetworksForgetCmd(configPath))

	return cmd
}

// newNetworksListCmd creates the "networks list" subcommand.
func newNetworksListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the most recent version of each stored network",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, *configPath)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			infos, err := a.cache.Store().ListRecentNetworks(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("No networks stored")
				return nil
			}

			fmt.Println(StyleTitle.Render("Networks"))
			for _, info := range infos {
				status := iconFresh
				style := styleComputed
				if a.cache.IsCached(info.ID) {
					status = iconCached
					style = styleCached
				}
				fmt.Println("  " +
					StyleNumber.Render(strconv.FormatInt(info.ID, 10)) + "  " +
					StyleValue.Render(info.Name) + " " +
					StyleDim.Render(info.Version) + " " +
					style.Render(status))
			}
			return nil
		},
	}
}

// newNetworksCacheCmd creates the "networks cache" subcommand. Without
// arguments it caches every listed network; with ids it caches those.
func newNetworksCacheCmd(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "cache [id...]",
		Short: "Load networks into the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			a, err := setup(cmd, *configPath)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			prog := newProgress(logger)

			if len(args) == 0 {
				if err := a.cache.CacheAll(cmd.Context(), force); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Cached %d networks", len(a.cache.NetworkIDs())))
				return nil
			}

			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid network id %q: %w", arg, err)
				}
				g, err := a.cache.Get(cmd.Context(), id, force)
				if err != nil {
					printError("Network %d: %v", id, err)
					continue
				}
				printSuccess("Cached network %d (%s)", id, g.Name)
				printStats(g.NodeCount(), g.EdgeCount(), true)
			}
			prog.done(fmt.Sprintf("Cached %d networks", len(args)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reload even if already cached")
	return cmd
}

// newNetworksForgetCmd creates the "networks forget" subcommand.
func newNetworksForgetCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <id>",
		Short: "Drop a network's cached instance and derived indexes",
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

			if !a.cache.IsCached(id) {
				printWarning("Network %d is not cached", id)
				return nil
			}
			a.cache.Forget(id)
			printSuccess("Forgot network %d", id)
			return nil
		},
	}
}

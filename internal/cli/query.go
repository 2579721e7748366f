package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/store"
	"github.com/biograph-io/biograph/pkg/subgraph"
)

// queryOpts holds the command-line flags shared by the query and render
// commands.
type queryOpts struct {
	networkID   int64    // network id to query (0 means use name)
	networkName string   // network name, resolved to its latest version
	seed        string   // seed method; empty runs the pipeline without seeding
	nodes       []string // canonical node names for node-anchored seeds
	noPath      bool     // exclude pathology nodes from expansion / path search
	weightKey   string   // edge-weight key for shortest_paths
	pubmed      []string // PubMed references for the pubmed seed
	authors     []string // author names for the authors seed
	annotations []string // key=value pairs for the annotation seed
	matchAll    bool     // require all annotation entries to match
	edgeCount   int      // edge count for the sample seed
	randomSeed  int64    // rng seed for the sample seed
	search      string   // substring for the node_search seed
	expand      []string // canonical node names to expand around
	remove      []string // canonical node names to remove
}

// registerQueryFlags attaches the shared query flags to cmd.
func registerQueryFlags(cmd *cobra.Command, opts *queryOpts) {
	cmd.Flags().Int64Var(&opts.networkID, "network", 0, "network id to query")
	cmd.Flags().StringVar(&opts.networkName, "name", "", "network name (latest version)")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "seed method (induction, neighbors, dneighbors, shortest_paths, upstream, downstream, pubmed, authors, annotation, sample, node_search, causal)")
	cmd.Flags().StringSliceVar(&opts.nodes, "node", nil, "seed node canonical name (repeatable)")
	cmd.Flags().BoolVar(&opts.noPath, "exclude-pathologies", false, "skip pathology nodes during expansion and path search")
	cmd.Flags().StringVar(&opts.weightKey, "weight", "", "edge-weight key for shortest_paths")
	cmd.Flags().StringSliceVar(&opts.pubmed, "pubmed", nil, "PubMed reference for the pubmed seed (repeatable)")
	cmd.Flags().StringSliceVar(&opts.authors, "author", nil, "author name for the authors seed (repeatable)")
	cmd.Flags().StringSliceVar(&opts.annotations, "annotation", nil, "key=value annotation filter entry (repeatable)")
	cmd.Flags().BoolVar(&opts.matchAll, "match-all", false, "require every annotation entry to match")
	cmd.Flags().IntVar(&opts.edgeCount, "edges", 0, "edge count for the sample seed")
	cmd.Flags().Int64Var(&opts.randomSeed, "random-seed", 0, "rng seed for the sample seed")
	cmd.Flags().StringVar(&opts.search, "search", "", "substring for the node_search seed")
	cmd.Flags().StringSliceVar(&opts.expand, "expand", nil, "canonical name to expand around after seeding (repeatable)")
	cmd.Flags().StringSliceVar(&opts.remove, "remove", nil, "canonical name to remove after expansion (repeatable)")
}

// newQueryCmd creates the query command.
func newQueryCmd(configPath *string) *cobra.Command {
	var (
		opts     queryOpts
		jsonOut  bool
		jsonPath string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a seeded subgraph query against a cached network",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			printSuccess("Query on %s", g.Name)
			printStats(result.NodeCount(), result.EdgeCount(), false)

			if jsonOut || jsonPath != "" {
				doc := store.Encode(0, time.Now().UTC(), result)
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return err
				}
				if jsonPath != "" {
					return os.WriteFile(jsonPath, data, 0o644)
				}
				fmt.Println(string(data))
			}
			return nil
		},
	}

	registerQueryFlags(cmd, &opts)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as a network document")
	cmd.Flags().StringVarP(&jsonPath, "output", "o", "", "write the result document to a file")
	return cmd
}

// runQuery resolves the target network, builds pipeline options from the
// flags, and executes it. A nil result with nil error means the seed
// matched nothing.
func runQuery(cmd *cobra.Command, a *app, opts queryOpts) (result, source *bel.Graph, err error) {
	ctx := cmd.Context()

	var g *bel.Graph
	switch {
	case opts.networkID != 0:
		g, err = a.cache.Get(ctx, opts.networkID, false)
	case opts.networkName != "":
		g, err = a.cache.GetByName(ctx, opts.networkName)
	default:
		return nil, nil, fmt.Errorf("either --network or --name is required")
	}
	if err != nil {
		return nil, nil, err
	}

	pipeline, err := buildPipeline(g, opts)
	if err != nil {
		return nil, nil, err
	}

	out, err := subgraph.Query(g, pipeline)
	if err != nil {
		if errors.Is(err, subgraph.ErrNoResult) {
			return nil, g, nil
		}
		return nil, nil, err
	}
	return out, g, nil
}

// buildPipeline converts the flag values into subgraph pipeline options,
// resolving canonical names against the target graph.
func buildPipeline(g *bel.Graph, opts queryOpts) (subgraph.Options, error) {
	data := subgraph.SeedData{
		ExcludePathologies: opts.noPath,
		WeightKey:          opts.weightKey,
		References:         opts.pubmed,
		Authors:            opts.authors,
		EdgeCount:          opts.edgeCount,
		RandomSeed:         opts.randomSeed,
		Query:              opts.search,
	}
	if opts.matchAll {
		data.Mode = subgraph.MatchAll
	}

	var err error
	if data.Nodes, err = resolveNames(g, opts.nodes); err != nil {
		return subgraph.Options{}, err
	}

	if len(opts.annotations) > 0 {
		data.Annotations = make(map[string][]string, len(opts.annotations))
		for _, entry := range opts.annotations {
			key, value, ok := strings.Cut(entry, "=")
			if !ok {
				return subgraph.Options{}, fmt.Errorf("annotation entry %q is not key=value", entry)
			}
			data.Annotations[key] = append(data.Annotations[key], value)
		}
	}

	expand, err := resolveNames(g, opts.expand)
	if err != nil {
		return subgraph.Options{}, err
	}
	remove, err := resolveNames(g, opts.remove)
	if err != nil {
		return subgraph.Options{}, err
	}

	return subgraph.Options{
		Method:      subgraph.SeedMethod(opts.seed),
		Data:        data,
		ExpandNodes: expand,
		RemoveNodes: remove,
	}, nil
}

// resolveNames maps canonical node names to their ids in the graph.
// Unknown names fail rather than silently matching nothing.
func resolveNames(g *bel.Graph, names []string) ([]bel.NodeID, error) {
	if len(names) == 0 {
		return nil, nil
	}
	byName := make(map[string]bel.NodeID, g.NodeCount())
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		byName[n.CanonicalName()] = id
	}

	ids := make([]bel.NodeID, 0, len(names))
	for _, name := range names {
		id, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no node named %q in network %s", name, g.Name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

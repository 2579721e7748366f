package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/search"
	"github.com/biograph-io/biograph/pkg/store"
	"github.com/biograph-io/biograph/pkg/subgraph"
)

// queryRequest is the body of POST /query. Node references are the
// stable integer ids handed out by the identifier index, so clients
// never see content hashes.
type queryRequest struct {
	NetworkID int64  `json:"network_id,omitempty"`
	Name      string `json:"name,omitempty"`

	Seed   *seedRequest `json:"seed,omitempty"`
	Expand []int64      `json:"expand,omitempty"`
	Remove []int64      `json:"remove,omitempty"`
}

// seedRequest carries the seed method and its arguments.
type seedRequest struct {
	Method             string              `json:"method"`
	Nodes              []int64             `json:"nodes,omitempty"`
	ExcludePathologies bool                `json:"exclude_pathologies,omitempty"`
	WeightKey          string              `json:"weight_key,omitempty"`
	References         []string            `json:"references,omitempty"`
	Authors            []string            `json:"authors,omitempty"`
	Annotations        map[string][]string `json:"annotations,omitempty"`
	MatchAll           bool                `json:"match_all,omitempty"`
	EdgeCount          int                 `json:"edge_count,omitempty"`
	RandomSeed         int64               `json:"random_seed,omitempty"`
	Query              string              `json:"query,omitempty"`
}

// queryResponse wraps a query result. NoResult distinguishes "the seed
// matched nothing" from an empty-but-valid subgraph.
type queryResponse struct {
	NoResult bool            `json:"no_result,omitempty"`
	Network  *store.Document `json:"network,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		g   *bel.Graph
		err error
	)
	switch {
	case req.NetworkID != 0:
		g, err = s.cache.Get(r.Context(), req.NetworkID, false)
	case req.Name != "":
		g, err = s.cache.GetByName(r.Context(), req.Name)
	default:
		s.badRequest(w, "network_id or name is required")
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts, err := s.buildPipeline(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := subgraph.Query(g, opts)
	if err != nil {
		if stderrors.Is(err, subgraph.ErrNoResult) {
			s.writeJSON(w, http.StatusOK, queryResponse{NoResult: true})
			return
		}
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, queryResponse{
		Network: store.Encode(req.NetworkID, time.Now().UTC(), result),
	})
}

// buildPipeline converts a request into pipeline options, resolving
// integer node ids through the identifier index.
func (s *Server) buildPipeline(req queryRequest) (subgraph.Options, error) {
	var opts subgraph.Options

	if req.Seed != nil {
		nodes, err := s.resolveNodes(req.Seed.Nodes)
		if err != nil {
			return opts, err
		}
		opts.Method = subgraph.SeedMethod(req.Seed.Method)
		opts.Data = subgraph.SeedData{
			Nodes:              nodes,
			ExcludePathologies: req.Seed.ExcludePathologies,
			WeightKey:          req.Seed.WeightKey,
			References:         req.Seed.References,
			Authors:            req.Seed.Authors,
			Annotations:        req.Seed.Annotations,
			EdgeCount:          req.Seed.EdgeCount,
			RandomSeed:         req.Seed.RandomSeed,
			Query:              req.Seed.Query,
		}
		if req.Seed.MatchAll {
			opts.Data.Mode = subgraph.MatchAll
		}
	}

	var err error
	if opts.ExpandNodes, err = s.resolveNodes(req.Expand); err != nil {
		return opts, err
	}
	if opts.RemoveNodes, err = s.resolveNodes(req.Remove); err != nil {
		return opts, err
	}
	return opts, nil
}

// resolveNodes maps index ids to content-hash node ids.
func (s *Server) resolveNodes(ids []int64) ([]bel.NodeID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]bel.NodeID, 0, len(ids))
	for _, id := range ids {
		n, err := s.cache.Index().Node(id)
		if err != nil {
			return nil, err
		}
		out = append(out, n.ID())
	}
	return out, nil
}

// searchResponse is the body of GET /search.
type searchResponse struct {
	NetworkID int64         `json:"network_id"`
	Query     string        `json:"query"`
	Result    search.Result `json:"result"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("network")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		s.badRequest(w, "invalid network id "+strconv.Quote(rawID))
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		s.badRequest(w, "query parameter q is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.cache.Get(r.Context(), id, false)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, searchResponse{
		NetworkID: id,
		Query:     q,
		Result:    search.Graph(g, q),
	})
}

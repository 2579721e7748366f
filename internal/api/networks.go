package api

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/biograph-io/biograph/pkg/cache"
	"github.com/biograph-io/biograph/pkg/store"
)

// networkJSON is one entry in the network listing.
type networkJSON struct {
	store.NetworkInfo
	Cached bool `json:"cached"`
}

func (s *Server) handleListNetworks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos, err := s.cache.Store().ListRecentNetworks(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]networkJSON, 0, len(infos))
	for _, info := range infos {
		out = append(out, networkJSON{NetworkInfo: info, Cached: s.cache.IsCached(info.ID)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.cache.Get(r.Context(), id, r.URL.Query().Get("force") == "true")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, store.Encode(id, time.Now().UTC(), g))
}

// overlapJSON is one pairwise overlap entry.
type overlapJSON struct {
	NetworkID int64   `json:"network_id"`
	Score     float64 `json:"score"`
}

func (s *Server) handleOverlap(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.cache.Overlap(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]overlapJSON, 0, len(row))
	for other, score := range row {
		out = append(out, overlapJSON{NetworkID: other, Score: score})
	}
	sortOverlap(out)
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTopDegree(w http.ResponseWriter, r *http.Request) {
	s.handleRanking(w, r, s.cache.TopDegree)
}

func (s *Server) handleTopPathologies(w http.ResponseWriter, r *http.Request) {
	s.handleRanking(w, r, s.cache.TopPathologies)
}

// defaultRankingCount bounds ranking responses when no count is given.
const defaultRankingCount = 15

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request,
	rank func(ctx context.Context, id int64, count int) ([]cache.Ranked, error),
) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	count := defaultRankingCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.badRequest(w, "invalid count "+strconv.Quote(raw))
			return
		}
		count = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ranked, err := rank(r.Context(), id, count)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ranked)
}

// pathID parses the {id} path parameter.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.badRequest(w, "invalid network id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

// sortOverlap orders overlap entries by descending score, then id.
func sortOverlap(entries []overlapJSON) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].NetworkID < entries[j].NetworkID
	})
}

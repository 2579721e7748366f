package store

import (
	"slices"
	"time"

	"github.com/biograph-io/biograph/pkg/bel"
	"github.com/biograph-io/biograph/pkg/errors"
)

// Document is the stored form of a network. Edges reference nodes by
// position in the Nodes slice rather than by content hash, so documents
// stay readable and survive any change to the hashing scheme.
type Document struct {
	ID        int64      `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name"`
	Version   string     `json:"version" bson:"version"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	Nodes     []bel.Node `json:"nodes" bson:"nodes"`
	Edges     []EdgeDoc  `json:"edges" bson:"edges"`
}

// EdgeDoc is the stored form of an edge, with endpoint indices into the
// parent document's Nodes slice.
type EdgeDoc struct {
	From        int                 `json:"from" bson:"from"`
	To          int                 `json:"to" bson:"to"`
	Key         string              `json:"key,omitempty" bson:"key,omitempty"`
	Relation    bel.Relation        `json:"relation" bson:"relation"`
	Evidence    string              `json:"evidence,omitempty" bson:"evidence,omitempty"`
	Citation    *bel.Citation       `json:"citation,omitempty" bson:"citation,omitempty"`
	Annotations map[string][]string `json:"annotations,omitempty" bson:"annotations,omitempty"`
	Weights     map[string]float64  `json:"weights,omitempty" bson:"weights,omitempty"`
}

// Info returns the document's identifying metadata.
func (d *Document) Info() NetworkInfo {
	return NetworkInfo{ID: d.ID, Name: d.Name, Version: d.Version, CreatedAt: d.CreatedAt}
}

// Decode materializes the document into a graph.
// Fails with a LOAD_FAILED error when an edge references an out-of-range
// node index, which indicates document corruption.
func (d *Document) Decode() (*bel.Graph, error) {
	g := bel.New(d.Name, d.Version)

	ids := make([]bel.NodeID, len(d.Nodes))
	for i, n := range d.Nodes {
		ids[i] = g.AddNode(n)
	}

	for i, ed := range d.Edges {
		if ed.From < 0 || ed.From >= len(ids) || ed.To < 0 || ed.To >= len(ids) {
			return nil, errors.New(errors.CodeLoadFailed,
				"network %d: edge %d references node index out of range", d.ID, i)
		}
		e := bel.Edge{
			From:     ids[ed.From],
			To:       ids[ed.To],
			Key:      ed.Key,
			Relation: ed.Relation,
			Evidence: ed.Evidence,
			Citation: ed.Citation,
			Weights:  ed.Weights,
		}
		if len(ed.Annotations) > 0 {
			e.Annotations = make(bel.Annotations, len(ed.Annotations))
			for k, vals := range ed.Annotations {
				set := make(map[string]bool, len(vals))
				for _, v := range vals {
					set[v] = true
				}
				e.Annotations[k] = set
			}
		}
		if _, err := g.AddEdge(e); err != nil {
			return nil, errors.Wrap(errors.CodeLoadFailed, err,
				"network %d: edge %d", d.ID, i)
		}
	}
	return g, nil
}

// Encode converts a graph into its stored form. Node order follows the
// graph's deterministic ascending-hash order, so encoding the same graph
// twice produces identical documents.
func Encode(id int64, createdAt time.Time, g *bel.Graph) *Document {
	doc := &Document{
		ID:        id,
		Name:      g.Name,
		Version:   g.Version,
		CreatedAt: createdAt,
	}

	pos := make(map[bel.NodeID]int, g.NodeCount())
	for i, nid := range g.NodeIDs() {
		n, _ := g.Node(nid)
		doc.Nodes = append(doc.Nodes, n)
		pos[nid] = i
	}

	for _, eid := range g.EdgeIDs() {
		e, _ := g.Edge(eid)
		ed := EdgeDoc{
			From:     pos[e.From],
			To:       pos[e.To],
			Key:      e.Key,
			Relation: e.Relation,
			Evidence: e.Evidence,
			Citation: e.Citation,
			Weights:  e.Weights,
		}
		if len(e.Annotations) > 0 {
			ed.Annotations = make(map[string][]string, len(e.Annotations))
			for k, set := range e.Annotations {
				vals := make([]string, 0, len(set))
				for v := range set {
					vals = append(vals, v)
				}
				slices.Sort(vals)
				ed.Annotations[k] = vals
			}
		}
		doc.Edges = append(doc.Edges, ed)
	}
	return doc
}

package bel

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Relation tags the kind of relationship an edge asserts.
type Relation string

// Edge relations. The causal subset is the closed set recognized by
// IsCausal; everything else is treated as correlative or structural.
const (
	RelationIncreases         Relation = "increases"
	RelationDirectlyIncreases Relation = "directlyIncreases"
	RelationDecreases         Relation = "decreases"
	RelationDirectlyDecreases Relation = "directlyDecreases"
	RelationRegulates         Relation = "regulates"
	RelationAssociation       Relation = "association"
	RelationPositiveCorr      Relation = "positiveCorrelation"
	RelationNegativeCorr      Relation = "negativeCorrelation"
	RelationHasComponent      Relation = "hasComponent"
	RelationHasVariant        Relation = "hasVariant"
	RelationTranscribedTo     Relation = "transcribedTo"
	RelationTranslatedTo      Relation = "translatedTo"
)

// causalRelations is the closed set of directed causal influence tags.
var causalRelations = map[Relation]bool{
	RelationIncreases:         true,
	RelationDirectlyIncreases: true,
	RelationDecreases:         true,
	RelationDirectlyDecreases: true,
	RelationRegulates:         true,
}

// IsCausal reports whether the relation asserts directed causal influence
// rather than a correlative or structural relationship.
func (r Relation) IsCausal() bool { return causalRelations[r] }

// EdgeID is the stable content hash identifying an edge.
type EdgeID uint64

// String formats the ID as a fixed-width hex string for logs and exports.
func (id EdgeID) String() string { return fmt.Sprintf("%016x", uint64(id)) }

// Citation records the provenance of an edge.
type Citation struct {
	Type      string   `json:"type,omitempty" bson:"type,omitempty"` // e.g. "PubMed"
	Reference string   `json:"reference" bson:"reference"`           // e.g. a PMID
	Authors   []string `json:"authors,omitempty" bson:"authors,omitempty"`

	// Enriched metadata, filled by the citation enrichment collaborator.
	Title string `json:"title,omitempty" bson:"title,omitempty"`
	Date  string `json:"date,omitempty" bson:"date,omitempty"`
}

// Annotations is the context annotation map on an edge: each key maps to
// the set of values asserted for it.
type Annotations map[string]map[string]bool

// Copy returns a deep copy of the annotation map. Returns nil for nil.
func (a Annotations) Copy() Annotations {
	if a == nil {
		return nil
	}
	out := make(Annotations, len(a))
	for k, vs := range a {
		set := make(map[string]bool, len(vs))
		for v := range vs {
			set[v] = true
		}
		out[k] = set
	}
	return out
}

// Edge is a directed relationship between two nodes. From and To reference
// nodes by content hash; Key disambiguates otherwise-identical statements
// extracted from different parts of a document.
//
// Weights holds numeric edge data (e.g. confidence scores) addressable by
// key for weighted shortest-path queries.
type Edge struct {
	From        NodeID             `json:"from" bson:"from"`
	To          NodeID             `json:"to" bson:"to"`
	Key         string             `json:"key,omitempty" bson:"key,omitempty"`
	Relation    Relation           `json:"relation" bson:"relation"`
	Evidence    string             `json:"evidence,omitempty" bson:"evidence,omitempty"`
	Citation    *Citation          `json:"citation,omitempty" bson:"citation,omitempty"`
	Annotations Annotations        `json:"annotations,omitempty" bson:"annotations,omitempty"`
	Weights     map[string]float64 `json:"weights,omitempty" bson:"weights,omitempty"`
}

// ID computes the edge's stable content hash over (endpoints, key,
// relation, annotation data). Enriched citation metadata (title, date) is
// excluded so that enrichment never changes identity.
func (e Edge) ID() EdgeID {
	h := xxhash.New()
	writeField(h, e.From.String())
	writeField(h, e.To.String())
	writeField(h, e.Key)
	writeField(h, string(e.Relation))
	writeField(h, e.Evidence)
	if e.Citation != nil {
		writeField(h, e.Citation.Type)
		writeField(h, e.Citation.Reference)
	}
	for _, k := range sortedKeys(e.Annotations) {
		writeField(h, k)
		vals := make([]string, 0, len(e.Annotations[k]))
		for v := range e.Annotations[k] {
			vals = append(vals, v)
		}
		slices.Sort(vals)
		for _, v := range vals {
			writeField(h, v)
		}
	}
	return EdgeID(h.Sum64())
}

// IsCausal reports whether the edge's relation is causal.
func (e Edge) IsCausal() bool { return e.Relation.IsCausal() }

// Copy returns a deep copy of the edge.
func (e Edge) Copy() Edge {
	out := e
	if e.Citation != nil {
		c := *e.Citation
		c.Authors = slices.Clone(e.Citation.Authors)
		out.Citation = &c
	}
	out.Annotations = e.Annotations.Copy()
	if e.Weights != nil {
		w := make(map[string]float64, len(e.Weights))
		for k, v := range e.Weights {
			w[k] = v
		}
		out.Weights = w
	}
	return out
}

func sortedKeys(a Annotations) []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

package bel

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Function classifies the biological entity a node represents.
type Function string

// Node functions. Pathology is special-cased by several subgraph
// strategies, which can exclude disease/phenotype entities from expansion.
const (
	FunctionProtein   Function = "protein"
	FunctionRNA       Function = "rna"
	FunctionMicroRNA  Function = "mirna"
	FunctionGene      Function = "gene"
	FunctionAbundance Function = "abundance"
	FunctionProcess   Function = "process"
	FunctionPathology Function = "pathology"
	FunctionComplex   Function = "complex"
	FunctionComposite Function = "composite"
	FunctionReaction  Function = "reaction"
)

// NodeID is the stable content hash identifying a node. Two nodes with the
// same typed attributes always produce the same NodeID, in any process.
type NodeID uint64

// String formats the ID as a fixed-width hex string for logs and exports.
func (id NodeID) String() string { return fmt.Sprintf("%016x", uint64(id)) }

// Node is a biological entity. The identifying attributes are Function,
// Namespace, Name, and Variant; everything else (CName) is derived
// decoration that does not participate in the content hash.
//
// The zero value is not usable - Function and Name must be set.
type Node struct {
	Function  Function `json:"function" bson:"function"`
	Namespace string   `json:"namespace,omitempty" bson:"namespace,omitempty"`
	Name      string   `json:"name" bson:"name"`
	Variant   string   `json:"variant,omitempty" bson:"variant,omitempty"`

	// CName is the memoized canonical display name, assigned during
	// enrichment. Empty until enrich.AddCanonicalNames has run.
	CName string `json:"cname,omitempty" bson:"cname,omitempty"`
}

// ID computes the node's stable content hash.
func (n Node) ID() NodeID {
	h := xxhash.New()
	writeField(h, string(n.Function))
	writeField(h, n.Namespace)
	writeField(h, n.Name)
	writeField(h, n.Variant)
	return NodeID(h.Sum64())
}

// IsPathology reports whether the node is a disease/phenotype entity.
func (n Node) IsPathology() bool { return n.Function == FunctionPathology }

// CanonicalName returns the memoized canonical name if present, otherwise
// computes the deterministic display string without memoizing it.
func (n Node) CanonicalName() string {
	if n.CName != "" {
		return n.CName
	}
	return ComputeCanonicalName(n)
}

// ComputeCanonicalName derives the deterministic display string for a
// node: "namespace:name" with an optional variant suffix, falling back to
// the bare name when no namespace is set.
func ComputeCanonicalName(n Node) string {
	var b strings.Builder
	if n.Namespace != "" {
		b.WriteString(n.Namespace)
		b.WriteByte(':')
	}
	b.WriteString(n.Name)
	if n.Variant != "" {
		b.WriteByte('(')
		b.WriteString(n.Variant)
		b.WriteByte(')')
	}
	return b.String()
}

// writeField appends a length-prefixed field to the hash state so that
// adjacent fields cannot collide ("ab","c" vs "a","bc").
func writeField(h *xxhash.Digest, s string) {
	var buf [8]byte
	n := len(s)
	for i := 0; i < 8; i++ {
		buf[i] = byte(n >> (8 * i))
	}
	h.Write(buf[:])
	h.WriteString(s)
}

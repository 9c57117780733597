// Package query defines the backend-agnostic predicate tree. The Query
// Builder assembles these values declaratively; only the repository layer
// knows how to compile them into the document store's native syntax.
package query

// Node is one clause of a predicate tree.
type Node interface{ isNode() }

// Operator controls how multiple analyzed terms combine inside a match clause.
type Operator string

// Match operators.
const (
	OperatorOr  Operator = "or"
	OperatorAnd Operator = "and"
)

// Bool combines clauses with must/should/filter/must_not semantics.
type Bool struct {
	Must    []Node
	Should  []Node
	Filter  []Node
	MustNot []Node
	// MinimumShouldMatch applies when Should clauses are present ("1" = at
	// least one should clause has to hit).
	MinimumShouldMatch string
}

// Term is an exact single-value filter.
type Term struct {
	Field string
	Value any
}

// Terms matches documents whose field intersects any of the given values.
type Terms struct {
	Field  string
	Values []any
}

// Range is an inclusive numeric/date range filter. Nil bounds are open.
type Range struct {
	Field string
	GTE   any
	LTE   any
}

// Match is an analyzed text match on a single field.
type Match struct {
	Field    string
	Query    string
	Operator Operator
	Boost    float64 // 0 = no boost
}

// MultiMatch is an analyzed text match across several fields; a hit on any
// field counts.
type MultiMatch struct {
	Fields   []string
	Query    string
	Operator Operator
}

// MoreLikeThis is a similarity clause against a reference document, with
// per-field importance expressed as "field^boost" entries.
type MoreLikeThis struct {
	Fields        []string
	LikeID        string
	MinTermFreq   int
	MinDocFreq    int
	MaxQueryTerms int
}

// IDs matches documents by exact id.
type IDs struct {
	Values []string
}

// Exists matches documents that carry a non-null value for the field.
type Exists struct {
	Field string
}

func (Bool) isNode()         {}
func (Term) isNode()         {}
func (Terms) isNode()        {}
func (Range) isNode()        {}
func (Match) isNode()        {}
func (MultiMatch) isNode()   {}
func (MoreLikeThis) isNode() {}
func (IDs) isNode()          {}
func (Exists) isNode()       {}

// IsEmpty reports whether the bool node carries no clauses at all.
func (b Bool) IsEmpty() bool {
	return len(b.Must) == 0 && len(b.Should) == 0 && len(b.Filter) == 0 && len(b.MustNot) == 0
}

// Order is a sort direction.
type Order string

// Sort directions.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort orders results by a single field.
type Sort struct {
	Field string
	Order Order
}

// QualityBoost is a field-value-factor scoring function summed onto the text
// relevance score: weight * log1p(factor * field), with Missing substituted
// when the field is absent.
type QualityBoost struct {
	Field   string
	Factor  float64
	Missing float64
	Weight  float64
}

// Query is a complete ordered query against the store: predicate tree plus
// ordering, optional quality boost, and paging window.
type Query struct {
	Root  Node
	Sorts []Sort
	Boost *QualityBoost
	From  int
	Size  int
}

// StringsToValues converts a string slice into Terms values.
func StringsToValues(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// IntsToValues converts an int slice into Terms values.
func IntsToValues(ns []int) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

package domain

// ---------------- Operators ----------------

type Operator string

const (
	OpEq    Operator = "="
	OpGt    Operator = ">"
	OpGte   Operator = ">="
	OpLt    Operator = "<"
	OpLte   Operator = "<="
	OpILike Operator = "ILIKE" // anchor-free, case-insensitive substring match
	OpIn    Operator = "IN"    // membership in a set of values
	OpText  Operator = "TEXT"  // full-text search against the collection's text index
)

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ---------------- Criterion ----------------

// Criterion describes one neutral filter condition, independent of the
// storage backend that will evaluate it.
type Criterion struct {
	Field string
	Op    Operator
	Value interface{}
}

// ---------------- Criteria interface ----------------

// Criteria turns a domain filter into neutral conditions.
type Criteria interface {
	ToConditions() []Criterion
}

// ---------------- Composite Criteria ----------------

// CompositeCriteria combines child criteria under AND or OR. Storage
// adapters must honor the operator; flattening an OR group into a
// conjunction changes its meaning.
type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

func (c CompositeCriteria) ToConditions() []Criterion {
	var all []Criterion
	for _, crit := range c.Criterias {
		all = append(all, crit.ToConditions()...)
	}
	return all
}

// ---------------- Helpers ----------------

// And creates a CompositeCriteria with the AND operator.
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: criterias}
}

// Or creates a CompositeCriteria with the OR operator.
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: criterias}
}

// Where creates a single-condition Criteria, the building block for the
// per-kind filter builders.
func Where(field string, op Operator, value interface{}) Criteria {
	return condition{field: field, op: op, value: value}
}

type condition struct {
	field string
	op    Operator
	value interface{}
}

func (c condition) ToConditions() []Criterion {
	return []Criterion{{Field: c.field, Op: c.op, Value: c.value}}
}

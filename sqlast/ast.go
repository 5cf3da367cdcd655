// Package sqlast is a small, purpose-built SQL AST for the statements
// gql2sql emits — it is not a general-purpose SQL parser/AST. Node shapes
// follow spec §3 exactly: Statement, Query, Select, SelectItem,
// TableWithJoins, TableFactor, Join, Expr, Value, OrderByExpr, Offset.
//
// No Go library in the retrieval pack offers this shape (a SQL AST plus a
// textual printer, independent of any particular driver); the package is
// grounded directly on that spec section and on the original Rust
// implementation's use of the sqlparser crate's AST of the same name.
package sqlast

// Ident is a single SQL identifier. Every schema-derived identifier is
// quoted with '"' per spec §3: Quote sets Quoted to true. Quoted is false
// (the zero value, via Bare or UpperIdent) only for the function names the
// printer contract (§6) requires unquoted: the lowercase json_agg,
// row_to_json, coalesce, json_build_object and the uppercase aggregate
// operators COUNT, MIN, MAX, AVG.
type Ident struct {
	Name   string
	Quoted bool
}

// Quote returns an Ident that will render with double-quote quoting.
func Quote(name string) Ident { return Ident{Name: name, Quoted: true} }

// Bare returns an Ident that renders without quoting (a bare function name).
func Bare(name string) Ident { return Ident{Name: name, Quoted: false} }

// Statement is the top-level printable unit gql2sql returns one of per
// compiled GraphQL field (spec §6: Compile returns (name, Statement) pairs).
type Statement struct {
	Query *Query
}

// Query wraps a SetExpr body with the clauses that apply to the statement
// as a whole. It has no With/Fetch/Lock fields: this compiler never emits
// those clauses.
type Query struct {
	Body    SetExpr
	OrderBy []OrderByExpr
	Limit   Expr
	Offset  *Offset
}

// SetExpr is implemented by Select (the only variant this compiler emits;
// UNION/INTERSECT/EXCEPT are out of contract).
type SetExpr interface{ isSetExpr() }

// Select is a single SELECT body.
type Select struct {
	Projection []SelectItem
	From       []TableWithJoins
	Selection  Expr // WHERE clause; nil means no WHERE
	GroupBy    []Expr
}

func (*Select) isSetExpr() {}

// SelectItem is implemented by UnnamedExpr, ExprWithAlias, and Wildcard.
type SelectItem interface{ isSelectItem() }

// UnnamedExpr is a projected expression with no AS alias.
type UnnamedExpr struct{ Expr Expr }

func (UnnamedExpr) isSelectItem() {}

// ExprWithAlias is a projected expression aliased with AS "alias".
type ExprWithAlias struct {
	Expr  Expr
	Alias Ident
}

func (ExprWithAlias) isSelectItem() {}

// Wildcard is a bare `*` projection.
type Wildcard struct{}

func (Wildcard) isSelectItem() {}

// TableWithJoins is one FROM item plus the joins attached to it.
type TableWithJoins struct {
	Relation TableFactor
	Joins    []Join
}

// TableFactor is implemented by Table and Derived.
type TableFactor interface{ isTableFactor() }

// Table is a bare table reference, optionally aliased.
type Table struct {
	Name  Ident
	Alias *Ident
}

func (Table) isTableFactor() {}

// Derived is a subquery in FROM position, always aliased (spec §3: every
// table factor E introduces is aliased with a dotted path).
type Derived struct {
	Lateral  bool
	Subquery *Query
	Alias    Ident
}

func (Derived) isTableFactor() {}

// JoinOperator identifies the kind of join; gql2sql only ever emits
// LeftOuterLateral, but the type stays open for AST fidelity.
type JoinOperator int

const (
	// LeftOuterLateral renders `LEFT JOIN LATERAL ... ON (...)`. Spec §3:
	// LEFT guarantees an absent child becomes SQL NULL, which
	// coalesce(json_agg(...), '[]') promotes to an empty JSON array.
	LeftOuterLateral JoinOperator = iota
)

// Join is one LEFT JOIN LATERAL attached to a TableWithJoins.
type Join struct {
	Relation   TableFactor
	Operator   JoinOperator
	Constraint Expr // the ON expression
}

// Expr is implemented by IdentExpr, CompoundIdent, Literal, BinaryOp, Function,
// Like, Subquery, and Nested.
type Expr interface{ isExpr() }

// IdentExpr references a single unqualified column.
type IdentExpr struct{ Ident Ident }

func (IdentExpr) isExpr() {}

// CompoundIdent references path.column, e.g. "base.Component"."id".
type CompoundIdent struct{ Idents []Ident }

func (CompoundIdent) isExpr() {}

// Literal wraps a Value as an expression.
type Literal struct{ Value Value }

func (Literal) isExpr() {}

// BinaryOperator enumerates the comparison and boolean operators gql2sql
// ever emits (spec §4.B).
type BinaryOperator int

const (
	OpEq BinaryOperator = iota
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
)

// BinaryOp is a left OP right expression.
type BinaryOp struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

func (BinaryOp) isExpr() {}

// Function is a SQL function call, e.g. json_agg(...), COUNT(*).
// Args holds the positional arguments; json_build_object's key/value pairs
// are carried flattened in Args as key, value, key, value, .... Wildcard
// replaces Args with a bare `*`.
type Function struct {
	Name     Ident
	Args     []Expr
	Wildcard bool // special-cases COUNT(*)
}

func (Function) isExpr() {}

// Like is a LIKE/ILIKE predicate; escape is never specified (spec §4.B).
type Like struct {
	CaseInsensitive bool
	Expr            Expr
	Pattern         Expr
}

func (Like) isExpr() {}

// Subquery is a scalar/table subquery used in expression position.
type Subquery struct{ Query *Query }

func (Subquery) isExpr() {}

// Nested is a parenthesized expression, used for ON ('true').
type Nested struct{ Expr Expr }

func (Nested) isExpr() {}

// Value is implemented by Number, SingleQuotedString, Null, Boolean, and
// Placeholder (spec §3/§4.A).
type Value interface{ isValue() }

// Number is a numeric literal rendered verbatim (no quoting).
type Number struct{ Text string }

func (Number) isValue() {}

// SingleQuotedString is a string literal; the caller is responsible for
// escaping, per spec §4.A.
type SingleQuotedString struct{ Text string }

func (SingleQuotedString) isValue() {}

// Null is the SQL NULL literal.
type Null struct{}

func (Null) isValue() {}

// Boolean is a SQL boolean literal.
type Boolean struct{ Value bool }

func (Boolean) isValue() {}

// Placeholder is an unbound GraphQL variable reference, carried verbatim
// (spec Open Question #5: parameter binding is out of the core's contract).
type Placeholder struct{ Name string }

func (Placeholder) isValue() {}

// OrderByExpr is one ORDER BY entry.
type OrderByExpr struct {
	Expr Expr
	Asc  bool
}

// Offset is the OFFSET clause; gql2sql never sets a ROWS qualifier.
type Offset struct{ Value Expr }

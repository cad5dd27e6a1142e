package criteria

import (
	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// clause identifies a builder operation for ordering purposes.
type clause int

const (
	clauseWith clause = iota
	clauseSelect
	clauseFrom
	clauseJoin
	clauseOn
	clauseWhere
	clauseGroupBy
	clauseHaving
	clauseOrderBy
	clauseLimit
	clauseLock
	clauseColumns
	clauseValues
	clauseConflict
	clauseSet
	clauseReturning
)

var clauseNames = map[clause]string{
	clauseWith:      "WITH",
	clauseSelect:    "SELECT",
	clauseFrom:      "FROM",
	clauseJoin:      "JOIN",
	clauseOn:        "ON",
	clauseWhere:     "WHERE",
	clauseGroupBy:   "GROUP BY",
	clauseHaving:    "HAVING",
	clauseOrderBy:   "ORDER BY",
	clauseLimit:     "LIMIT",
	clauseLock:      "FOR UPDATE",
	clauseColumns:   "COLUMNS",
	clauseValues:    "VALUES",
	clauseConflict:  "ON CONFLICT",
	clauseSet:       "SET",
	clauseReturning: "RETURNING",
}

func (c clause) String() string { return clauseNames[c] }

// clauseStages ranks the clauses each statement kind accepts. A clause may
// be added while the builder is at its rank or below; clauses sharing a rank
// may interleave.
var clauseStages = map[core.StmtKind]map[clause]int{
	core.StmtSelect: {
		clauseWith:    1,
		clauseSelect:  2,
		clauseFrom:    3,
		clauseJoin:    3,
		clauseOn:      3,
		clauseWhere:   4,
		clauseGroupBy: 5,
		clauseHaving:  6,
		clauseOrderBy: 7,
		clauseLimit:   8,
		clauseLock:    9,
	},
	core.StmtInsert: {
		clauseColumns:   1,
		clauseValues:    2,
		clauseConflict:  3,
		clauseReturning: 4,
	},
	core.StmtUpdate: {
		clauseSet:       1,
		clauseWhere:     2,
		clauseOrderBy:   3,
		clauseLimit:     4,
		clauseReturning: 5,
	},
	core.StmtDelete: {
		clauseWhere:     1,
		clauseOrderBy:   2,
		clauseLimit:     3,
		clauseReturning: 4,
	},
	core.StmtValues: {
		clauseColumns: 1,
		clauseValues:  2,
	},
}

// stageTracker enforces clauseStages for one builder.
type stageTracker struct {
	kind  core.StmtKind
	ranks map[clause]int
	rank  int
	last  clause
}

func newStageTracker(kind core.StmtKind) stageTracker {
	return stageTracker{kind: kind, ranks: clauseStages[kind]}
}

func (t *stageTracker) advance(c clause) error {
	r, ok := t.ranks[c]
	if !ok {
		panic("criteria: " + c.String() + " is not a " + t.kind.String() + " clause")
	}
	if r < t.rank {
		return &ClauseOrderError{Stmt: t.kind, Clause: c.String(), After: t.last.String()}
	}
	t.rank = r
	t.last = c
	return nil
}

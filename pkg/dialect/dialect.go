// Package dialect provides SQL dialect configuration: identifier quoting
// and normalization, placeholder formatting, feature flags and function
// classification.
//
// Concrete dialect implementations are registered from pkg/dialects/*/
// packages.
package dialect

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapcrit/pkg/core"
)

// Re-exported normalization strategies for dialect definitions.
const (
	NormLowercase       = core.NormLowercase
	NormUppercase       = core.NormUppercase
	NormCaseSensitive   = core.NormCaseSensitive
	NormCaseInsensitive = core.NormCaseInsensitive
)

// NormalizationStrategy is an alias for core.NormalizationStrategy.
type NormalizationStrategy = core.NormalizationStrategy

// FunctionKind classifies a SQL function.
type FunctionKind int

const (
	// FuncScalar is the default for unknown functions.
	FuncScalar FunctionKind = iota
	// FuncAggregate means many rows aggregate to one value (SUM, COUNT, etc.).
	FuncAggregate
	// FuncGenerator means the function produces values with no input columns (NOW, RANDOM, etc.).
	FuncGenerator
	// FuncWindow means the function requires an OVER clause (ROW_NUMBER, LAG, etc.).
	FuncWindow
)

// String returns the string representation of FunctionKind.
func (k FunctionKind) String() string {
	switch k {
	case FuncScalar:
		return "scalar"
	case FuncAggregate:
		return "aggregate"
	case FuncGenerator:
		return "generator"
	case FuncWindow:
		return "window"
	default:
		return "unknown"
	}
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	core.DialectConfig

	aggregates    map[string]struct{}
	generators    map[string]struct{}
	windows       map[string]struct{}
	reservedWords map[string]struct{} // words that need quoting as identifiers
	dataTypes     []string
}

// Config returns a copy of the pure data configuration for this dialect.
func (d *Dialect) Config() core.DialectConfig {
	return d.DialectConfig
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return cases.Upper(language.Und).String(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return lower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FunctionKind returns the classification of a function.
func (d *Dialect) FunctionKind(name string) FunctionKind {
	normalized := d.NormalizeName(name)
	if _, ok := d.aggregates[normalized]; ok {
		return FuncAggregate
	}
	if _, ok := d.generators[normalized]; ok {
		return FuncGenerator
	}
	if _, ok := d.windows[normalized]; ok {
		return FuncWindow
	}
	return FuncScalar
}

// IsAggregate returns true if the function is an aggregate function.
func (d *Dialect) IsAggregate(name string) bool {
	return d.FunctionKind(name) == FuncAggregate
}

// IsWindow returns true if the function is a window-only function.
func (d *Dialect) IsWindow(name string) bool {
	return d.FunctionKind(name) == FuncWindow
}

// ReservedWords returns the number of registered reserved words.
func (d *Dialect) ReservedWords() int {
	return len(d.reservedWords)
}

// DataTypes returns all supported data types.
func (d *Dialect) DataTypes() []string {
	return d.dataTypes
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderColon:
		return ":" + strconv.Itoa(index)
	case core.PlaceholderNamed:
		return ":p" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[lower(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier when it is a reserved word,
// is not a simple identifier, or would be folded to a different case.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.needsQuoting(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

func (d *Dialect) needsQuoting(name string) bool {
	if name == "" || !isSimpleIdentifier(name) || d.IsReservedWord(name) {
		return true
	}
	switch d.Identifiers.Normalization {
	case core.NormLowercase, core.NormUppercase:
		return d.NormalizeName(name) != name
	}
	return false
}

// lower folds s with a fresh Caser; Casers are not safe for concurrent use.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func isSimpleIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// SupportsJoin reports whether the dialect accepts the join kind.
func (d *Dialect) SupportsJoin(kind core.JoinKind) bool {
	switch kind {
	case core.JoinRight:
		return d.Features.RightJoin
	case core.JoinFull:
		return d.Features.FullJoin
	case core.JoinStraight:
		return d.Features.StraightJoin
	}
	return true
}

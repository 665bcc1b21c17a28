package gotable

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "asc"
	DirectionDESC Direction = "desc"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

// Flip returns the opposite direction.
func (o Direction) Flip() Direction {
	return lo.Ternary(o == DirectionDESC, DirectionASC, DirectionDESC)
}

// Glyph returns the arrow rendered next to the active sort column.
func (o Direction) Glyph() string {
	return lo.Ternary(o == DirectionDESC, "▼", "▲")
}

// OrderBy is the active sort of a table: one column and a direction.
type OrderBy struct {
	Column    string
	Direction Direction
}

// DefaultOrderBy is applied when a request carries no usable sort.
var DefaultOrderBy = OrderBy{Column: IDField, Direction: DirectionASC}

var _availableColumnNameSymbols = append([]rune("_.-"), lo.AlphanumericCharset...)

func (o OrderBy) validate() error {
	if o.Column == "" {
		return fmt.Errorf("empty ordering column")
	}

	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	// Column names end up in generated links and log lines.
	if !lo.Every(_availableColumnNameSymbols, []rune(o.Column)) {
		return fmt.Errorf("ordering column name contains forbidden symbols '%s'", o.Column)
	}

	return nil
}

// String returns the combined "<column> <direction>" token.
func (o OrderBy) String() string {
	return fmt.Sprintf("%s %s", o.Column, o.Direction)
}

// Toggle returns the ordering produced by activating the header of column:
// the active column flips its direction, any other column starts ascending.
func (o OrderBy) Toggle(column string) OrderBy {
	if o.Column == column {
		return OrderBy{Column: column, Direction: o.Direction.Flip()}
	}

	return OrderBy{Column: column, Direction: DirectionASC}
}

// ParseSort builds an OrderBy from a combined token in the format
// "column [asc|desc]". A missing direction means ascending.
func ParseSort(token string) (OrderBy, error) {
	fields := strings.Fields(token)
	switch len(fields) {
	case 1:
		return ParseSortParts(fields[0], "")
	case 2:
		return ParseSortParts(fields[0], fields[1])
	default:
		return OrderBy{}, fmt.Errorf("invalid ordering string format '%s'", token)
	}
}

// ParseSortParts builds an OrderBy from separate column and direction values.
func ParseSortParts(column, direction string) (OrderBy, error) {
	ret := OrderBy{
		Column:    strings.TrimSpace(column),
		Direction: Direction(strings.ToLower(strings.TrimSpace(direction))),
	}
	if ret.Direction == "" {
		ret.Direction = DirectionASC
	}

	if err := ret.validate(); err != nil {
		return OrderBy{}, err
	}

	return ret, nil
}

func closestAlias(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, alias := range dataSet {
		dist := levenshtein([]rune(alias), []rune(input))
		if dist < minDist {
			minDist = dist
			closest = alias
		}
	}

	return closest
}

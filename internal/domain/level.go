package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLevel is returned for wage level tokens outside L1-L4.
var ErrInvalidLevel = errors.New("invalid wage level")

// ErrInvalidOperator is returned for comparison operators other than >=, >, <=, <.
var ErrInvalidOperator = errors.New("invalid comparison operator")

// WageLevel is one of the four OFLC prevailing-wage tiers.
type WageLevel string

const (
	L1 WageLevel = "L1"
	L2 WageLevel = "L2"
	L3 WageLevel = "L3"
	L4 WageLevel = "L4"
)

var levelColumns = map[WageLevel]string{
	L1: "Level1",
	L2: "Level2",
	L3: "Level3",
	L4: "Level4",
}

// ParseWageLevel accepts L1-L4 in any case, ignoring surrounding space.
func ParseWageLevel(s string) (WageLevel, error) {
	l := WageLevel(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelColumns[l]; !ok {
		return "", fmt.Errorf("%w: must be one of L1, L2, L3, L4 (got '%s')", ErrInvalidLevel, l)
	}
	return l, nil
}

// Column returns the wage-table column holding this level, or "" for an
// invalid level.
func (l WageLevel) Column() string {
	return levelColumns[l]
}

// Operator is a configured comparison between the offered wage and a level.
type Operator string

const (
	OpAtLeast Operator = ">="
	OpAbove   Operator = ">"
	OpAtMost  Operator = "<="
	OpBelow   Operator = "<"
)

// ParseOperator validates an operator token.
func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.TrimSpace(s))
	switch op {
	case OpAtLeast, OpAbove, OpAtMost, OpBelow:
		return op, nil
	}
	return "", fmt.Errorf("%w '%s'", ErrInvalidOperator, s)
}

// Qualifies reports whether a level value passes the operator for the
// offered wage. The operator is read from the wage's side, so ">=" keeps
// rows whose level is at or below the wage.
func (o Operator) Qualifies(level, wage float64) bool {
	switch o {
	case OpAtLeast:
		return level <= wage
	case OpAbove:
		return level < wage
	case OpAtMost:
		return level >= wage
	case OpBelow:
		return level > wage
	}
	return false
}

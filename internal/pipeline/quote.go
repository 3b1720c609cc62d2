package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports quote input that is not a finite number.
type ValidationError struct {
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid quoted cost %q: must be a number", e.Input)
}

// ParseQuote parses user input for a quoted cost. It performs no I/O, so a
// rejected value never reaches the backend.
func ParseQuote(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "$"))
	if s == "" {
		return decimal.Zero, &ValidationError{Input: input}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &ValidationError{Input: input}
	}

	// ParseFloat also accepts hex floats; decimal rejects them.
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Input: input}
	}
	return d, nil
}

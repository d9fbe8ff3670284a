package domain

import "fmt"

// Order is the presentation policy of a sequence. The study runner resolves
// it at delivery time.
type Order string

const (
	OrderFixed       Order = "fixed"
	OrderRandom      Order = "random"
	OrderLatinSquare Order = "latinSquare"
	// OrderCustom draws NumSamples children.
	OrderCustom Order = "custom"
)

// Valid reports whether o is a known policy.
func (o Order) Valid() bool {
	switch o {
	case OrderFixed, OrderRandom, OrderLatinSquare, OrderCustom:
		return true
	}
	return false
}

// ValidateOrder checks a policy together with its sample count.
// A zero count means "all children".
func ValidateOrder(o Order, numSamples int) error {
	if !o.Valid() {
		return &ValidationError{
			Entity: "sequence",
			Field:  "order",
			Msg:    fmt.Sprintf("unknown order %q, valid orders are [%s %s %s %s]", o, OrderFixed, OrderRandom, OrderLatinSquare, OrderCustom),
		}
	}
	if numSamples < 0 {
		return &ValidationError{Entity: "sequence", Field: "numSamples", Msg: "numSamples cannot be negative"}
	}
	if o == OrderCustom && numSamples == 0 {
		return &ValidationError{Entity: "sequence", Field: "numSamples", Msg: "custom order requires numSamples"}
	}
	return nil
}

package model

import "fmt"

// InvalidMeasurementError signals a missing or non-positive required body
// measurement. It is raised at the input boundary and surfaced to the caller.
type InvalidMeasurementError struct {
	Field string
	Value float64
}

func (e *InvalidMeasurementError) Error() string {
	return fmt.Sprintf("invalid measurement %s: %g (must be positive)", e.Field, e.Value)
}

// InvalidDimensionError signals a non-positive pattern dimension or bolt
// width passed to the efficiency evaluator.
type InvalidDimensionError struct {
	Dimension string
	Value     float64
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid dimension %s: %g (must be positive)", e.Dimension, e.Value)
}

// GeometryPreconditionError signals a caller contract violation on the
// pattern geometry builder, such as unequal facing curve extents that would
// produce a self-intersecting shape.
type GeometryPreconditionError struct {
	Reason string
}

func (e *GeometryPreconditionError) Error() string {
	return "geometry precondition violated: " + e.Reason
}

package state

import (
	"fmt"

	"InkBoard/internal/spline"
)

// ErrContractViolation is the umbrella for caller mistakes. It is the same
// value as spline.ErrContractViolation so one errors.Is check covers both.
var ErrContractViolation = spline.ErrContractViolation

var (
	ErrFinalized     = fmt.Errorf("%w: stroke is finalized", ErrContractViolation)
	ErrUnknownStroke = fmt.Errorf("%w: unknown stroke", ErrContractViolation)
	ErrStrokeExists  = fmt.Errorf("%w: stroke already exists", ErrContractViolation)
	ErrSourceBusy    = fmt.Errorf("%w: source already has an active stroke", ErrContractViolation)
	ErrInvalidConfig = fmt.Errorf("%w: invalid tessellation config", ErrContractViolation)
	ErrInvalidPoint  = fmt.Errorf("%w: point is not finite", ErrContractViolation)
)

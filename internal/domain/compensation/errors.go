package compensation

import "errors"

var (
	ErrInvalidSeniority = errors.New("invalid seniority level")
	ErrInvalidYear      = errors.New("invalid bonus year")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidPolicy    = errors.New("invalid weight policy")
	ErrUnknownProRata   = errors.New("unknown pro-rata policy")
	ErrUnknownWeighting = errors.New("unknown corporate weighting")
	ErrUnknownObjective = errors.New("unknown corporate objective type")
)

package calendar

import "errors"

var (
	ErrInvalidRange    = errors.New("start date is after end date")
	ErrUnknownFormula  = errors.New("unknown holiday formula")
	ErrLunarUnresolved = errors.New("lunar date could not be resolved for year")
)

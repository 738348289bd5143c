package models

import "errors"

// Sentinel errors of the pipeline. Callers distinguish bad input/config
// (ErrUnsupportedTimeframe — caller bug, do not retry blindly) from
// transient shortage of history (ErrInsufficientData / ErrInsufficientHistory —
// retry later once more candles exist).
var (
	ErrUnsupportedTimeframe = errors.New("unsupported timeframe")
	ErrInsufficientData     = errors.New("insufficient data")
	ErrInsufficientHistory  = errors.New("insufficient history")
)

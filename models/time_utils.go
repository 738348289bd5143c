package models

// Interval labels supported by the pipeline, mapped to minutes.
var intervalOptions = map[string]int{
	"1M":  1,
	"5M":  5,
	"15M": 15,
	"30M": 30,
	"1H":  60,
	"4H":  240,
	"1D":  1440,
	"1W":  10080,
	"3W":  21600,
}

// sortedIntervals lists all supported minute values in ascending order.
var sortedIntervals = []int{1, 5, 15, 30, 60, 240, 1440, 10080, 21600}

// IntervalMinutes returns the minute value for a label like "1H", or 0.
func IntervalMinutes(label string) int {
	return intervalOptions[label]
}

// IntervalLabel returns the label for a minute value, or "" if unsupported.
func IntervalLabel(minutes int) string {
	for label, m := range intervalOptions {
		if m == minutes {
			return label
		}
	}
	return ""
}

// SupportedIntervals returns all supported minute values in ascending order.
func SupportedIntervals() []int {
	out := make([]int, len(sortedIntervals))
	copy(out, sortedIntervals)
	return out
}

// NextInterval returns the next-higher supported interval in minutes.
// Уже на максимуме — возвращаем его же.
func NextInterval(minutes int) int {
	if minutes == sortedIntervals[len(sortedIntervals)-1] {
		return minutes
	}
	for _, m := range sortedIntervals {
		if m > minutes {
			return m
		}
	}
	return minutes
}

// PrevInterval returns the next-lower supported interval in minutes, or 0.
func PrevInterval(minutes int) int {
	prev := 0
	for _, m := range sortedIntervals {
		if m >= minutes {
			break
		}
		prev = m
	}
	return prev
}

package widget

import "strconv"

// Blower speed tiers.
const (
	SpeedLow    = "LOW"
	SpeedMedium = "MEDIUM"
	SpeedHigh   = "HIGH"
)

// BlowerSpeedLabel is the label shown above the blower slider.
func BlowerSpeedLabel(v float64) string {
	switch {
	case v >= 66:
		return SpeedHigh
	case v >= 33:
		return SpeedMedium
	default:
		return SpeedLow
	}
}

// BlowerSpeedStatus is the tier used by the monitoring status line. Its
// boundaries sit one unit above BlowerSpeedLabel's.
func BlowerSpeedStatus(v float64) string {
	switch {
	case v < 34:
		return SpeedLow
	case v < 67:
		return SpeedMedium
	default:
		return SpeedHigh
	}
}

// FormatValue prints v with no trailing zeros: 38 -> "38", 38.5 -> "38.5".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

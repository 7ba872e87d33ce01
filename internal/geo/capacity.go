package geo

import "math"

// Reference window for the capacity-driven marker scale. Capacities are
// log-normalized between the min and max references and mapped to the
// [MinCapacityScale, MaxCapacityScale] multiplier, so a 6-reactor complex
// reads larger than a research unit without drowning the view.
const (
	MinRefCapacityMW  = 100.0
	MaxRefCapacityMW  = 8000.0
	DefaultCapacityMW = 1000.0

	MinCapacityScale = 0.6
	MaxCapacityScale = 1.6
)

// CapacityScale maps a facility's net capacity in MW to a bounded visual
// size multiplier. A missing capacity (zero or negative) is treated as
// DefaultCapacityMW. Strictly increasing inside the reference window,
// constant outside it.
func CapacityScale(capacityMW float64) float64 {
	if capacityMW <= 0 {
		capacityMW = DefaultCapacityMW
	}
	if capacityMW < MinRefCapacityMW {
		capacityMW = MinRefCapacityMW
	} else if capacityMW > MaxRefCapacityMW {
		capacityMW = MaxRefCapacityMW
	}

	t := math.Log(capacityMW/MinRefCapacityMW) / math.Log(MaxRefCapacityMW/MinRefCapacityMW)
	return MinCapacityScale + t*(MaxCapacityScale-MinCapacityScale)
}

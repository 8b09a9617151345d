package panchang

// Observance is a tithi that is traditionally observed
type Observance string

const (
	Ekadashi Observance = "Ekadashi"
	Purnima  Observance = "Purnima"
	Amavasya Observance = "Amavasya"
)

// Observance reports the observance falling on this tithi, or "" for none.
// Ekadashi is the eleventh tithi of either paksha.
func (t Tithi) Observance() Observance {
	switch t.Number {
	case 11, 26:
		return Ekadashi
	case 15:
		return Purnima
	case 30:
		return Amavasya
	}
	return ""
}

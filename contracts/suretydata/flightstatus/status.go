package flightstatus

// Type is an enumeration for flight status codes reported by oracles.
type Type int

// Flight status codes.
const (
	Unknown       Type = 0
	OnTime        Type = 10
	LateAirline   Type = 20
	LateWeather   Type = 30
	LateTechnical Type = 40
	LateOther     Type = 50
)

// Step is a distance between adjacent status codes.
const Step = 10

// Count is a number of distinct status codes including Unknown.
const Count = 6

// IsFinal checks whether t is a status a flight can be finalized with.
func IsFinal(t Type) bool {
	return t == OnTime || t == LateAirline || t == LateWeather ||
		t == LateTechnical || t == LateOther
}

// Final returns all final statuses in ascending order.
func Final() []Type {
	return []Type{OnTime, LateAirline, LateWeather, LateTechnical, LateOther}
}

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case OnTime:
		return "OnTime"
	case LateAirline:
		return "LateAirline"
	case LateWeather:
		return "LateWeather"
	case LateTechnical:
		return "LateTechnical"
	case LateOther:
		return "LateOther"
	default:
		return "Invalid"
	}
}

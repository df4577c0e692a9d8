package airlinestate

// Type is an enumeration for airline participation states.
type Type int

// Airline states in the order of the registration lifecycle.
const (
	// Unregistered stands for unknown addresses.
	Unregistered Type = iota

	// Applied stands for candidates waiting for consensus of funded
	// airlines.
	Applied

	// Registered stands for airlines accepted into the trusted set that
	// have not paid the stake yet.
	Registered

	// Funded stands for airlines that paid the stake. Only funded
	// airlines may vote and register flights.
	Funded
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Unregistered:
		return "Unregistered"
	case Applied:
		return "Applied"
	case Registered:
		return "Registered"
	case Funded:
		return "Funded"
	default:
		return "Invalid"
	}
}

package domain

// Region is a Brazilian geographic macro-region
type Region string

const (
	RegionNorth       Region = "North"
	RegionNortheast   Region = "Northeast"
	RegionCentralWest Region = "Central-West"
	RegionSoutheast   Region = "Southeast"
	RegionSouth       Region = "South"
	RegionOther       Region = "Other"
)

// stateRegions maps two-letter state codes to their region. Read-only.
var stateRegions = map[string]Region{
	"AC": RegionNorth, "AM": RegionNorth, "AP": RegionNorth, "PA": RegionNorth,
	"RO": RegionNorth, "RR": RegionNorth, "TO": RegionNorth,

	"AL": RegionNortheast, "BA": RegionNortheast, "CE": RegionNortheast,
	"MA": RegionNortheast, "PB": RegionNortheast, "PE": RegionNortheast,
	"PI": RegionNortheast, "RN": RegionNortheast, "SE": RegionNortheast,

	"DF": RegionCentralWest, "GO": RegionCentralWest, "MT": RegionCentralWest, "MS": RegionCentralWest,

	"ES": RegionSoutheast, "MG": RegionSoutheast, "RJ": RegionSoutheast, "SP": RegionSoutheast,

	"PR": RegionSouth, "RS": RegionSouth, "SC": RegionSouth,
}

// RegionOf returns the region of a state code. Unknown codes map to RegionOther.
func RegionOf(state string) Region {
	if r, ok := stateRegions[state]; ok {
		return r
	}
	return RegionOther
}

// String implements fmt.Stringer
func (r Region) String() string {
	return string(r)
}

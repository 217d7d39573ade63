package card

import (
	"sort"
	"strconv"
)

// StateIIN maps a 6-digit issuer identification number range to the US state
// that issued the card and the PAN length that state uses. The table is
// static: loaded once, read-only afterward.
type StateIIN struct {
	State      string
	RangeStart int
	RangeEnd   int
	PANLength  int
}

func iin(state string, number string, panLength int) StateIIN {
	n, _ := strconv.Atoi(number)
	return StateIIN{State: state, RangeStart: n, RangeEnd: n, PANLength: panLength}
}

// stateIINs is the list of known EBT issuer numbers. North and South Dakota
// share 508132; North Dakota is kept first so lookups resolve to it.
var stateIINs = []StateIIN{
	iin("ALABAMA", "507680", 16),
	iin("ALASKA", "507695", 16),
	iin("ARIZONA", "507706", 16),
	iin("ARKANSAS", "610093", 16),
	iin("CALIFORNIA", "507719", 16),
	iin("COLORADO", "507681", 16),
	iin("CONNECTICUT", "600890", 18),
	iin("DELAWARE", "507713", 16),
	iin("DISTRICT_OF_COLUMBIA", "507707", 16),
	iin("FLORIDA", "508139", 16),
	iin("GEORGIA", "508148", 16),
	iin("GUAM", "578036", 16),
	iin("HAWAII", "507698", 16),
	iin("IDAHO", "507692", 16),
	iin("ILLINOIS", "601453", 19),
	iin("INDIANA", "507704", 16),
	iin("IOWA", "627485", 19),
	iin("KANSAS", "601413", 16),
	iin("KENTUCKY", "507709", 16),
	iin("LOUISIANA", "504476", 16),
	iin("MAINE", "507703", 19),
	iin("MARYLAND", "600528", 16),
	iin("MASSACHUSETTS", "600875", 18),
	iin("MICHIGAN", "507711", 16),
	iin("MINNESOTA", "610423", 16),
	iin("MISSISSIPPI", "507718", 16),
	iin("MISSOURI", "507683", 16),
	iin("MONTANA", "507714", 16),
	iin("NEBRASKA", "507716", 16),
	iin("NEVADA", "507715", 16),
	iin("NEW_HAMPSHIRE", "507701", 16),
	iin("NEW_JERSEY", "610434", 16),
	iin("NEW_MEXICO", "586616", 16),
	iin("NEW_YORK", "600486", 19),
	iin("NORTH_CAROLINA", "508161", 16),
	iin("NORTH_DAKOTA", "508132", 16),
	iin("OHIO", "507700", 16),
	iin("OKLAHOMA", "508147", 16),
	iin("OREGON", "507693", 16),
	iin("PENNSYLVANIA", "600760", 19),
	iin("RHODE_ISLAND", "507682", 16),
	iin("SOUTH_CAROLINA", "610470", 19),
	iin("SOUTH_DAKOTA", "508132", 16),
	iin("TENNESSEE", "507702", 16),
	iin("TEXAS", "610098", 19),
	iin("US_VIRGIN_ISLANDS", "507721", 16),
	iin("UTAH", "601036", 16),
	iin("VERMONT", "507705", 16),
	iin("VIRGINIA", "622044", 16),
	iin("WASHINGTON", "507710", 16),
	iin("WEST_VIRGINIA", "507720", 16),
	iin("WISCONSIN", "507708", 16),
	iin("WYOMING", "505349", 16),
}

// sortedIINs is stateIINs stably sorted by range start for binary search.
// Stable keeps North Dakota ahead of South Dakota on their shared number.
var sortedIINs = func() []StateIIN {
	s := make([]StateIIN, len(stateIINs))
	copy(s, stateIINs)
	sort.SliceStable(s, func(i, j int) bool { return s[i].RangeStart < s[j].RangeStart })
	return s
}()

// LookupIIN matches the first 6 digits of a PAN against the issuer table.
// It returns nil when fewer than 6 digits are present or no range contains
// the prefix.
func LookupIIN(digits string) *StateIIN {
	if len(digits) < 6 {
		return nil
	}
	prefix, err := strconv.Atoi(digits[:6])
	if err != nil {
		return nil
	}
	i := sort.Search(len(sortedIINs), func(i int) bool { return sortedIINs[i].RangeEnd >= prefix })
	if i < len(sortedIINs) && sortedIINs[i].RangeStart <= prefix {
		return &sortedIINs[i]
	}
	return nil
}

// StateIINs returns a copy of the issuer table, in its declaration order.
func StateIINs() []StateIIN {
	s := make([]StateIIN, len(stateIINs))
	copy(s, stateIINs)
	return s
}

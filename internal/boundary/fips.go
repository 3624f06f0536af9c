package boundary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// stateFIPS maps state and territory postal codes to two-digit FIPS codes.
var stateFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06", "CO": "08", "CT": "09",
	"DE": "10", "DC": "11", "FL": "12", "GA": "13", "HI": "15", "ID": "16", "IL": "17",
	"IN": "18", "IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23", "MD": "24",
	"MA": "25", "MI": "26", "MN": "27", "MS": "28", "MO": "29", "MT": "30", "NE": "31",
	"NV": "32", "NH": "33", "NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44", "SC": "45", "SD": "46",
	"TN": "47", "TX": "48", "UT": "49", "VT": "50", "VA": "51", "WA": "53", "WV": "54",
	"WI": "55", "WY": "56", "AS": "60", "GU": "66", "MP": "69", "PR": "72", "VI": "78",
}

// stateAbbr maps lower-cased state and territory names to postal codes.
var stateAbbr = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR", "california": "CA",
	"colorado": "CO", "connecticut": "CT", "delaware": "DE", "district of columbia": "DC",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY", "louisiana": "LA",
	"maine": "ME", "maryland": "MD", "massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK", "oregon": "OR",
	"pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT", "virginia": "VA",
	"washington": "WA", "west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
	"american samoa": "AS", "guam": "GU", "commonwealth of the northern mariana islands": "MP",
	"puerto rico": "PR", "united states virgin islands": "VI",
}

// canonicalID zero-pads whole-number IDs below 100, so a numeric STATEFP
// of 2 (or "2.0") reads as "02". Other IDs are returned trimmed.
func canonicalID(id string) string {
	id = strings.TrimSpace(id)
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || f != math.Trunc(f) || f < 0 || f >= 100 {
		return id
	}
	return fmt.Sprintf("%02d", int(f))
}

// lookupFIPS resolves a FIPS code from a postal code or a state name.
func lookupFIPS(name, abbr string) (string, bool) {
	if fips, ok := stateFIPS[strings.ToUpper(strings.TrimSpace(abbr))]; ok {
		return fips, true
	}
	if code, ok := stateAbbr[strings.ToLower(strings.TrimSpace(name))]; ok {
		return stateFIPS[code], true
	}
	return "", false
}

// resolveID picks a region's ID: the source ID when present, otherwise the
// FIPS code implied by its abbreviation or name, otherwise the name.
func resolveID(id, name, abbr string) string {
	if id = canonicalID(id); id != "" {
		return id
	}
	if fips, ok := lookupFIPS(name, abbr); ok {
		return fips
	}
	return strings.TrimSpace(name)
}

// excludedRegion applies the exclusion policy to the region's ID and, as a
// backstop for sources with non-FIPS IDs, to its name and abbreviation.
func excludedRegion(r Region) bool {
	if IsExcluded(canonicalID(r.ID)) {
		return true
	}
	fips, ok := lookupFIPS(r.Name, r.Abbr)
	return ok && IsExcluded(fips)
}

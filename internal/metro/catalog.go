package metro

// Metro is a target geography and the lowercase substrings that identify it in
// free-text locations.
type Metro struct {
	Name    string
	Aliases []string
}

// DefaultCatalog is the built-in metro table. Order matters: when a location
// matches several metros, the earliest one wins.
var DefaultCatalog = []Metro{
	{Name: "Chicago, IL", Aliases: []string{"chicago", "naperville", "oak park", "evanston", "schaumburg",
		"oak lawn", "elmhurst", "joliet", "aurora, il", "lincolnshire, il"}},
	{Name: "Cleveland, OH", Aliases: []string{"cleveland", "akron, oh", "akron, ohio"}},
	{Name: "Columbus, OH", Aliases: []string{"columbus, oh", "columbus, ohio"}},
	{Name: "Greenville, SC", Aliases: []string{"greenville, sc", "spartanburg, sc"}},
	{Name: "New York, NY", Aliases: []string{"new york", "nyc", "manhattan", "brooklyn", "queens",
		"long island", "newark, nj", "jersey city", "new hyde park"}},
	{Name: "Dallas, TX", Aliases: []string{"dallas", "fort worth", "dfw", "plano, tx", "irving, tx", "arlington, tx"}},
	{Name: "Austin, TX", Aliases: []string{"austin, tx", "austin, texas", "round rock, tx", "san marcos, tx"}},
	{Name: "Houston, TX", Aliases: []string{"houston", "sugar land", "the woodlands", "katy, tx"}},
	{Name: "Florida", Aliases: []string{"florida", "miami", "orlando", "tampa", "jacksonville, fl",
		"fort lauderdale", "tallahassee", "gainesville, fl", "ocala, fl",
		"st. petersburg", "sarasota"}},
	{Name: "Boston, MA", Aliases: []string{"boston", "cambridge, ma", "worcester, ma"}},
	{Name: "Philadelphia, PA", Aliases: []string{"philadelphia", "philly", "harrisburg, pa", "pittsburgh",
		"allentown, pa", "king of prussia"}},
}

// RemoteMarkers send a listing back to the metro it was queried under.
var RemoteMarkers = []string{"remote", "anywhere", "united states"}

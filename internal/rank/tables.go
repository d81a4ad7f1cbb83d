package rank

// HighRelevanceKeywords each add 10 when present in title, company or description.
var HighRelevanceKeywords = []string{
	"associate", "entry level", "entry-level", "junior", "trainee",
	"medical device", "med device", "surgical", "clinical sales",
	"orthopedic", "orthopaedic", "endoscopy", "cardiovascular",
	"spine", "trauma", "implant",
}

// MediumRelevanceKeywords each add 5.
var MediumRelevanceKeywords = []string{
	"medical sales", "clinical", "healthcare sales", "hospital",
	"territory", "field sales",
}

// TitleSignalKeywords add a flat bonus when any appears in the title.
var TitleSignalKeywords = []string{"associate", "entry", "junior"}

// StaffingMarkers identify recruiting farms by company name.
var StaffingMarkers = []string{"staffing", "recruiting", "placement"}

// KnownCompanies are medtech and medical-device employers, matched as
// substrings of the lower-cased company name. Some entries carry a trailing
// space ("bd ", "amo ") to avoid matching inside longer words.
var KnownCompanies = []string{
	// Big medtech / diversified
	"stryker", "medtronic", "johnson & johnson", "j&j", "johnson johnson",
	"abbott", "baxter", "becton dickinson", "bd ", "boston scientific",
	"ge healthcare", "siemens healthineers", "philips", "cardinal health",
	"edwards lifesciences", "danaher", "hologic",
	// Orthopedics / spine / trauma
	"arthrex", "zimmer biomet", "zimmer", "smith+nephew", "smith & nephew",
	"depuy", "synthes", "depuy synthes", "nuvasive", "globus medical",
	"alphatec", "orthofix", "wright medical", "exactech", "anika",
	"conformis", "medacta", "paragon 28", "treace",
	// Surgical / robotics
	"intuitive", "intuitive surgical", "mako", "mazor",
	"think surgical", "vicarious surgical",
	// Cardiovascular / interventional
	"edwards", "abiomed", "shockwave", "penumbra", "silk road medical",
	"teleflex", "merit medical", "cordis", "spectranetics", "aortica",
	"atricure", "cardiovascular systems", "inari medical",
	// Endoscopy / visualization
	"ambu", "karl storz", "olympus", "conmed", "artivion",
	"applied medical", "richard wolf",
	// Neuro / cranial
	"natus medical", "integra lifesciences", "integra", "nevro",
	"axonics", "nuvectra", "bioventus",
	// Wound care / tissue
	"acelity", "kinetic concepts", "solventum", "3m health",
	"mimedx", "organogenesis", "polynovo", "derma sciences",
	// Dental / ENT
	"align technology", "dentsply sirona", "dentsply", "envista",
	"straumann", "henry schein", "patterson",
	// Diabetes / monitoring
	"dexcom", "insulet", "tandem diabetes", "senseonics",
	"medela", "masimo",
	// Diagnostics / imaging
	"exact sciences", "caris life sciences",
	"guardant health", "natera", "veracyte",
	// General med / surgical supply
	"medline", "owens & minor", "molnlycke", "halyard",
	"icad", "haemonetics",
	// Ophthalmology
	"alcon", "bausch", "cooper surgical", "coopersurgical",
	"johnson vision", "amo ",
	// Contract / specialized
	"tela bio", "cirtec medical", "integer holdings",
	"natus", "cantel medical", "steris", "getinge",
	// Other notable
	"resmed", "hill-rom", "hillrom", "livanova", "bioatla",
	"procept biorobotics", "transmedics", "inspire medical",
	"acutus medical", "zynex medical", "surmodics",
	"repligen",
}

package model

// CategoryKeywords is the shared keyword table used by the finding
// extractor, the disclosure extractor, and the cross-reference matcher.
// Lookup order follows AllCategories; the first category with a keyword
// hit wins.
var CategoryKeywords = map[Category][]string{
	CategoryFoundation: {
		"foundation", "structural", "settlement", "settling", "beam", "joist",
		"slab", "crawl space", "crawlspace", "framing", "load-bearing",
		"load bearing", "pier", "footing", "sill plate", "retaining wall",
		"bowing", "subfloor",
	},
	CategoryRoof: {
		"roof", "shingle", "flashing", "gutter", "downspout", "siding",
		"soffit", "fascia", "chimney", "skylight", "eave", "exterior",
		"stucco", "trim", "window frame", "grading", "drainage",
	},
	CategoryPlumbing: {
		"plumbing", "pipe", "piping", "drain", "sewer", "water heater",
		"faucet", "supply line", "septic", "sump pump", "water pressure",
		"shutoff valve", "galvanized", "polybutylene", "toilet", "shower pan",
	},
	CategoryElectrical: {
		"electrical", "wiring", "panel", "breaker", "outlet", "receptacle",
		"gfci", "grounding", "circuit", "amperage", "knob-and-tube",
		"knob and tube", "aluminum wiring", "junction box", "service entrance",
	},
	CategoryHVAC: {
		"hvac", "furnace", "air conditioning", "air conditioner", "heat pump",
		"duct", "thermostat", "boiler", "ventilation", "condenser", "heating",
		"cooling", "compressor", "heat exchanger", "flue",
	},
	CategoryEnvironmental: {
		"mold", "radon", "asbestos", "lead paint", "lead-based paint", "pest",
		"termite", "mildew", "contamination", "oil tank", "infestation",
		"moisture intrusion", "wood-destroying", "rodent", "carbon monoxide",
	},
	CategoryLegal: {
		"permit", "unpermitted", "easement", "encroachment", "lien", "zoning",
		"title", "boundary", "setback", "code violation", "survey",
		"addition without", "variance",
	},
	CategoryInsurance: {
		"insurance", "insurability", "hoa", "homeowners association",
		"claim history", "insurance claim", "premium", "coverage",
		"special assessment", "flood zone",
	},
}

// DefaultCategory is assigned when no category keyword matches.
// Unclassifiable condition statements land in environmental, the
// broadest site/condition bucket.
const DefaultCategory = CategoryEnvironmental

// CategoryFor returns the first category whose keyword list matches the
// lowercased text, or DefaultCategory.
func CategoryFor(lower string) Category {
	for _, cat := range AllCategories {
		for _, kw := range CategoryKeywords[cat] {
			if containsWord(lower, kw) {
				return cat
			}
		}
	}
	return DefaultCategory
}

// containsWord reports whether kw occurs in lower as a whole word or
// phrase. Multi-word keywords match as substrings; single words require
// non-letter boundaries so "burn" never matches inside "burner".
func containsWord(lower, kw string) bool {
	idx := 0
	for {
		i := indexFrom(lower, kw, idx)
		if i < 0 {
			return false
		}
		beforeOK := i == 0 || !isWordByte(lower[i-1])
		after := i + len(kw)
		afterOK := after >= len(lower) || !isWordByte(lower[after])
		if beforeOK && afterOK {
			return true
		}
		idx = i + 1
	}
}

func indexFrom(s, sub string, from int) int {
	if from >= len(s) {
		return -1
	}
	for i := from; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

package extract

import "regexp"

// Rule is one named predicate in the classification pipeline. Rules are
// evaluated in order with early exit, and each rule is independently
// testable against literal sentences.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Match reports whether the rule fires on the sentence.
func (r Rule) Match(sentence string) bool {
	return r.Pattern.MatchString(sentence)
}

// firstMatch returns the name of the first rule that fires.
func firstMatch(rules []Rule, sentence string) (string, bool) {
	for _, r := range rules {
		if r.Match(sentence) {
			return r.Name, true
		}
	}
	return "", false
}

// NoiseRules filter out report scaffolding that can never be a finding:
// headers, captions, metadata, and maintenance-only language.
var NoiseRules = []Rule{
	{"report_header", regexp.MustCompile(`(?i)^(inspection report|report (number|no\.?|id)|prepared (for|by)|property address|client( name)?:|date of inspection|inspector:|license (no\.?|number))`)},
	{"photo_caption", regexp.MustCompile(`(?i)\b(photo|figure|image|picture)\s*#?\d+`)},
	{"report_metadata", regexp.MustCompile(`(?i)\b(table of contents|page \d+ of \d+|copyright|all rights reserved|confidential report)\b`)},
	{"section_header", regexp.MustCompile(`(?i)^\s*(section\s+\d+|scope of (the )?inspection|general (information|limitations)|definitions)\b`)},
	{"maintenance_only", regexp.MustCompile(`(?i)\b(routine|normal|regular|periodic|seasonal) (maintenance|servicing|cleaning)\b`)},
	{"boilerplate", regexp.MustCompile(`(?i)\b(this report is|the inspection was performed|standards of practice|pre-?inspection agreement)\b`)},
}

// PositiveRules catch explicit no-issue statements. All single-word
// negation stems are word-boundary anchored so "burner" is never read
// as "burn" and "restored" never as "rot".
var PositiveRules = []Rule{
	{"no_issues_found", regexp.MustCompile(`(?i)\bno (visible |apparent |significant |major |active )?(issues?|problems?|defects?|deficienc(y|ies)|concerns?|leaks?|damage|cracks?)\b`)},
	{"no_evidence_of", regexp.MustCompile(`(?i)\bno (evidence|signs?|indication) of\b`)},
	{"good_condition", regexp.MustCompile(`(?i)\b(appeared?|appears|was|were|is|are)( to be)?( in)? (good|satisfactory|serviceable|acceptable|sound|proper|normal) (condition|working order|operating condition|repair)\b`)},
	{"functioned_normally", regexp.MustCompile(`(?i)\b(functioned|operated|operating|functioning) (normally|properly|as (intended|designed|expected))\b`)},
	{"not_observed", regexp.MustCompile(`(?i)\b(was|were) not (observed|present|noted|found)\b`)},
	{"within_useful_life", regexp.MustCompile(`(?i)\bwithin (its|their) (expected|useful|normal) (service )?(life|lifespan)\b`)},
}

// ProblemRules detect genuine problem statements. A sentence that
// survives the noise and positive filters must fire one of these to
// become a finding.
var ProblemRules = []Rule{
	{"active_damage", regexp.MustCompile(`(?i)\b(leak(s|ing|ed)?|crack(s|ed|ing)?|damage(d)?|broken|burn(t|ed)?|scorch(ed)?|rot(ted|ting)?|rust(ed|ing)?|corro(ded|sion)|deteriorat(ed|ion|ing))\b`)},
	{"defect", regexp.MustCompile(`(?i)\b(defect(s|ive)?|deficien(t|cy|cies)|improper(ly)?|inadequate|incorrect(ly)?|amateur|substandard|not (functional|operational|working)|inoperable|failed?|failing|malfunction(s|ing)?)\b`)},
	{"hazard", regexp.MustCompile(`(?i)\b(hazard(s|ous)?|unsafe|danger(ous)?|safety (concern|issue|risk)|shock risk|fire risk|trip(ping)? hazard)\b`)},
	{"wear", regexp.MustCompile(`(?i)\b(worn|aging|aged|outdated|obsolete|end of (its |their )?(service )?life|past (its |their )?useful life|missing|loose|settl(ing|ed|ement))\b`)},
	{"contamination", regexp.MustCompile(`(?i)\b(mold|mildew|asbestos|radon|infestation|termite(s)?|wood-destroying|moisture (intrusion|present|staining)|water (intrusion|staining|penetration)|efflorescence)\b`)},
	{"action_needed", regexp.MustCompile(`(?i)\b(recommend(ed)? (repair|replacement|evaluation|further)|requires? (repair|replacement|attention|evaluation)|should be (repaired|replaced|evaluated|corrected)|needs? (repair|replacement|attention|to be))\b`)},
	{"violation", regexp.MustCompile(`(?i)\b(code violation|not (to|up to) code|unpermitted|without (a )?permit|violation(s)?|elevated (levels?|readings?)|exceeds?( the)? (limit|threshold|recommended))\b`)},
}

// severityRule maps an ordered keyword tier onto a severity. The first
// tier whose pattern fires wins.
type severityRule struct {
	Severity string
	Pattern  *regexp.Regexp
}

var severityRules = []severityRule{
	{"critical", regexp.MustCompile(`(?i)\b(immediate(ly)?|hazard(ous)?|danger(ous)?|unsafe|severe(ly)?|critical|collapse|failure|fire risk|health risk|do not (occupy|use)|major structural|imminent)\b`)},
	{"major", regexp.MustCompile(`(?i)\b(significant(ly)?|major|extensive(ly)?|substantial(ly)?|end of (its |their )?(service )?life|replacement (is )?(needed|required|recommended)|not functional|inoperable|widespread)\b`)},
	{"moderate", regexp.MustCompile(`(?i)\b(moderate(ly)?|repair(s)? (needed|required|recommended)|deteriorat(ed|ion|ing)|worn|aging|leak(s|ing)?|damage(d)?|corro(ded|sion)|defective)\b`)},
	{"minor", regexp.MustCompile(`(?i)\b(minor|cosmetic|small|slight(ly)?|touch-?up|monitor(ing)?|hairline)\b`)},
	{"informational", regexp.MustCompile(`(?i)\b(for (your )?information|typical (of|for) (the )?(age|homes)|common (in|for) homes|informational)\b`)},
}

// Safety and specialist flags are independent of severity tier.
var (
	safetyPattern     = regexp.MustCompile(`(?i)\b(safety|hazard(ous)?|shock|electrocution|fire risk|carbon monoxide|gas leak|trip(ping)? hazard|unsafe|scald)\b`)
	specialistPattern = regexp.MustCompile(`(?i)\b(specialist|structural engineer|licensed (electrician|plumber|contractor|professional)|qualified (contractor|professional|technician)|further evaluation|professional(ly)? evaluat)\b`)
)

// costRangePattern matches "$X to $Y" and "$X-$Y" (en dash tolerated).
var costRangePattern = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d+)?)\s*(?:to|-|–)\s*\$?\s*([\d,]+(?:\.\d+)?)`)

// locationPattern pulls a room/area out of "in/at/on the <room>".
var locationPattern = regexp.MustCompile(`(?i)\b(?:in|at|on)\s+the\s+([a-z][a-z0-9 ]{2,40}?)(?:\s+(?:area|wall|ceiling|floor))?(?:[,.;:]|\s+(?:was|were|is|are|has|have|shows?|and)\b|$)`)

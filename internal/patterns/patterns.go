// Package patterns holds the lexical cues used to classify claims and to find
// citation markers. Everything here is compiled once and read-only.
package patterns

import "regexp"

// Pattern is a named regular expression
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// Set is an ordered list of patterns
type Set []Pattern

// Match returns the name of the first pattern that matches text
func (s Set) Match(text string) (string, bool) {
	for _, p := range s {
		if p.Re.MatchString(text) {
			return p.Name, true
		}
	}
	return "", false
}

func named(name, expr string) Pattern {
	return Pattern{Name: name, Re: regexp.MustCompile(expr)}
}

// Statistical matches numeric evidence: percentages, money, counts, ratios
var Statistical = Set{
	named("percentage", `\d+(?:\.\d+)?\s?(?:%|percent\b|per cent\b)`),
	named("currency", `(?:[$€£]\s?\d[\d,]*(?:\.\d+)?|\b\d[\d,]*(?:\.\d+)?\s?(?:dollars|USD|EUR|GBP)\b)`),
	named("large_number", `(?i)\b\d+(?:\.\d+)?\s?(?:thousand|million|billion|trillion)\b`),
	named("count", `\b\d{1,3}(?:,\d{3})+\b`),
	named("ratio", `(?i)\b\d+\s+(?:out\s+of|in\s+every)\s+\d+\b`),
	named("multiplier", `(?i)(?:\b\d+(?:\.\d+)?x\b|\b(?:twice|three times|four times|double|triple)\s+(?:as|the)\b)`),
}

// Methodological matches process and approach vocabulary
var Methodological = Set{
	named("approach", `(?i)\b(?:methodology|methodologies|approach|framework|curriculum|intervention|protocol)\b`),
	named("process", `(?i)\b(?:we will (?:implement|use|apply|deliver|conduct|train|develop)|our (?:model|process|program|programme)|(?:pilot|evaluation|assessment) (?:phase|plan|design))\b`),
	named("design", `(?i)\b(?:randomi[sz]ed|control group|logic model|theory of change|mixed[- ]methods)\b`),
}

// Authority matches language that leans on an external source
var Authority = Set{
	named("according_to", `(?i)\baccording to\b`),
	named("research_shows", `(?i)\b(?:research|studies|evidence|data|literature)\s+(?:shows?|suggests?|indicates?|demonstrates?|confirms?|found|finds)\b`),
	named("study_found", `(?i)\b(?:a|one|the|recent)\s+(?:study|survey|report|analysis|evaluation)\s+(?:by|from|found|shows|showed|reported)\b`),
	named("published", `(?i)\b(?:published|reported)\s+(?:in|by)\b`),
	named("census", `(?i)\b(?:census|bureau of|department of|ministry of|world health organization|OECD|UNESCO)\b`),
}

// Opinion matches belief and aspiration vocabulary
var Opinion = Set{
	named("belief", `(?i)\b(?:we|i)\s+(?:believe|think|feel|hope|expect|envision)\b`),
	named("view", `(?i)\b(?:in our (?:view|opinion|experience)|it is (?:important|essential|critical|vital))\b`),
	named("hedge", `(?i)\b(?:perhaps|likely|arguably|probably|ideally)\b`),
	named("normative", `(?i)\b(?:should|ought to)\b`),
}

// DataBearing marks factual claims that carry checkable data
var DataBearing = Set{
	named("digit", `\d`),
	named("data_term", `(?i)\b(?:data|study|studies|research|evidence|findings|survey|report|census|statistics|statistically|rate|percentage|average|median)\b`),
}

// Outcome marks methodological claims asserting a proven result
var Outcome = Set{
	named("proven", `(?i)\b(?:proven|evidence[- ]based|research[- ]based|effective|efficacy|shown to|demonstrated|validated)\b`),
	named("result", `(?i)\b(?:improves?|improved|reduces?|reduced|increases?|increased|successful(?:ly)?)\b`),
}

// Citation marker patterns in application order. Earlier patterns win when
// spans overlap.
var (
	// (Smith, 2020), (Smith et al., 2020, p. 4), (City Health Dept. 2021)
	ParentheticalYear = regexp.MustCompile(`\([^()]*?\b(?:1[89]|20)\d{2}[a-z]?\b[^()]*\)`)

	// [1], [1, 3], [2-4]
	BracketNumeric = regexp.MustCompile(`\[\s*\d+(?:\s*[,\-–]\s*\d+)*\s*\]`)

	// [Impact Report 2023], [Source: Annual Review]
	BracketReference = regexp.MustCompile(`\[[A-Za-z][^\[\]]{1,120}\]`)

	// (see Appendix B), (see the 2022 audit)
	SeeReference = regexp.MustCompile(`(?i)\(\s*see\s+[^()]+\)`)

	// (cf. Jones)
	CfReference = regexp.MustCompile(`(?i)\(\s*cf\.\s*[^()]+\)`)

	// "quoted text" (Source) or "quoted text," said the Source / according to Source
	QuotedSource = regexp.MustCompile(`["“][^"”]{3,300}["”]\s*(?:\([^()]+\)|,?\s*(?:according to|as stated by|said|wrote|notes?)\s+[A-Z][\w.&\- ]{1,80})`)

	// as noted in the 2022 Annual Report
	AsNotedIn = regexp.MustCompile(`(?i)\bas (?:noted|reported|described|documented|shown|stated) (?:in|by)\s+[^.;,]{2,120}`)

	// OnlyDigits matches bracket contents made only of numbers and separators
	OnlyDigits = regexp.MustCompile(`^\[\s*\d+(?:\s*[,\-–]\s*\d+)*\s*\]$`)

	// FourDigitYear finds a plausible publication year
	FourDigitYear = regexp.MustCompile(`\b(?:1[89]|20)\d{2}\b`)
)

// CitationMarkers lists the marker patterns in priority order
var CitationMarkers = []Pattern{
	{Name: "parenthetical_year", Re: ParentheticalYear},
	{Name: "bracket_numeric", Re: BracketNumeric},
	{Name: "bracket_reference", Re: BracketReference},
	{Name: "see", Re: SeeReference},
	{Name: "cf", Re: CfReference},
	{Name: "quoted_source", Re: QuotedSource},
	{Name: "as_noted_in", Re: AsNotedIn},
}

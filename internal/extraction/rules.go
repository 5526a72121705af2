package extraction

// DefaultRules returns the built-in rule-sets. Apostrophes accept both the
// ASCII and the typographic form.
func DefaultRules() []Rule {
	return []Rule{
		// Corrections
		{Name: "negation", Category: CategoryCorrection, Pattern: `(?i)\b(no,?\s|nope|don['’]t|do not|wrong|incorrect|that['’]s not right|instead|rather|actually)\b`},
		{Name: "i_meant", Category: CategoryCorrection, Pattern: `(?i)\bi meant\b`},
		{Name: "what_i_wanted", Category: CategoryCorrection, Pattern: `(?i)\bwhat i wanted\b`},
		{Name: "please_change", Category: CategoryCorrection, Pattern: `(?i)\bplease (change|fix|update|correct)\b`},
		{Name: "can_you_change", Category: CategoryCorrection, Pattern: `(?i)\bcan you (change|fix|redo|correct)\b`},
		{Name: "not_what_i", Category: CategoryCorrection, Pattern: `(?i)\bnot what i\b`},
		{Name: "thats_wrong", Category: CategoryCorrection, Pattern: `(?i)\bthat['’]s wrong\b`},
		{Name: "should_be_not", Category: CategoryCorrection, Pattern: `(?i)\bshould be\b.*\bnot\b`},
		{Name: "never_do", Category: CategoryCorrection, Pattern: `(?i)\bnever\s+(do|use|add)\b`},

		// Preferences
		{Name: "i_prefer", Category: CategoryPreference, Pattern: `(?i)\bi (prefer|like to|always|never|want to)\b`},
		{Name: "we_always", Category: CategoryPreference, Pattern: `(?i)\bwe (always|never|usually|typically)\b`},
		{Name: "our_convention", Category: CategoryPreference, Pattern: `(?i)\bour (convention|standard|approach|pattern)\b`},
		{Name: "use_instead", Category: CategoryPreference, Pattern: `(?i)\bdon['’]t use .+ use .+ instead\b`},
		{Name: "always_use", Category: CategoryPreference, Pattern: `(?i)\balways use\b`},
		{Name: "should_always", Category: CategoryPreference, Pattern: `(?i)\bshould always\b`},
		{Name: "make_sure", Category: CategoryPreference, Pattern: `(?i)\bmake sure (to|you)\b`},

		// Approvals
		{Name: "affirmation", Category: CategoryApproval, Pattern: `(?i)\b(yes|perfect|exactly|correct|right|thanks|great|good|nice|awesome|excellent)\b`},
		{Name: "thats_right", Category: CategoryApproval, Pattern: `(?i)\bthat['’]s (right|correct|what i wanted|exactly what)\b`},
		{Name: "works_great", Category: CategoryApproval, Pattern: `(?i)\bworks (great|perfectly|well)\b`},
		{Name: "looks_good", Category: CategoryApproval, Pattern: `(?i)\blooks good\b`},
		{Name: "well_done", Category: CategoryApproval, Pattern: `(?i)\bwell done\b`},
	}
}

// Package classify assigns a case category from the issue description.
package classify

import "strings"

const (
	CategoryComplaint = "Complaint"
	CategoryService   = "Service Appointment"
)

type rule struct {
	category string
	keywords []string
}

// Rules are evaluated in order: the first category with any keyword match
// wins, so complaint keywords take precedence over service keywords.
var rules = []rule{
	{
		category: CategoryComplaint,
		keywords: []string{
			"complaint", "complain", "refund", "replace", "replacement",
			"damaged", "broken", "defective", "rude", "escalate",
			"poor service", "cheated", "not satisfied", "worst",
		},
	},
	{
		category: CategoryService,
		keywords: []string{
			"not working", "not cooling", "repair", "service", "servicing",
			"installation", "install", "maintenance", "leak", "noise",
			"breakdown", "demo", "visit",
		},
	},
}

// Category matches the description, case-insensitively, against the rule
// table. No match (and an empty description) defaults to the service
// category.
func Category(issueDesc string) string {
	desc := strings.ToLower(issueDesc)
	if desc == "" {
		return CategoryService
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				return r.category
			}
		}
	}
	return CategoryService
}

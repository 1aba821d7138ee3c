package types

// CaseRecord is the payload posted to the Salesforce case service. The field
// names (including the "call_druation" misspelling) are fixed by the Apex
// service, which pattern-matches on them. Do not rename.
type CaseRecord struct {
	Subject       string `json:"subject"`
	Operation     string `json:"operation"`
	UserName      string `json:"user_name"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	Pincode       string `json:"pincode"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	IssueDesc     string `json:"issuedesc"`
	FullAddress   string `json:"fulladdress"`
	RecordingLink string `json:"recording_link"`
	Transcript    string `json:"transcript"`
	CallDuration  string `json:"call_druation"`
	Sentiment     string `json:"sentiment"`
	Origin        string `json:"origin"`
	Priority      string `json:"priority"`
	Feedback      string `json:"feedback"`
	Rate          string `json:"rate"`
}

// Enrichment is the translation + sentiment pair produced for a transcript.
type Enrichment struct {
	TranslatedText string `json:"translatedText"`
	Sentiment      string `json:"sentiment"`
}

// CaseResult carries the fields the case service responds with, plus the raw
// body so the webhook response can pass it through untouched.
type CaseResult struct {
	ID         string `json:"id"`
	CaseNumber string `json:"caseNumber"`
	Email      string `json:"email"`
	Raw        []byte `json:"-"`
}

// Reference builds the human-facing case identifier shown to the customer.
func (r CaseResult) Reference() string {
	if r.CaseNumber != "" {
		return "SR-" + r.CaseNumber
	}
	return r.ID
}

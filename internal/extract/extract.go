// Package extract pulls the fixed field set out of the free-form webhook
// payload the telephony platform posts after a call.
package extract

import "fmt"

// ValidationError marks a payload the handler must reject with 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload: %s", e.Reason)
}

// Payload is the inbound webhook body. extracted_data and telephony_data are
// free-form: the extraction step upstream is not consistent about key names,
// so no schema is enforced beyond extracted_data being present.
type Payload struct {
	ExtractedData map[string]any `json:"extracted_data"`
	TelephonyData map[string]any `json:"telephony_data"`
	Transcript    string         `json:"transcript"`
	Duration      any            `json:"conversation_duration"`
}

// Fields is the extracted field set, pre-normalization. Every member is a
// plain string ("" when no fallback key matched) so the case record never
// carries a null downstream.
type Fields struct {
	Name       string
	Mobile     string
	Pincode    string
	VisitDate  string
	IssueDesc  string
	Address    string
	Rating     string
	Feedback   string
	Email      string
	Recording  string
	Transcript string
	Duration   any
}

// Fallback chains, primary key first. The upstream extractor has shipped all
// of these spellings at one time or another.
var fieldKeys = map[string][]string{
	"name":      {"user_name", "name", "customer_name"},
	"mobile":    {"mobile", "Mobile", "phone_number", "phone"},
	"pincode":   {"pincode", "pin_code", "Pincode"},
	"visitDate": {"technician_visit_date", "visit_date", "preferred_date"},
	"issueDesc": {"issuedesc", "issue_desc", "issue_description"},
	"address":   {"fulladdress", "full_address", "address"},
	"rating":    {"rate", "rating"},
	"feedback":  {"feedback", "customer_feedback"},
	"email":     {"email", "Email", "email_id"},
}

var recordingKeys = []string{"recording_url", "recording_link"}

// FromPayload resolves every field's fallback chain against extracted_data.
// It fails only when extracted_data itself is absent or empty; individual
// fields default to "".
func FromPayload(p Payload) (Fields, error) {
	if len(p.ExtractedData) == 0 {
		return Fields{}, &ValidationError{Reason: "extracted_data is missing or empty"}
	}

	f := Fields{
		Name:       firstString(p.ExtractedData, fieldKeys["name"]),
		Mobile:     firstString(p.ExtractedData, fieldKeys["mobile"]),
		Pincode:    firstString(p.ExtractedData, fieldKeys["pincode"]),
		VisitDate:  firstString(p.ExtractedData, fieldKeys["visitDate"]),
		IssueDesc:  firstString(p.ExtractedData, fieldKeys["issueDesc"]),
		Address:    firstString(p.ExtractedData, fieldKeys["address"]),
		Rating:     firstString(p.ExtractedData, fieldKeys["rating"]),
		Feedback:   firstString(p.ExtractedData, fieldKeys["feedback"]),
		Email:      firstString(p.ExtractedData, fieldKeys["email"]),
		Recording:  firstString(p.TelephonyData, recordingKeys),
		Transcript: p.Transcript,
		Duration:   p.Duration,
	}
	return f, nil
}

// firstString returns the first chain key present in m, stringified.
// Numbers arrive as float64 from encoding/json; ratings and pincodes often
// come through that way.
func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			// trim the trailing .0 encoding/json gives integers
			if t == float64(int64(t)) {
				return fmt.Sprintf("%d", int64(t))
			}
			return fmt.Sprintf("%v", t)
		default:
			return fmt.Sprintf("%v", t)
		}
	}
	return ""
}

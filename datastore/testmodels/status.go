package testmodels

import "github.com/go-openapi/strfmt"

type Status struct {

	// Unique identifier for the status.
	// Required: true
	ID *string `json:"Id" dynamodbav:"Id"`

	// Display name of the status.
	Name *string `json:"Name,omitempty" dynamodbav:"Name,omitempty"`

	// Short code, e.g. "CA".
	Abbreviation string `json:"Abbreviation,omitempty" dynamodbav:"Abbreviation,omitempty"`

	// A description of the status.
	Description *string `json:"Description,omitempty" dynamodbav:"Description,omitempty"`

	// Timestamp when the status was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt,omitempty" dynamodbav:"CreatedAt,omitempty"`
}

// Attribute implements datastore.Attributer.
func (s *Status) Attribute(name string) (string, bool) {
	switch name {
	case "id":
		return deref(s.ID)
	case "name":
		return deref(s.Name)
	case "abbreviation":
		return s.Abbreviation, s.Abbreviation != ""
	case "description":
		return deref(s.Description)
	case "created_at":
		if s.CreatedAt == nil {
			return "", false
		}
		return s.CreatedAt.String(), true
	}
	return "", false
}

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// PartyType is the legal nature of a registered party.
type PartyType string

const (
	PartyPerson       PartyType = "Person"
	PartyOrganization PartyType = "Organization"
)

// Party is a registry entry for an acting party.
type Party struct {
	UUID      uuid.UUID
	Type      PartyType
	SSN       string
	OrgNumber string
}

// EndUserID builds the typed end-user identifier used towards the dialog
// service: "person:<ssn>" or "organization:<org-number>".
func (p Party) EndUserID() (string, error) {
	switch p.Type {
	case PartyPerson:
		return fmt.Sprintf("person:%s", p.SSN), nil
	case PartyOrganization:
		return fmt.Sprintf("organization:%s", p.OrgNumber), nil
	default:
		return "", fmt.Errorf("unsupported party type %q for party %s", p.Type, p.UUID)
	}
}

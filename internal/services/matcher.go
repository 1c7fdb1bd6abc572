package services

import (
	"strings"

	"fx_agenda_backend/internal/models"
)

// NewClientOption is the selection sentinel meaning "start a blank form";
// resolving it yields no client record.
const NewClientOption = "-- Cliente nuevo --"

// ClientMatch pairs a client with its display label. The label is both the
// matching key and the value shown to the operator.
type ClientMatch struct {
	Label  string        `json:"label"`
	Client models.Client `json:"client"`
}

// ClientMatcher drives the client search box and its autocomplete list.
//
// Matching policy: case-insensitive substring. The two historical variants of
// the search disagreed (prefix vs. contains); contains is the superset and is
// applied uniformly here. An empty or whitespace-only query returns the full
// list, and an exact label match returns only that client.
type ClientMatcher interface {
	Label(client *models.Client) string
	Match(clients []models.Client, query string) []ClientMatch
	Resolve(clients []models.Client, label string) *models.Client
}

type clientMatcher struct{}

// NewClientMatcher creates a new instance of ClientMatcher.
func NewClientMatcher() ClientMatcher {
	return &clientMatcher{}
}

// Label builds the display label: business name alone, contact name alone, or
// "business (contact)" when both are present.
func (m *clientMatcher) Label(client *models.Client) string {
	businessName := ""
	if client.BusinessName != nil {
		businessName = *client.BusinessName
	}

	switch {
	case businessName == "":
		return client.Name
	case client.Name == "":
		return businessName
	default:
		return businessName + " (" + client.Name + ")"
	}
}

func (m *clientMatcher) Match(clients []models.Client, query string) []ClientMatch {
	query = strings.TrimSpace(query)

	matches := []ClientMatch{}
	if query == "" {
		for _, client := range clients {
			matches = append(matches, ClientMatch{Label: m.Label(&client), Client: client})
		}
		return matches
	}

	// An exact label hit is a direct selection, independent of the scan.
	for _, client := range clients {
		label := m.Label(&client)
		if strings.EqualFold(label, query) {
			return []ClientMatch{{Label: label, Client: client}}
		}
	}

	lowerQuery := strings.ToLower(query)
	for _, client := range clients {
		label := m.Label(&client)
		if strings.Contains(strings.ToLower(label), lowerQuery) {
			matches = append(matches, ClientMatch{Label: label, Client: client})
		}
	}
	return matches
}

// Resolve maps a selected label back to its full client record so the caller
// can pre-populate an edit form. The new-client sentinel (and a blank label)
// resolve to nil: the form starts empty.
func (m *clientMatcher) Resolve(clients []models.Client, label string) *models.Client {
	if label == "" || label == NewClientOption {
		return nil
	}
	for i := range clients {
		if m.Label(&clients[i]) == label {
			return &clients[i]
		}
	}
	return nil
}

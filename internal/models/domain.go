package models

import "fmt"

// StatusUnclassified is the sentinel histogram category that absorbs
// missing or unrecognized status values. It is not a valid status to set.
const StatusUnclassified = "Unclassified"

// Domain describes one service domain: its collection, its fixed status
// vocabulary and the staff role allowed on its triage routes. The per-domain
// dashboards and list views are all driven by these descriptors instead of
// being duplicated per service.
type Domain struct {
	// Slug is the URL segment identifying the domain ("legal-aid", ...).
	Slug string
	// Title is the human-readable service name used in notifications.
	Title string
	// Collection is the Firestore collection holding the submissions.
	Collection string
	// InitialStatus is assigned to every new submission.
	InitialStatus string
	// Statuses is the ordered status vocabulary. The histogram renders
	// these categories in order, plus StatusUnclassified last.
	Statuses []string
	// StaffRole is allowed on this domain's triage routes besides admin.
	StaffRole string
	// AllowAnonymous marks domains where the citizen may opt out of
	// attaching identity.
	AllowAnonymous bool
	// RequiredFields must be present and non-empty in the form payload.
	RequiredFields []string
}

// ValidStatus reports whether s belongs to the domain's vocabulary.
func (d *Domain) ValidStatus(s string) bool {
	for _, v := range d.Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Domains lists every service domain, in presentation order.
var Domains = []*Domain{
	{
		Slug:           "consumer-protection",
		Title:          "Consumer Protection",
		Collection:     "consumer-complaints",
		InitialStatus:  "Open",
		Statuses:       []string{"Open", "Under Review", "Pending", "In Negotiation", "Finalized"},
		StaffRole:      RoleConsumer,
		RequiredFields: []string{"subject", "description", "companyName"},
	},
	{
		Slug:           "legal-aid",
		Title:          "Legal Aid",
		Collection:     "legal-aid-requests",
		InitialStatus:  "Awaiting Service",
		Statuses:       []string{"Awaiting Service", "Under Review", "Completed"},
		StaffRole:      RoleLegal,
		RequiredFields: []string{"subject", "description", "incidentDate"},
	},
	{
		Slug:           "citizen-counter",
		Title:          "Citizen Counter",
		Collection:     "citizen-counter-requests",
		InitialStatus:  "Awaiting Service",
		Statuses:       []string{"Awaiting Service", "Under Review", "Completed"},
		StaffRole:      RoleCounter,
		RequiredFields: []string{"subject", "description"},
	},
	{
		Slug:           "ombudsman",
		Title:          "Ombudsman",
		Collection:     "ombudsman-manifestations",
		InitialStatus:  "Received",
		Statuses:       []string{"Received", "Under Review", "Answered", "Forwarded"},
		StaffRole:      RoleOmbudsman,
		AllowAnonymous: true,
		RequiredFields: []string{"category", "description"},
	},
	{
		Slug:           "womens-advocacy",
		Title:          "Women's Advocacy",
		Collection:     "womens-advocacy-requests",
		InitialStatus:  "Received",
		Statuses:       []string{"Received", "In Care", "Forwarded", "Concluded"},
		StaffRole:      RoleAdvocacy,
		AllowAnonymous: true,
		RequiredFields: []string{"description"},
	},
	{
		Slug:           "council-member",
		Title:          "Council Member Appointments",
		Collection:     "council-member-requests",
		InitialStatus:  "Awaiting Confirmation",
		Statuses:       []string{"Awaiting Confirmation", "Scheduled", "Completed", "Canceled"},
		StaffRole:      RoleCouncil,
		RequiredFields: []string{"councilMember", "subject", "requestedDate"},
	},
}

// DomainBySlug resolves a URL slug to its descriptor.
func DomainBySlug(slug string) (*Domain, error) {
	for _, d := range Domains {
		if d.Slug == slug {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unknown service domain %q", slug)
}

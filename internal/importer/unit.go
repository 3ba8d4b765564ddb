package importer

import "github.com/hibbslab/prepdeck/internal/session"

// slideUnit is the transient record one structural unit (slide, HTML
// section, or text block) is parsed into before aggregation. List
// fields are appended to and ranged over directly; a unit with no data
// simply has empty lists.
type slideUnit struct {
	index int

	title        string
	subtitle     string
	heading      string
	sectionLabel string
	date         string

	contentText string

	stats       []session.Stat
	cards       []card
	steps       []step
	teamMembers []teamMember
	budgetItems []budgetItem

	isDark bool
}

// card is a discrete feature/deliverable callout.
type card struct {
	title  string
	detail string
	tag    string
}

// step is a sequenced milestone.
type step struct {
	title  string
	detail string
	timing string
}

type teamMember struct {
	name  string
	role  string
	badge string
}

type budgetItem struct {
	label  string
	amount string
}

// name returns the unit's authoritative heading: the section label wins,
// then the h2-derived heading.
func (u *slideUnit) name() string {
	if u.heading != "" {
		return u.heading
	}
	return u.sectionLabel
}

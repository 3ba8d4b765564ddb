package importer

import (
	"fmt"
	"strings"

	"github.com/hibbslab/prepdeck/internal/session"
)

// budgetLabelKeywords mark itemized costs that should not appear in the
// headline stats banner.
var budgetLabelKeywords = []string{"personnel", "conference", "fringe", "panel event", "data ("}

// aggregate merges per-slide units into a whole-document session and
// runs classification and synthesis over the result.
func aggregate(units []*slideUnit) *session.Session {
	sess := session.New()

	// Title info comes from the first unit only.
	if len(units) > 0 {
		sess.Title = units[0].title
		sess.Subtitle = units[0].subtitle
		sess.Date = units[0].date
	}

	// Classify from all slide content, not just the title.
	var corpusParts []string
	for _, u := range units {
		corpusParts = append(corpusParts, u.title, u.subtitle, u.heading, u.contentText)
	}
	sess.Type = classify(strings.ToLower(strings.Join(corpusParts, " ")))

	for i, u := range units {
		// Headline stats from any slide, minus budget line items.
		for _, st := range u.stats {
			if !isBudgetLineItem(st) {
				sess.StatsBanner = append(sess.StatsBanner, st)
			}
		}

		// Talking points from substantive slides past the title slide.
		if i > 0 && u.heading != "" && u.contentText != "" {
			if tp := unitTalkingPoint(u); tp != nil {
				sess.TalkingPoints = append(sess.TalkingPoints, *tp)
			}
		}

		if len(u.cards) > 0 {
			title := u.heading
			if title == "" {
				title = fmt.Sprintf("Slide %d", i+1)
			}
			items := make([][]string, 0, len(u.cards))
			for _, c := range u.cards {
				items = append(items, []string{c.title, c.detail})
			}
			sess.CheatsheetCards = append(sess.CheatsheetCards, session.CheatsheetCard{
				Icon:  iconForHeading(u.heading),
				Title: title,
				Items: items,
			})
		}
	}

	sess.StatsBanner = dedupeStats(sess.StatsBanner)

	sess.KeyMessages = keyMessages(sess)
	sess.PracticeQuestions = practiceQuestions(sess)
	sess.Tips = tips(sess)

	if sess.Type == session.TypePitch {
		pv := pitchVariants(sess)
		sess.PitchVariants = &pv
		sess.Objections = []string{}
	}

	sess.Format = fmt.Sprintf("Presentation (%d slides)", len(units))
	return sess
}

// isBudgetLineItem reports whether a stat is an itemized cost: a
// currency value whose label names a budget line, not a headline total.
func isBudgetLineItem(st session.Stat) bool {
	if !strings.HasPrefix(strings.TrimSpace(st.Value), "$") {
		return false
	}
	label := strings.ToLower(st.Label)
	for _, kw := range budgetLabelKeywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

// dedupeStats collapses entries with identical value strings, keeping
// first-occurrence order.
func dedupeStats(stats []session.Stat) []session.Stat {
	seen := make(map[string]bool, len(stats))
	unique := make([]session.Stat, 0, len(stats))
	for _, st := range stats {
		key := strings.TrimSpace(st.Value)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, st)
	}
	return unique
}

// unitTalkingPoint converts a parsed slide into a talking point, or nil
// when the slide yields no note content at all.
func unitTalkingPoint(u *slideUnit) *session.TalkingPoint {
	heading := u.name()
	if heading == "" {
		return nil
	}

	var parts []string

	if u.sectionLabel != "" {
		parts = append(parts, "<p><strong>"+u.sectionLabel+"</strong></p>")
	}

	for _, st := range u.stats {
		parts = append(parts, `<p><span class="key-stat">`+st.Value+`</span> — `+st.Label+"</p>")
	}

	for _, s := range u.steps {
		line := "<p><strong>" + s.title + "</strong>: " + s.detail
		if s.timing != "" {
			line += " <em>(" + s.timing + ")</em>"
		}
		parts = append(parts, line+"</p>")
	}

	if len(u.cards) > 0 {
		var items strings.Builder
		for _, c := range u.cards {
			items.WriteString("<li><strong>" + c.title + "</strong>: " + c.detail + "</li>")
		}
		parts = append(parts, "<ul>"+items.String()+"</ul>")
	}

	for _, tm := range u.teamMembers {
		line := `<p><span class="key-stat">` + tm.name + `</span> — ` + tm.role
		if tm.badge != "" {
			line += " (" + tm.badge + ")"
		}
		parts = append(parts, line+"</p>")
	}

	if len(u.budgetItems) > 0 {
		var items strings.Builder
		for _, b := range u.budgetItems {
			items.WriteString("<li>" + b.label + ": <strong>" + b.amount + "</strong></li>")
		}
		parts = append(parts, "<p><strong>Budget Breakdown:</strong></p><ul>"+items.String()+"</ul>")
	}

	// Raw content only when no structured content exists.
	if len(parts) == 0 && u.contentText != "" {
		parts = append(parts, "<p>"+truncate(u.contentText, 500)+"</p>")
	}

	if len(parts) == 0 {
		return nil
	}

	return &session.TalkingPoint{
		ID:       slugify(heading),
		Label:    heading,
		Number:   fmt.Sprintf("Slide %d", u.index+1),
		Timing:   "~1-2 min",
		Question: "Tell me about: " + heading,
		Note:     strings.Join(parts, "\n"),
		Source:   "Imported from presentation",
		TipDo:    "Lead with the key insight from this section.",
		TipDont:  "Don't read slides verbatim — speak naturally.",
	}
}

// keyMessages derives the headline messages: every banner stat, then the
// labels of the first five talking points.
func keyMessages(sess *session.Session) []string {
	msgs := []string{}
	for _, st := range sess.StatsBanner {
		msgs = append(msgs, st.Value+" — "+st.Label)
	}
	for i, tp := range sess.TalkingPoints {
		if i >= 5 {
			break
		}
		if tp.Label != "" {
			msgs = append(msgs, tp.Label)
		}
	}
	return msgs
}

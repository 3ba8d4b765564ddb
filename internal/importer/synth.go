package importer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/hibbslab/prepdeck/internal/session"
)

// practiceQuestions synthesizes rehearsal questions: an overview
// question, a stats question when stats exist, one per talking point,
// and a closing impact question. Questions whose points are all blank
// are dropped at the end.
func practiceQuestions(sess *session.Session) []session.PracticeQuestion {
	var questions []session.PracticeQuestion

	questions = append(questions, session.PracticeQuestion{
		Question: "In one sentence, what is this presentation about?",
		Points:   []string{sess.Title, sess.Subtitle},
	})

	if len(sess.StatsBanner) > 0 {
		points := []string{}
		for i, st := range sess.StatsBanner {
			if i >= 6 {
				break
			}
			points = append(points, st.Value+" — "+st.Label)
		}
		questions = append(questions, session.PracticeQuestion{
			Question: "What are the key statistics that support your argument?",
			Points:   points,
		})
	}

	for _, tp := range sess.TalkingPoints {
		if tp.Label == "" {
			continue
		}
		q := tp.Question
		if q == "" {
			q = "Explain the section on: " + tp.Label
		}
		questions = append(questions, session.PracticeQuestion{
			Question: q,
			Points:   extractNotePoints(tp.Note),
		})
	}

	impact := []string{}
	for i, msg := range sess.KeyMessages {
		if i >= 4 {
			break
		}
		impact = append(impact, "Key message: "+msg)
	}
	questions = append(questions, session.PracticeQuestion{
		Question: "What is the broader impact or next step?",
		Points:   impact,
	})

	// The filter runs last, over every generated question.
	kept := []session.PracticeQuestion{}
	for _, q := range questions {
		if hasNonBlankPoint(q.Points) {
			kept = append(kept, q)
		}
	}
	return kept
}

func hasNonBlankPoint(points []string) bool {
	for _, p := range points {
		if p != "" {
			return true
		}
	}
	return false
}

// tips emits the fixed coaching template: two openers, a conditional
// key-number tip, then five closers. Order never varies.
func tips(sess *session.Session) []string {
	out := []string{
		"Open strong: lead with your most compelling stat or fact",
		fmt.Sprintf("Know your <b>%d talking points</b> cold — practice transitions between them", len(sess.TalkingPoints)),
	}

	if len(sess.StatsBanner) > 0 {
		top := sess.StatsBanner[0]
		out = append(out, fmt.Sprintf("Memorize the key number: <b>%s</b> (%s)", top.Value, top.Label))
	}

	out = append(out,
		"Make eye contact with the panel — don't read your slides",
		"Keep answers concise. If they want more detail, they'll ask",
		"Have your <b>elevator pitch</b> ready (30-second version)",
		"Anticipate tough questions and prepare calm, evidence-based answers",
		"End with a clear <b>call to action</b> — what do you want them to do?",
	)
	return out
}

// pitchVariants builds the 30s/60s/2min elevator scripts from the
// session's facts and topics.
func pitchVariants(sess *session.Session) session.PitchVariants {
	title := sess.Title
	subtitle := sess.Subtitle

	var facts []string
	for i, st := range sess.StatsBanner {
		if i >= 4 {
			break
		}
		facts = append(facts, st.Value+" "+st.Label)
	}
	var topics []string
	for i, tp := range sess.TalkingPoints {
		if i >= 5 {
			break
		}
		topics = append(topics, tp.Label)
	}

	factsStr := ""
	if len(facts) > 0 {
		factsStr = strings.Join(firstN(facts, 3), ". ") + "."
	}
	topicsStr := strings.Join(firstN(topics, 3), ", ")

	thirty := title + ". " + subtitle + ". "
	if factsStr != "" {
		thirty += "Key facts: " + factsStr + " "
	}
	thirty += "This presentation covers the problem, our solution, and the path forward."

	sixty := title + ": " + subtitle + ".\n\n"
	if factsStr != "" {
		sixty += "The data is clear — " + factsStr + "\n\n"
	}
	if topicsStr != "" {
		sixty += "We address this through: " + topicsStr + ".\n\n"
	}
	sixty += "The result is an evidence-based approach that delivers actionable outcomes."

	twoMin := "Let me walk you through " + title + ".\n\n"
	if subtitle != "" {
		twoMin += subtitle + ".\n\n"
	}
	if factsStr != "" {
		twoMin += "Here are the numbers that matter: " + factsStr + "\n\n"
	}
	for i, tp := range sess.TalkingPoints {
		if i >= 5 {
			break
		}
		twoMin += tp.Label + ": " + truncate(stripTags(tp.Note), 200) + "\n\n"
	}
	twoMin += "That's what we're building. Thank you."

	return session.PitchVariants{ThirtySec: thirty, SixtySec: sixty, TwoMin: twoMin}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// iconRules map heading keywords to cheatsheet icons, first match wins.
type iconRule struct {
	icon     string
	keywords []string
}

var iconRules = []iconRule{
	{"⚠️", []string{"problem", "challenge", "gap", "issue"}},
	{"💡", []string{"solution", "approach", "method"}},
	{"📦", []string{"deliver", "output", "result"}},
	{"👥", []string{"team", "people", "who"}},
	{"💰", []string{"budget", "cost", "invest", "money"}},
	{"🚀", []string{"fund", "grant", "pathway", "scale"}},
	{"📊", []string{"data", "stat", "number", "index"}},
	{"🎯", []string{"aim", "research", "study"}},
	{"🏁", []string{"close", "conclusion", "summary", "thank"}},
	{"❓", []string{"question", "q&a", "discuss"}},
}

const defaultIcon = "📋"

func iconForHeading(heading string) string {
	h := strings.ToLower(heading)
	for _, rule := range iconRules {
		if containsAny(h, rule.keywords) {
			return rule.icon
		}
	}
	return defaultIcon
}

// extractNotePoints pulls up to 6 answer points out of a rich-text
// note: list items first, then key-stat spans, then paragraph text
// capped at 120 characters.
func extractNotePoints(note string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(note))
	if err != nil {
		return nil
	}

	var points []string
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		if t := cleanText(nodeText(li)); t != "" {
			points = append(points, t)
		}
	})

	if len(points) == 0 {
		doc.Find(".key-stat").Each(func(_ int, span *goquery.Selection) {
			if t := cleanText(nodeText(span)); t != "" {
				points = append(points, t)
			}
		})
	}

	if len(points) == 0 {
		doc.Find("p").Each(func(_ int, p *goquery.Selection) {
			t := cleanText(nodeText(p))
			if t != "" && utf8.RuneCountInString(t) > 15 {
				points = append(points, truncate(t, 120))
			}
		})
	}

	if len(points) > 6 {
		points = points[:6]
	}
	return points
}

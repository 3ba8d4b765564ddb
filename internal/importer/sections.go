package importer

import (
	"fmt"
	"strings"

	"github.com/hibbslab/prepdeck/internal/session"
)

// docSection is the extraction unit for the generic-HTML, text, and
// Markdown variants: a heading plus its note body, already wrapped in
// paragraph markup. No stat or card extraction applies to these
// formats.
type docSection struct {
	heading string
	note    string
}

func sectionTalkingPoint(sec docSection, number int) session.TalkingPoint {
	return session.TalkingPoint{
		ID:       slugify(sec.heading),
		Label:    sec.heading,
		Number:   fmt.Sprintf("Section %d", number),
		Timing:   "~1-2 min",
		Question: "Tell me about: " + sec.heading,
		Note:     sec.note,
		Source:   "Imported",
		TipDo:    "Focus on the main takeaway.",
		TipDont:  "Don't go off-topic.",
	}
}

// finishSections runs classification and synthesis for the simple
// variants, through the same entry points as the slide-deck path but
// over empty stats.
func finishSections(sess *session.Session, format string) *session.Session {
	parts := []string{sess.Title, sess.Subtitle}
	for _, tp := range sess.TalkingPoints {
		parts = append(parts, tp.Label, stripTags(tp.Note))
	}
	sess.Type = classify(strings.ToLower(strings.Join(parts, " ")))

	sess.KeyMessages = keyMessages(sess)
	sess.PracticeQuestions = practiceQuestions(sess)
	sess.Tips = tips(sess)

	if sess.Type == session.TypePitch {
		pv := pitchVariants(sess)
		sess.PitchVariants = &pv
		sess.Objections = []string{}
	}

	sess.Format = format
	return sess
}

package importer

import (
	"strings"
	"testing"

	"github.com/hibbslab/prepdeck/internal/session"
)

func TestPracticeQuestions_EmptyPointsDropped(t *testing.T) {
	sess := session.New()
	// No title, no subtitle, no stats, no talking points, no key
	// messages: every candidate question has only blank points.
	got := practiceQuestions(sess)
	if len(got) != 0 {
		t.Fatalf("expected all questions filtered, got %d: %+v", len(got), got)
	}
}

func TestPracticeQuestions_FullSet(t *testing.T) {
	sess := session.New()
	sess.Title = "Growth Plan"
	sess.Subtitle = "2025 and beyond"
	sess.StatsBanner = []session.Stat{{Value: "42%", Label: "retention"}}
	sess.TalkingPoints = []session.TalkingPoint{{
		Label:    "The Plan",
		Question: "Tell me about: The Plan",
		Note:     `<p><span class="key-stat">42%</span> — retention</p>`,
	}}
	sess.KeyMessages = keyMessages(sess)

	got := practiceQuestions(sess)
	if len(got) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(got))
	}

	if got[0].Question != "In one sentence, what is this presentation about?" {
		t.Errorf("q[0] = %q", got[0].Question)
	}
	if got[0].Points[0] != "Growth Plan" || got[0].Points[1] != "2025 and beyond" {
		t.Errorf("overview points = %v", got[0].Points)
	}

	if got[1].Question != "What are the key statistics that support your argument?" {
		t.Errorf("q[1] = %q", got[1].Question)
	}
	if got[1].Points[0] != "42% — retention" {
		t.Errorf("stats points = %v", got[1].Points)
	}

	if got[2].Question != "Tell me about: The Plan" {
		t.Errorf("q[2] = %q", got[2].Question)
	}
	if len(got[2].Points) == 0 || got[2].Points[0] != "42%" {
		t.Errorf("talking point question points = %v", got[2].Points)
	}

	if got[3].Question != "What is the broader impact or next step?" {
		t.Errorf("q[3] = %q", got[3].Question)
	}
	if got[3].Points[0] != "Key message: 42% — retention" {
		t.Errorf("impact points = %v", got[3].Points)
	}
}

func TestPracticeQuestions_StatsQuestionCapped(t *testing.T) {
	sess := session.New()
	sess.Title = "T"
	for i := 0; i < 10; i++ {
		sess.StatsBanner = append(sess.StatsBanner, session.Stat{Value: "v", Label: "l"})
	}
	got := practiceQuestions(sess)
	for _, q := range got {
		if q.Question == "What are the key statistics that support your argument?" {
			if len(q.Points) != 6 {
				t.Errorf("stats points capped at 6, got %d", len(q.Points))
			}
			return
		}
	}
	t.Fatal("stats question not found")
}

func TestExtractNotePoints(t *testing.T) {
	t.Run("list items win", func(t *testing.T) {
		note := `<p><span class="key-stat">42%</span></p><ul><li>first item</li><li>second item</li></ul>`
		got := extractNotePoints(note)
		if len(got) != 2 || got[0] != "first item" {
			t.Errorf("points = %v", got)
		}
	})

	t.Run("key-stat spans next", func(t *testing.T) {
		note := `<p><span class="key-stat">42%</span> — retention</p>`
		got := extractNotePoints(note)
		if len(got) != 1 || got[0] != "42%" {
			t.Errorf("points = %v", got)
		}
	})

	t.Run("paragraph fallback truncated", func(t *testing.T) {
		long := strings.Repeat("word ", 40)
		note := "<p>" + long + "</p>"
		got := extractNotePoints(note)
		if len(got) != 1 {
			t.Fatalf("points = %v", got)
		}
		if len([]rune(got[0])) > 120 {
			t.Errorf("paragraph point not capped: %d runes", len([]rune(got[0])))
		}
	})

	t.Run("capped at six", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("<ul>")
		for i := 0; i < 9; i++ {
			b.WriteString("<li>item</li>")
		}
		b.WriteString("</ul>")
		if got := extractNotePoints(b.String()); len(got) != 6 {
			t.Errorf("expected 6 points, got %d", len(got))
		}
	})
}

func TestTips_OrderAndConditionalStat(t *testing.T) {
	sess := session.New()
	sess.TalkingPoints = []session.TalkingPoint{{Label: "A"}, {Label: "B"}}
	sess.StatsBanner = []session.Stat{{Value: "42%", Label: "retention"}}

	got := tips(sess)
	if len(got) != 8 {
		t.Fatalf("expected 8 tips, got %d", len(got))
	}
	if !strings.Contains(got[1], "<b>2 talking points</b>") {
		t.Errorf("tips[1] = %q", got[1])
	}
	if got[2] != "Memorize the key number: <b>42%</b> (retention)" {
		t.Errorf("tips[2] = %q", got[2])
	}
	if !strings.Contains(got[len(got)-1], "call to action") {
		t.Errorf("last tip = %q", got[len(got)-1])
	}
}

func TestTips_NoStats(t *testing.T) {
	got := tips(session.New())
	if len(got) != 7 {
		t.Fatalf("expected 7 tips without stats, got %d", len(got))
	}
	for _, tip := range got {
		if strings.Contains(tip, "Memorize the key number") {
			t.Error("key-number tip must be absent without stats")
		}
	}
}

func TestIconForHeading(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"The Problem", "⚠️"},
		{"Our Solution", "💡"},
		{"Deliverables", "📦"},
		{"Meet the Team", "👥"},
		{"Budget Breakdown", "💰"},
		{"Funding Pathway", "🚀"},
		{"Data Snapshot", "📊"},
		{"Research Aims", "🎯"},
		{"Closing Thoughts", "🏁"},
		{"Questions & Discussion", "❓"},
		{"Agenda", "📋"},
	}
	for _, tt := range tests {
		if got := iconForHeading(tt.heading); got != tt.want {
			t.Errorf("iconForHeading(%q) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func TestPitchVariants(t *testing.T) {
	sess := session.New()
	sess.Title = "Spring Grant Pitch"
	sess.Subtitle = "Funding our research"
	sess.StatsBanner = []session.Stat{{Value: "$50,000", Label: "Total Ask"}}
	sess.TalkingPoints = []session.TalkingPoint{
		{Label: "The Ask", Note: "<p>We are asking for <b>$50,000</b> over one year.</p>"},
	}

	pv := pitchVariants(sess)

	if !strings.Contains(pv.ThirtySec, "Spring Grant Pitch") {
		t.Errorf("30sec missing title: %q", pv.ThirtySec)
	}
	if !strings.Contains(pv.ThirtySec, "Key facts: $50,000 Total Ask.") {
		t.Errorf("30sec missing facts: %q", pv.ThirtySec)
	}
	if !strings.HasSuffix(pv.ThirtySec, "This presentation covers the problem, our solution, and the path forward.") {
		t.Errorf("30sec closer wrong: %q", pv.ThirtySec)
	}

	if !strings.Contains(pv.SixtySec, "We address this through: The Ask.") {
		t.Errorf("60sec missing topics: %q", pv.SixtySec)
	}

	if !strings.Contains(pv.TwoMin, "The Ask: We are asking for $50,000 over one year.") {
		t.Errorf("2min missing stripped note: %q", pv.TwoMin)
	}
	if !strings.HasSuffix(pv.TwoMin, "That's what we're building. Thank you.") {
		t.Errorf("2min sign-off wrong: %q", pv.TwoMin)
	}
}

func TestPitchVariants_NoFactsNoTopics(t *testing.T) {
	sess := session.New()
	sess.Title = "T"
	sess.Subtitle = "S"
	pv := pitchVariants(sess)
	if strings.Contains(pv.ThirtySec, "Key facts") {
		t.Errorf("30sec must omit facts sentence: %q", pv.ThirtySec)
	}
	if strings.Contains(pv.SixtySec, "We address this through") {
		t.Errorf("60sec must omit topics sentence: %q", pv.SixtySec)
	}
}

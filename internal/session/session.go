package session

// Session type tags assigned by the import classifier.
const (
	TypeInterview    = "interview"
	TypePresentation = "presentation"
	TypePitch        = "pitch"
)

// Stat is a headline figure, e.g. {"92%", "retention rate"}.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TalkingPoint is one rehearsal unit: a topic label, a prompt question,
// and a rich-text note assembled from the source material.
type TalkingPoint struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Number   string `json:"number"`
	Timing   string `json:"timing"`
	Question string `json:"question"`
	Note     string `json:"note"`
	Source   string `json:"source"`
	TipDo    string `json:"tip_do"`
	TipDont  string `json:"tip_dont"`
}

// PracticeQuestion pairs a prompt with the points a good answer covers.
type PracticeQuestion struct {
	Question string   `json:"q"`
	Points   []string `json:"points"`
}

// CheatsheetCard is a compact reference entry: icon, title, and
// [title, detail] item pairs for quick recall.
type CheatsheetCard struct {
	Icon  string     `json:"icon"`
	Title string     `json:"title"`
	Items [][]string `json:"items"`
}

// PitchVariants holds the timed elevator-pitch scripts.
type PitchVariants struct {
	ThirtySec string `json:"30sec"`
	SixtySec  string `json:"60sec"`
	TwoMin    string `json:"2min"`
}

// Session is the persisted prep record. The importer constructs it fully
// populated; the store assigns ID and timestamps on save.
type Session struct {
	ID       string `json:"id,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Format   string `json:"format"`

	StatsBanner       []Stat             `json:"stats_banner"`
	TalkingPoints     []TalkingPoint     `json:"talking_points"`
	PracticeQuestions []PracticeQuestion `json:"practice_questions"`
	CheatsheetCards   []CheatsheetCard   `json:"cheatsheet_cards"`
	Tips              []string           `json:"tips"`
	KeyMessages       []string           `json:"key_messages"`

	// Present only for pitch sessions.
	PitchVariants *PitchVariants `json:"pitch_variants,omitempty"`
	Objections    []string       `json:"objections,omitempty"`
}

// New returns a Session with every list field initialized. Absence of
// data is an empty container, never a missing key, so consumers can
// iterate unconditionally.
func New() *Session {
	return &Session{
		Type:              TypePresentation,
		StatsBanner:       []Stat{},
		TalkingPoints:     []TalkingPoint{},
		PracticeQuestions: []PracticeQuestion{},
		CheatsheetCards:   []CheatsheetCard{},
		Tips:              []string{},
		KeyMessages:       []string{},
	}
}

// NewOfType returns an empty session template for manual creation.
func NewOfType(sessionType string) *Session {
	s := New()
	switch sessionType {
	case TypeInterview, TypePresentation, TypePitch:
		s.Type = sessionType
	}
	if s.Type == TypePitch {
		s.PitchVariants = &PitchVariants{}
		s.Objections = []string{}
	}
	return s
}

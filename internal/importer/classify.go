package importer

import (
	"strings"

	"github.com/hibbslab/prepdeck/internal/session"
)

// Classification keyword sets, checked in order; the pitch set wins
// over the interview set when both match.
var (
	pitchKeywords     = []string{"pitch", "proposal", "funding", "grant", "invest", "seed", "budget"}
	interviewKeywords = []string{"interview", "hiring", "candidate"}
)

// classify assigns a session type from a lowercased corpus by keyword
// presence. The default is presentation.
func classify(corpus string) string {
	if containsAny(corpus, pitchKeywords) {
		return session.TypePitch
	}
	if containsAny(corpus, interviewKeywords) {
		return session.TypeInterview
	}
	return session.TypePresentation
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

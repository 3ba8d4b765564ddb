package importer

import (
	"strings"

	"github.com/hibbslab/prepdeck/internal/session"
)

// importText parses a plain text file. The first line is the title;
// later lines starting with "#" or full "==="/"---" underlines start
// sections. Blank-line runs inside a section become paragraph breaks,
// remaining line breaks render as <br>.
func importText(path string) (*session.Session, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	sess := session.New()

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) > 0 {
		sess.Title = strings.TrimSpace(strings.TrimLeft(lines[0], "#"))
		lines = lines[1:]
	}

	for _, sec := range textSections(lines) {
		sess.TalkingPoints = append(sess.TalkingPoints, sectionTalkingPoint(sec, len(sess.TalkingPoints)+1))
	}

	return finishSections(sess, "Imported from text"), nil
}

func textSections(lines []string) []docSection {
	var sections []docSection
	var heading string
	var content []string

	flush := func() {
		if heading == "" {
			return
		}
		body := strings.Trim(strings.Join(content, "\n"), "\n")
		if body == "" {
			return
		}
		sections = append(sections, docSection{heading: heading, note: paragraphNote(body)})
	}

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "#"):
			flush()
			heading = strings.TrimSpace(strings.TrimLeft(stripped, "#"))
			content = nil
		case isUnderline(stripped):
			// Setext style: the heading is the last content line before
			// the underline.
			flush()
			heading = lastNonBlank(content)
			if heading == "" {
				heading = stripped
			}
			content = nil
		case stripped != "":
			content = append(content, stripped)
		default:
			// Blank line: paragraph break, once.
			if len(content) > 0 && content[len(content)-1] != "" {
				content = append(content, "")
			}
		}
	}
	flush()

	return sections
}

// isUnderline matches ===/--- style heading underlines.
func isUnderline(s string) bool {
	if len(s) <= 3 {
		return false
	}
	for _, c := range s {
		if c != '=' && c != '-' {
			return false
		}
	}
	return true
}

func lastNonBlank(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] != "" {
			return lines[i]
		}
	}
	return ""
}

// paragraphNote renders a section body as paragraph markup: blank-line
// runs split paragraphs, single line breaks become <br>.
func paragraphNote(body string) string {
	body = strings.ReplaceAll(body, "\n\n", "</p><p>")
	body = strings.ReplaceAll(body, "\n", "<br>")
	return "<p>" + body + "</p>"
}

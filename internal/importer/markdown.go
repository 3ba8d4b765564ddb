package importer

import (
	"bytes"
	"strings"

	"github.com/hibbslab/prepdeck/internal/session"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// importMarkdown parses a Markdown file through goldmark. ATX ("#") and
// setext ("==="/"---" underline) headings both start sections, so the
// result matches the plain-text variant for the constructs it handles
// while tolerating real markdown (lists, code fences).
func importMarkdown(path string) (*session.Session, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	sess := session.New()

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	var sections []docSection
	var heading string
	var paragraphs []string

	flush := func() {
		if heading == "" || len(paragraphs) == 0 {
			return
		}
		sections = append(sections, docSection{
			heading: heading,
			note:    "<p>" + strings.Join(paragraphs, "</p><p>") + "</p>",
		})
	}

	first := true
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			title := cleanText(string(h.Text(data)))
			if first {
				// Leading heading is the document title, not a section.
				sess.Title = title
				first = false
				continue
			}
			flush()
			heading = title
			paragraphs = nil
			continue
		}
		first = false
		if t := blockText(n, data); t != "" {
			paragraphs = append(paragraphs, strings.ReplaceAll(t, "\n", "<br>"))
		}
	}
	flush()

	// No leading heading: fall back to the first line, like the plain
	// text variant.
	if sess.Title == "" {
		if first := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2); len(first) > 0 {
			sess.Title = strings.TrimSpace(strings.TrimLeft(first[0], "#"))
		}
	}

	for _, sec := range sections {
		sess.TalkingPoints = append(sess.TalkingPoints, sectionTalkingPoint(sec, len(sess.TalkingPoints)+1))
	}

	return finishSections(sess, "Imported from text"), nil
}

// blockText extracts the raw text of a non-heading block. Blocks with
// source lines (paragraphs, code) contribute their lines; container
// blocks (lists, quotes) recurse into their children.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeBlockText(n, src, &buf)
	return strings.TrimSpace(buf.String())
}

func writeBlockText(n ast.Node, src []byte, buf *bytes.Buffer) {
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
				buf.WriteByte('\n')
			}
			return
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeBlockText(c, src, buf)
	}
}

package importer

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/hibbslab/prepdeck/internal/session"
	"golang.org/x/net/html"
)

// importGenericHTML parses an ordinary HTML page: each h1/h2/h3 starts
// a section whose body is the text of the following sibling elements.
// A page with no headings degrades to an empty result, not an error.
func importGenericHTML(path string) (*session.Session, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ImportError{Path: path, Kind: KindMalformedContent, Reason: "parse html", Err: err}
	}

	sess := session.New()
	sess.Title = pageTitle(doc, path)

	for _, sec := range htmlSections(doc) {
		sess.TalkingPoints = append(sess.TalkingPoints, sectionTalkingPoint(sec, len(sess.TalkingPoints)+1))
	}

	return finishSections(sess, "Imported from HTML"), nil
}

// pageTitle prefers <title>, then the first h1, then the filename.
func pageTitle(doc *html.Node, path string) string {
	if t := cleanText(textContent(findElement(doc, "title"))); t != "" {
		return t
	}
	if t := cleanText(textContent(findElement(doc, "h1"))); t != "" {
		return t
	}
	return filepath.Base(path)
}

// htmlSections walks the document in order. Each h1/h2/h3 collects the
// text of its following element siblings until the next heading; a
// heading without content yields no section.
func htmlSections(doc *html.Node) []docSection {
	var sections []docSection

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && sectionHeadingLevel(n.Data) > 0 {
			heading := cleanText(textContent(n))

			var content []string
			for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
				if sib.Type != html.ElementNode {
					continue
				}
				if sectionHeadingLevel(sib.Data) > 0 {
					break
				}
				if t := cleanText(textContent(sib)); t != "" {
					content = append(content, t)
				}
			}

			if heading != "" && len(content) > 0 {
				if len(content) > 5 {
					content = content[:5]
				}
				sections = append(sections, docSection{
					heading: heading,
					note:    "<p>" + strings.Join(content, "</p><p>") + "</p>",
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sections
}

func sectionHeadingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	}
	return 0
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findElement(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

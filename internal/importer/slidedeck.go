package importer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/hibbslab/prepdeck/internal/session"
	"golang.org/x/net/html"
)

// importSlideDeck parses a reveal.js-style presentation. Slides are
// <section> elements, with ".slides > *" as the fallback selector; zero
// units after both is a hard malformed-content failure.
func importSlideDeck(path string) (*session.Session, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	units, err := parseSlides(data)
	if err != nil {
		return nil, &ImportError{Path: path, Kind: KindMalformedContent, Reason: err.Error()}
	}

	return aggregate(units), nil
}

// parseSlides splits the document into slide units and extracts each.
func parseSlides(data []byte) ([]*slideUnit, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	slides := doc.Find("section")
	if slides.Length() == 0 {
		slides = doc.Find(".slides > *")
	}
	if slides.Length() == 0 {
		return nil, fmt.Errorf("no slides found")
	}

	units := make([]*slideUnit, 0, slides.Length())
	slides.Each(func(i int, s *goquery.Selection) {
		units = append(units, parseSlide(s, i))
	})
	return units, nil
}

func parseSlide(s *goquery.Selection, index int) *slideUnit {
	u := &slideUnit{
		index:  index,
		isDark: s.HasClass("dark-slide"),
	}

	// Section label (e.g. "The Problem", "Our Solution") doubles as the
	// unit heading when present.
	if label := s.Find(".section-label").First(); label.Length() > 0 {
		u.sectionLabel = cleanText(nodeText(label))
		u.heading = u.sectionLabel
	}

	if h1 := s.Find("h1").First(); h1.Length() > 0 {
		u.title = cleanText(nodeText(h1))
	}

	if h2 := s.Find("h2").First(); h2.Length() > 0 {
		t := cleanText(nodeText(h2))
		if u.heading == "" {
			u.heading = t
		}
		if index == 0 && u.title == "" {
			u.title = t
		}
	}

	// Title slide only: subtitle is the first substantial paragraph that
	// is neither a date nor a credentialed name; date is the first
	// paragraph matching a date pattern.
	if index == 0 {
		s.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := cleanText(nodeText(p))
			if text != "" && utf8.RuneCountInString(text) > 10 &&
				!looksLikeDate(text) && !looksLikeName(text) {
				u.subtitle = text
				return false
			}
			return true
		})
		s.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			text := cleanText(nodeText(p))
			if looksLikeDate(text) {
				u.date = text
				return false
			}
			return true
		})
	}

	s.Find(".stat-box").Each(func(_ int, box *goquery.Selection) {
		num := box.Find(".stat-num").First()
		lbl := box.Find(".stat-lbl").First()
		if num.Length() > 0 && lbl.Length() > 0 {
			u.stats = append(u.stats, session.Stat{
				Value: cleanText(nodeText(num)),
				Label: cleanText(nodeText(lbl)),
			})
		}
	})

	if len(u.stats) == 0 {
		extractInlineStats(s, u)
	}

	s.Find(".card").Each(func(_ int, c *goquery.Selection) {
		h4 := c.Find("h4").First()
		if h4.Length() == 0 {
			return
		}
		u.cards = append(u.cards, card{
			title:  cleanText(nodeText(h4)),
			detail: cleanText(nodeText(c.Find("p").First())),
			tag:    cleanText(nodeText(c.Find(".tag").First())),
		})
	})

	s.Find(".step").Each(func(_ int, st *goquery.Selection) {
		h4 := st.Find("h4").First()
		if h4.Length() == 0 {
			return
		}
		u.steps = append(u.steps, step{
			title:  cleanText(nodeText(h4)),
			detail: cleanText(nodeText(st.Find("p").First())),
			timing: cleanText(nodeText(st.Find(".months").First())),
		})
	})

	s.Find(".team-card").Each(func(_ int, tc *goquery.Selection) {
		h4 := tc.Find("h4").First()
		if h4.Length() == 0 {
			return
		}
		u.teamMembers = append(u.teamMembers, teamMember{
			name:  cleanText(nodeText(h4)),
			role:  cleanText(nodeText(tc.Find(".role").First())),
			badge: cleanText(nodeText(tc.Find(".badge").First())),
		})
	})

	// Budget bars: first span is the line label, last span the amount.
	s.Find(".bar-row").Each(func(_ int, bar *goquery.Selection) {
		spans := bar.Find("span")
		if spans.Length() >= 2 {
			u.budgetItems = append(u.budgetItems, budgetItem{
				label:  cleanText(nodeText(spans.First())),
				amount: cleanText(nodeText(spans.Last())),
			})
		}
	})

	// Pathway badges fold into cards.
	s.Find(".pw-badge").Each(func(_ int, b *goquery.Selection) {
		h4 := b.Find("h4").First()
		if h4.Length() == 0 {
			return
		}
		u.cards = append(u.cards, card{
			title:  cleanText(nodeText(h4)),
			detail: cleanText(nodeText(b.Find("p").First())),
		})
	})

	// General content text for synthesis fallback: qualifying fragments
	// longer than 15 characters, capped at the first 8.
	var parts []string
	s.Find("p, .callout p, li").Each(func(_ int, el *goquery.Selection) {
		if len(parts) >= 8 {
			return
		}
		t := cleanText(nodeText(el))
		if t != "" && utf8.RuneCountInString(t) > 15 {
			parts = append(parts, t)
		}
	})
	u.contentText = strings.Join(parts, " ")

	// Q&A tiles fold into cards as discussion topics.
	s.Find(".qa-tile").Each(func(_ int, tile *goquery.Selection) {
		if t := cleanText(nodeText(tile)); t != "" {
			u.cards = append(u.cards, card{title: t, detail: "Discussion topic"})
		}
	})

	return u
}

var (
	bigFontStyleRe = regexp.MustCompile(`font-size:\s*2\.\d+em|font-weight:\s*[789]00`)
	bareNumberRe   = regexp.MustCompile(`^\$?\d[\d,]*%?$`)
)

// extractInlineStats is the fallback for slides without .stat-box
// markup: inline-styled elements with a large-font or heavy-weight
// signal whose text is a bare number, currency, or percentage. The
// label is the nearest non-empty sibling text longer than 5 characters.
func extractInlineStats(s *goquery.Selection, u *slideUnit) {
	s.Find("[style]").Each(func(_ int, el *goquery.Selection) {
		style := el.AttrOr("style", "")
		if !bigFontStyleRe.MatchString(style) {
			return
		}
		text := strings.TrimSpace(cleanText(nodeText(el)))
		if !bareNumberRe.MatchString(text) {
			return
		}

		parent := el.Parent()
		if parent.Length() == 0 || len(el.Nodes) == 0 {
			return
		}
		self := el.Nodes[0]

		desc := ""
		parent.Children().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if len(sib.Nodes) > 0 && sib.Nodes[0] == self {
				return true
			}
			t := cleanText(nodeText(sib))
			if t != "" && utf8.RuneCountInString(t) > 5 && t != text {
				desc = t
				return false
			}
			return true
		})
		if desc != "" {
			u.stats = append(u.stats, session.Stat{Value: text, Label: desc})
		}
	})
}

// nodeText extracts the text of a selection with text nodes joined by
// spaces, so <br>-separated fragments don't run together. cleanText
// collapses the extra whitespace afterwards.
func nodeText(s *goquery.Selection) string {
	var parts []string
	for _, n := range s.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

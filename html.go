package itbit

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlText extracts visible text from an html page.
// Text inside <body> is preferred, the whole document is used if there is none.
// Input without any tag is not html and yields "".
func htmlText(p []byte) string {
	z := html.NewTokenizer(bytes.NewReader(p))

	var all, body []string
	var inBody, seenBody, seenTag bool
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if !seenTag {
				return ""
			}

			if seenBody && len(body) != 0 {
				return strings.Join(body, " ")
			}

			return strings.Join(all, " ")
		case html.DoctypeToken, html.SelfClosingTagToken:
			seenTag = true
		case html.StartTagToken:
			seenTag = true

			switch z.Token().DataAtom {
			case atom.Body:
				inBody, seenBody = true, true
			case atom.Script, atom.Style:
				skip++
			}
		case html.EndTagToken:
			seenTag = true

			switch z.Token().DataAtom {
			case atom.Body:
				inBody = false
			case atom.Script, atom.Style:
				if skip > 0 {
					skip--
				}
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}

			t := strings.Join(strings.Fields(string(z.Text())), " ")
			if t == "" {
				continue
			}

			all = append(all, t)

			if inBody {
				body = append(body, t)
			}
		}
	}
}

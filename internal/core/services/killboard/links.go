package killboard

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var killLinkPattern = regexp.MustCompile(`https?://albiononline\.com/(?:en/)?killboard/kill/(\d+)(?:\?server=\w+)?`)

// ExtractEventIDs finds killboard links in pasted text and returns their
// event ids in first-seen order without duplicates. Pasted HTML is read
// through its links and text so that escaped URLs are found too.
func ExtractEventIDs(text string) []int64 {
	var fragments []string
	if strings.Contains(text, "<") {
		fragments = htmlFragments(text)
	} else {
		fragments = []string{text}
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, frag := range fragments {
		for _, m := range killLinkPattern.FindAllStringSubmatch(frag, -1) {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func htmlFragments(doc string) []string {
	var out []string
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				// Not something the tokenizer can make sense of; fall back
				// to scanning the raw input.
				return []string{doc}
			}
			return out
		case html.TextToken:
			out = append(out, string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			for _, attr := range tok.Attr {
				if attr.Key == "href" {
					out = append(out, attr.Val)
				}
			}
		}
	}
}

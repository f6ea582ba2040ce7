package fetch

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// StripMarkdown renders markdown down to its visible text. Link targets and
// bare URLs are dropped and whitespace is collapsed to single spaces.
func StripMarkdown(input string) string {
	root := blackfriday.New(blackfriday.WithNoExtensions()).Parse([]byte(input))

	var sb strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
			if entering {
				sb.Write(node.Literal)
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			sb.WriteByte(' ')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item:
			if !entering {
				sb.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	plain := urlPattern.ReplaceAllString(sb.String(), "")
	return strings.Join(strings.Fields(plain), " ")
}

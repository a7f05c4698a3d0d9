package notes

import (
	"regexp"
	"strings"
)

// Class attributes of the rendered elements. The notes preview styles
// against these.
const (
	classH1         = `text-2xl font-bold mb-4 mt-6`
	classH2         = `text-xl font-bold mb-3 mt-5`
	classH3         = `text-lg font-bold mb-2 mt-4`
	classCode       = `bg-gray-800 px-2 py-1 rounded text-sm text-blue-300`
	classLink       = `text-blue-400 hover:underline`
	classUL         = `list-disc my-2 ml-6`
	classOL         = `list-decimal my-2 ml-6`
	classBlockquote = `border-l-4 border-blue-500 pl-4 py-2 my-2 italic text-gray-300`
	classParagraph  = `mb-3`
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// inline rules run in order before the line pass; headings must go longest
// marker first so "### x" is not read as "# ## x".
var inlineRules = []rule{
	{regexp.MustCompile(`(?m)^### (.*$)`), `<h3 class="` + classH3 + `">$1</h3>`},
	{regexp.MustCompile(`(?m)^## (.*$)`), `<h2 class="` + classH2 + `">$1</h2>`},
	{regexp.MustCompile(`(?m)^# (.*$)`), `<h1 class="` + classH1 + `">$1</h1>`},
	{regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), `<strong><em>$1</em></strong>`},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), `<strong>$1</strong>`},
	{regexp.MustCompile("`(.+?)`"), `<code class="` + classCode + `">$1</code>`},
	{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), `<a href="$2" class="` + classLink + `" target="_blank" rel="noopener noreferrer">$1</a>`},
}

var (
	unorderedItem = regexp.MustCompile(`^\* (.+)`)
	orderedItem   = regexp.MustCompile(`^\d+\. (.+)`)
	orderedMarker = regexp.MustCompile(`^\d+\.\s`)
	quoteLine     = regexp.MustCompile(`^> (.+)`)
	italic        = regexp.MustCompile(`\*(.+?)\*`)
)

// RenderMarkdown converts the small markdown subset the notes editor offers
// into HTML. Input is not escaped; callers render their own notes only.
func RenderMarkdown(text string) string {
	html := text
	for _, r := range inlineRules {
		html = r.re.ReplaceAllString(html, r.repl)
	}

	html = renderBlocks(html)

	html = italic.ReplaceAllString(html, `<em>$1</em>`)
	html = strings.ReplaceAll(html, "\n\n", `</p><p class="`+classParagraph+`">`)
	html = `<p class="` + classParagraph + `">` + html + `</p>`
	return strings.ReplaceAll(html, "\n", "<br>")
}

// renderBlocks wraps list items and blockquotes line by line. Lists close on
// the first line that is neither a list item nor a quote.
func renderBlocks(html string) string {
	lines := strings.Split(html, "\n")
	out := make([]string, 0, len(lines))
	inUL, inOL := false, false

	for _, line := range lines {
		switch {
		case unorderedItem.MatchString(line):
			if !inUL {
				out = append(out, `<ul class="`+classUL+`">`)
				inUL = true
			}
			out = append(out, "<li>"+line[2:]+"</li>")
		case orderedItem.MatchString(line):
			if !inOL {
				out = append(out, `<ol class="`+classOL+`">`)
				inOL = true
			}
			out = append(out, "<li>"+orderedMarker.ReplaceAllString(line, "")+"</li>")
		case quoteLine.MatchString(line):
			out = append(out, `<blockquote class="`+classBlockquote+`">`+line[2:]+`</blockquote>`)
		default:
			if inUL {
				out = append(out, "</ul>")
				inUL = false
			}
			if inOL {
				out = append(out, "</ol>")
				inOL = false
			}
			out = append(out, line)
		}
	}
	if inUL {
		out = append(out, "</ul>")
	}
	if inOL {
		out = append(out, "</ol>")
	}
	return strings.Join(out, "\n")
}

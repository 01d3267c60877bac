// Package markdown renders page bodies to HTML as a templ component.
//
// Besides the usual block and inline syntax it understands widget
// directives on a line of their own:
//
//	::youtube[Video title](https://youtu.be/VIDEO_ID)
//	::amazon[Link label](https://amzn.to/CODE)
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/localhake/localhake/widgets"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode       = regexp.MustCompile("`([^`]+)`")
	reLink             = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reOrderedList      = regexp.MustCompile(`^(\d+)\.\s`)
	// ![alt](url){style} or ![alt](url){style|width|height}
	reImg       = regexp.MustCompile(`\!\[(.*?)\]\((.*?)\)\{([^|}]*?)(?:\|(\d+)\|(\d+))?\}`)
	reDirective = regexp.MustCompile(`^::(youtube|amazon)\[(.*?)\]\((.*?)\)\s*$`)
)

// Directive is a widget directive found in a Markdown body.
type Directive struct {
	Line  int // 1-based
	Name  string
	Label string
	URL   string
}

// Directives lists the widget directives in md, skipping fenced code.
func Directives(md string) []Directive {
	var out []Directive
	inCode := false
	for i, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		if m := reDirective.FindStringSubmatch(line); m != nil {
			out = append(out, Directive{Line: i + 1, Name: m[1], Label: m[2], URL: m[3]})
		}
	}
	return out
}

// Heading is an h2/h3 heading with the anchor id it renders with.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Headings lists the h2 and h3 headings of md for a table of contents.
func Headings(md string) []Heading {
	var out []Heading
	ids := map[string]int{}
	inCode := false
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		level, text := headingOf(line)
		if level < 2 {
			continue
		}
		out = append(out, Heading{Level: level, Text: text, ID: uniqueID(ids, text)})
	}
	return out
}

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderMarkdown(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

type blockKind int

const (
	blockNone blockKind = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
	blockTable
)

// renderer holds the open block while walking lines. Only one block is open
// at a time; opening another closes it first.
type renderer struct {
	buf        *bytes.Buffer
	open       blockKind
	tableBody  bool
	inCode     bool
	codeLang   bool
	imageCount int
	ids        map[string]int
}

func (r *renderer) close() {
	switch r.open {
	case blockPara:
		r.buf.WriteString("</p>")
	case blockList:
		r.buf.WriteString("</ul>")
	case blockOrdered:
		r.buf.WriteString("</ol>")
	case blockQuote:
		r.buf.WriteString("</blockquote>")
	case blockTable:
		if r.tableBody {
			r.buf.WriteString("</tbody>")
		}
		r.buf.WriteString("</table>")
		r.tableBody = false
	}
	r.open = blockNone
}

// enter makes k the open block, returning true if it was newly opened.
func (r *renderer) enter(k blockKind, tag string) bool {
	if r.open == k {
		return false
	}
	r.close()
	r.buf.WriteString(tag)
	r.open = k
	return true
}

func (r *renderer) inline(s string) string {
	return FormatInline(s, &r.imageCount)
}

// RenderMarkdown writes the HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string) {
	r := &renderer{buf: buf, ids: map[string]int{}}
	for _, raw := range strings.Split(md, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.close()
	if r.inCode {
		r.closeCode()
	}
}

func (r *renderer) closeCode() {
	r.buf.WriteString("</code></pre>")
	if r.codeLang {
		r.buf.WriteString("</div>")
		r.codeLang = false
	}
	r.inCode = false
}

func (r *renderer) line(line string) {
	if strings.HasPrefix(line, "```") {
		if r.inCode {
			r.closeCode()
			return
		}
		r.close()
		lang := strings.TrimSpace(line[3:])
		if lang != "" {
			r.codeLang = true
			escapedLang := html.EscapeString(lang)
			r.buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + escapedLang + `">` + escapedLang + `</span>`)
			r.buf.WriteString(`<pre class="code-block"><code class="language-` + escapedLang + `">`)
		} else {
			r.buf.WriteString(`<pre class="code-block"><code>`)
		}
		r.inCode = true
		return
	}
	if r.inCode {
		r.buf.WriteString(html.EscapeString(line))
		r.buf.WriteString("\n")
		return
	}
	if strings.TrimSpace(line) == "" {
		r.close()
		return
	}

	if m := reDirective.FindStringSubmatch(line); m != nil {
		r.close()
		switch m[1] {
		case "youtube":
			r.buf.WriteString(widgets.YouTubeHTML(m[3], m[2]))
		case "amazon":
			r.buf.WriteString(widgets.AmazonLinkHTML(m[3], m[2]))
		}
		return
	}
	if level, text := headingOf(line); level > 0 {
		r.close()
		tag := "h" + strconv.Itoa(level)
		if level == 1 {
			r.buf.WriteString("<h1>" + r.inline(text) + "</h1>")
			return
		}
		id := uniqueID(r.ids, text)
		r.buf.WriteString("<" + tag + ` id="` + id + `">` + r.inline(text) + "</" + tag + ">")
		return
	}

	switch {
	case strings.HasPrefix(line, "---"):
		r.close()
		r.buf.WriteString("<hr/>")
	case strings.HasPrefix(line, "|"):
		r.tableRow(line)
	case strings.HasPrefix(line, "- "):
		r.enter(blockList, "<ul>")
		r.buf.WriteString("<li>" + r.inline(strings.TrimSpace(line[2:])) + "</li>")
	case reOrderedList.MatchString(line):
		r.enter(blockOrdered, "<ol>")
		item := reOrderedList.ReplaceAllString(line, "")
		r.buf.WriteString("<li>" + r.inline(strings.TrimSpace(item)) + "</li>")
	case strings.HasPrefix(line, "> "):
		r.enter(blockQuote, "<blockquote>")
		r.buf.WriteString(r.inline(strings.TrimSpace(line[2:])))
	default:
		if !r.enter(blockPara, "<p>") {
			r.buf.WriteString(" ")
		}
		r.buf.WriteString(r.inline(strings.TrimSpace(line)) + "\n")
	}
}

func (r *renderer) tableRow(line string) {
	if r.enter(blockTable, "<table>") {
		// First row is the header
		r.buf.WriteString("<thead><tr>")
		for _, cell := range parseTableCells(line) {
			r.buf.WriteString("<th>" + r.inline(cell) + "</th>")
		}
		r.buf.WriteString("</tr></thead>")
		return
	}
	if !r.tableBody {
		r.buf.WriteString("<tbody>")
		r.tableBody = true
	}
	if isTableSeparator(line) {
		return
	}
	r.buf.WriteString("<tr>")
	for _, cell := range parseTableCells(line) {
		r.buf.WriteString("<td>" + r.inline(cell) + "</td>")
	}
	r.buf.WriteString("</tr>")
}

func headingOf(line string) (int, string) {
	for level := 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			return level, strings.TrimSpace(line[len(prefix):])
		}
	}
	return 0, ""
}

// uniqueID slugifies text into an anchor id, suffixing -1, -2, ... on repeats.
func uniqueID(seen map[string]int, text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	id := strings.TrimRight(b.String(), "-")
	if id == "" {
		id = "section"
	}
	n := seen[id]
	seen[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

func parseTableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	for _, cell := range parseTableCells(line) {
		if strings.Trim(cell, "-:") != "" {
			return false
		}
	}
	return true
}

// ApplyOutsideTags applies fn only to text segments outside HTML tags,
// so that formatting regexes never touch URLs inside href attributes, etc.
func ApplyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// FormatInline applies inline formatting (bold, italic, links, images) to s.
func FormatInline(s string, imageCount *int) string {
	escaped := html.EscapeString(s)
	escaped = reImg.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImg.FindStringSubmatch(m)
		src := SafeURL(match[2])
		if src == "" {
			return match[1]
		}
		width, height := "1024", "768"
		if match[4] != "" && match[5] != "" {
			width, height = match[4], match[5]
		}
		*imageCount++
		loadAttr := `loading="lazy"`
		if *imageCount == 1 {
			loadAttr = `fetchpriority="high"`
		}
		return `<img ` + loadAttr + ` width="` + width + `" height="` + height + `" alt="` + match[1] + `" src="` + src + `" style="` + match[3] + `" decoding="async"/>`
	})
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := `class="underline decoration-2 underline-offset-4"`
		if match[3] == "^" {
			attrs += ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `" ` + attrs + `>` + match[1] + `</a>`
	})
	// Swap inline code out for placeholders so bold/italic leave it alone.
	var codeSpans []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00IC" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})
	escaped = ApplyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldUnderscore.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicUnderscore.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})
	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/localhake/localhake/content"
	"github.com/localhake/localhake/links"
	"github.com/localhake/localhake/markdown"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	dimColor  = color.New(color.Faint)
)

// runCheck validates every widget directive in the pages under dir and
// writes a report to w. It returns the number of failing directives.
func runCheck(w io.Writer, dir string) (int, error) {
	docs, err := content.LoadDir(dir)
	if err != nil {
		return 0, err
	}
	checked, failures := 0, 0
	for _, doc := range docs {
		for _, d := range markdown.Directives(doc.Body) {
			checked++
			var r links.Result
			switch d.Name {
			case "youtube":
				r = links.ParseYouTube(d.URL)
			case "amazon":
				r = links.ParseAmazon(d.URL)
			}
			if r.OK() {
				continue
			}
			failures++
			failColor.Fprint(w, "FAIL ")
			fmt.Fprintf(w, "%s (body line %d) %s %q: %s ", doc.Path, d.Line, d.Name, d.URL, r.Reason.Message())
			dimColor.Fprintf(w, "[%s]\n", r.Reason)
		}
	}
	if failures > 0 {
		failColor.Fprintf(w, "%d of %d links failed in %d pages\n", failures, checked, len(docs))
	} else {
		okColor.Fprintf(w, "all %d links valid in %d pages\n", checked, len(docs))
	}
	return failures, nil
}

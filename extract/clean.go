package extract

import (
	"regexp"
	"strings"
)

// Lines consisting only of these tokens are publisher artifacts left by the
// PDF text layer and carry no document content.
var boilerplateLines = map[string]bool{
	"법제처":       true,
	"국가법령정보센터": true,
}

var (
	numeralLineRE = regexp.MustCompile(`^\d+\s*$`)
	spaceRunRE    = regexp.MustCompile(`\s+`)
	hyphenWrapRE  = regexp.MustCompile(`(\S)-\s+(\S)`)
)

// CleanText removes extraction artifacts from raw document text: blank
// lines, boilerplate lines, bare page numbers and soft hyphenation at line
// wraps. Whitespace runs within a line collapse to a single space.
func CleanText(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if boilerplateLines[s] {
			continue
		}
		if numeralLineRE.MatchString(s) {
			continue
		}
		lines = append(lines, spaceRunRE.ReplaceAllString(s, " "))
	}
	cleaned := strings.Join(lines, "\n")
	return hyphenWrapRE.ReplaceAllString(cleaned, "$1$2")
}

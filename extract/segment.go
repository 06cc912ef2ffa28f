package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Jung-Seung-hwa/genmind/core"
)

// headerRE matches the line shapes that open a new section in Korean
// statute and policy documents: article headings (제N조), numbered and
// lettered list items, box bullets, markdown headings and bracketed titles.
var headerRE = regexp.MustCompile(
	`^(` +
		`(제?\s*\d+\s*조(\s*\([\w\d가-하]+\))?)|` +
		`(\d+[.)]\s)|` +
		`([가-하]\.\s)|` +
		`(□|■)|` +
		`(#{1,6}\s)|` +
		`(\[[^\]]+\])` +
		`)`,
)

var paragraphBreakRE = regexp.MustCompile(`\n{2,}`)

// SplitSections segments cleaned document text into model-sized sections.
//
// A new section starts at every heading line. Sections shorter than
// MinSectionChars are folded into the preceding section; a short leading
// section has nothing before it and stands alone. Sections longer than
// MaxSectionChars are re-split on paragraph breaks, packing paragraphs
// greedily. A single paragraph over the limit is emitted whole.
//
// Section indices are 1-based and assigned after all merging and
// re-splitting.
func SplitSections(text string, cfg *Config) []core.Section {
	// Trim each line and collapse blank-line runs into single empty
	// entries, which survive as paragraph boundaries for re-splitting.
	var lines []string
	prevBlank := true
	for _, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			if !prevBlank {
				lines = append(lines, "")
				prevBlank = true
			}
			continue
		}
		lines = append(lines, s)
		prevBlank = false
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	var sections []string
	var buf []string
	flush := func() {
		for len(buf) > 0 && buf[len(buf)-1] == "" {
			buf = buf[:len(buf)-1]
		}
		if len(buf) > 0 {
			sections = append(sections, strings.Join(buf, "\n"))
		}
		buf = nil
	}
	for _, line := range lines {
		if line != "" && headerRE.MatchString(line) && len(buf) > 0 {
			flush()
		}
		buf = append(buf, line)
	}
	flush()

	var merged []string
	for _, s := range sections {
		if len(merged) > 0 && utf8.RuneCountInString(s) < cfg.MinSectionChars {
			merged[len(merged)-1] = merged[len(merged)-1] + "\n" + s
		} else {
			merged = append(merged, s)
		}
	}

	var chunked []string
	for _, s := range merged {
		if utf8.RuneCountInString(s) <= cfg.MaxSectionChars {
			chunked = append(chunked, s)
			continue
		}
		paras := paragraphBreakRE.Split(s, -1)
		cur := ""
		for _, para := range paras {
			if utf8.RuneCountInString(cur)+utf8.RuneCountInString(para)+2 > cfg.MaxSectionChars {
				if cur != "" {
					chunked = append(chunked, cur)
				}
				cur = para
			} else if cur == "" {
				cur = para
			} else {
				cur = cur + "\n\n" + para
			}
		}
		if cur != "" {
			chunked = append(chunked, cur)
		}
	}

	result := make([]core.Section, len(chunked))
	for i, s := range chunked {
		result[i] = core.Section{Index: i + 1, Text: s}
	}
	return result
}

// truncateRunes returns s cut to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

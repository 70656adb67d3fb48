package rag

import (
	"strings"

	"github.com/lakshitcodes/DocuMed/internal/paper"
	"github.com/lakshitcodes/DocuMed/internal/vectorindex"
)

const referencedPapersHeading = "referenced papers"

// citations returns the papers behind hits, one per (title, source), in
// retrieval order. Papers the model named in cited move to the front in the
// model's order. Cited titles that match no retrieved paper are ignored.
func citations(hits []vectorindex.Hit, cited []string) []paper.Ref {
	seen := make(map[string]struct{}, len(hits))
	papers := make([]paper.Ref, 0, len(hits))
	for _, hit := range hits {
		key := hit.Meta.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		papers = append(papers, hit.Meta)
	}

	if len(cited) == 0 || len(papers) < 2 {
		return papers
	}

	moved := make([]bool, len(papers))
	ordered := make([]paper.Ref, 0, len(papers))
	for _, line := range cited {
		if i := matchCited(line, papers, moved); i >= 0 {
			moved[i] = true
			ordered = append(ordered, papers[i])
		}
	}
	for i, p := range papers {
		if !moved[i] {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// matchCited returns the index of the not yet moved paper whose normalized
// title appears in line. The longest matching title wins.
func matchCited(line string, papers []paper.Ref, moved []bool) int {
	normLine := " " + normalizeTitle(line) + " "
	if strings.TrimSpace(normLine) == "" {
		return -1
	}

	best, bestLen := -1, 0
	for i, p := range papers {
		if moved[i] {
			continue
		}
		title := normalizeTitle(p.Title)
		if title == "" {
			continue
		}
		if strings.Contains(normLine, " "+title+" ") && len(title) > bestLen {
			best, bestLen = i, len(title)
		}
	}
	return best
}

// referencedTitles returns the non-empty lines of the "Referenced Papers"
// section, if the model produced one.
func referencedTitles(sections []Section) []string {
	for _, s := range sections {
		if normalizeHeading(s.Heading) != referencedPapersHeading {
			continue
		}
		var lines []string
		for _, line := range strings.Split(s.Body, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		return lines
	}
	return nil
}

func normalizeHeading(heading string) string {
	return strings.Join(tokenize(heading), " ")
}

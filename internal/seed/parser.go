// Package seed populates the vocabulary catalog from external sources.
//
// The plain-text format: a "Group N" line starts group N; a line beginning
// with a term followed by whitespace and a definition opens a new word;
// lines starting with "N." or "(" continue the previous definition; inline
// "1. ... 2. ..." definitions are split onto separate lines. Sources without
// group markers are chunked into fixed-size groups. Malformed lines are
// skipped with a warning, never a hard failure.
package seed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Entry is one parsed word before it reaches the catalog.
type Entry struct {
	Term       string
	Definition string
	GroupID    int
}

// ParseResult carries the parsed entries plus the per-line warnings that
// were recovered locally.
type ParseResult struct {
	Entries  []Entry
	Warnings []string
}

// Parser reads the plain-text seed format.
type Parser struct {
	// GroupSize chunks entries into groups of this size when the source has
	// no explicit "Group N" markers. <= 0 falls back to a single group.
	GroupSize int
}

// Parse consumes the whole source. Only I/O failures return an error;
// malformed content is reported through ParseResult.Warnings.
func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}

	var (
		currentTerm string
		currentDef  strings.Builder
		groupID     int
		sawMarker   bool
		lineNo      int
	)

	flush := func() {
		if currentTerm == "" {
			return
		}
		result.Entries = append(result.Entries, Entry{
			Term:       currentTerm,
			Definition: strings.TrimSpace(currentDef.String()),
			GroupID:    groupID,
		})
		currentTerm = ""
		currentDef.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "Group") {
			flush()
			fields := strings.Fields(line)
			id, err := strconv.Atoi(fields[len(fields)-1])
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("line %d: invalid group marker %q", lineNo, line))
				continue
			}
			groupID = id
			sawMarker = true
			continue
		}

		// "N." continuation of the previous definition
		if startsWithDigit(line) && strings.Contains(line, ".") {
			if currentTerm == "" {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("line %d: continuation without a word: %q", lineNo, line))
				continue
			}
			_, rest, _ := strings.Cut(line, ".")
			appendDefLine(&currentDef, strings.TrimSpace(rest))
			continue
		}

		// "(...)" continuation of the previous definition
		if strings.HasPrefix(line, "(") {
			if currentTerm == "" {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("line %d: continuation without a word: %q", lineNo, line))
				continue
			}
			appendDefLine(&currentDef, line)
			continue
		}

		// New word
		flush()
		term, rest, _ := strings.Cut(line, " ")
		if strings.TrimSpace(rest) == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: word %q has no definition", lineNo, term))
			continue
		}
		currentTerm = term
		currentDef.WriteString(splitInlineDefinitions(strings.TrimSpace(rest)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed source: %w", err)
	}
	flush()

	if !sawMarker {
		p.chunkGroups(result.Entries)
	}
	return result, nil
}

// chunkGroups assigns groups 1..N by fixed chunk size to sources that carry
// no explicit markers.
func (p *Parser) chunkGroups(entries []Entry) {
	size := p.GroupSize
	if size <= 0 {
		size = len(entries)
	}
	for i := range entries {
		entries[i].GroupID = i/size + 1
	}
}

func startsWithDigit(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsDigit(r[0])
}

func appendDefLine(b *strings.Builder, line string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(line)
}

// splitInlineDefinitions turns "1. strict and stern 2. lacking luxury" into
// one definition per line, leaving unnumbered text untouched.
func splitInlineDefinitions(input string) string {
	var result, current strings.Builder
	runes := []rune(input)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			if result.Len() > 0 {
				result.WriteString("\n")
			}
			result.WriteString(s)
		}
		current.Reset()
	}

	for i := 0; i < len(runes); i++ {
		if unicode.IsDigit(runes[i]) && i+1 < len(runes) && runes[i+1] == '.' {
			i++
			flush()
			continue
		}
		current.WriteRune(runes[i])
	}
	flush()
	return result.String()
}

// Package parser provides argument, date and time parsing for Career OS.
package parser

import (
	"regexp"
	"strings"

	"github.com/manav03panchal/careeros/internal/model"
)

// BlockArgs holds a schedule block parsed from command arguments.
type BlockArgs struct {
	Day      int
	Start    string
	End      string
	Category model.Category
	Title    string
	Details  string
}

// Block converts the arguments to an unsaved schedule block.
func (b *BlockArgs) Block() *model.ScheduleBlock {
	return &model.ScheduleBlock{
		Day:      b.Day,
		Start:    b.Start,
		End:      b.End,
		Category: b.Category,
		Title:    b.Title,
		Details:  b.Details,
	}
}

// rangeKeywords join two times of day.
var rangeKeywords = map[string]bool{"to": true, "until": true, "till": true}

// noteRegex matches 'with note "..."' or "with note '...'" patterns.
var noteRegex = regexp.MustCompile(`(?i)with\s+note\s+['"]([^'"]+)['"]`)

// ParseBlock parses "DAY START-END CATEGORY TITLE... [with note '...']".
// The range may also be written "START to END".
func ParseBlock(args []string) (*BlockArgs, error) {
	input := strings.Join(args, " ")
	out := &BlockArgs{}

	if match := noteRegex.FindStringSubmatch(input); match != nil {
		out.Details = match[1]
		input = noteRegex.ReplaceAllString(input, "")
	}

	tokens := tokenize(input)
	if len(tokens) < 4 {
		return nil, NewBlockError(input, "expected day, time range, category and title")
	}

	day, err := model.ParseDay(tokens[0])
	if err != nil {
		return nil, NewBlockError(tokens[0], "unknown day")
	}
	out.Day = day
	rest := tokens[1:]

	if strings.Contains(rest[0], "-") {
		out.Start, out.End, err = ParseClockRange(rest[0])
		rest = rest[1:]
	} else if len(rest) >= 3 && rangeKeywords[strings.ToLower(rest[1])] {
		if out.Start, err = ParseClock(rest[0]); err == nil {
			out.End, err = ParseClock(rest[2])
		}
		rest = rest[3:]
	} else {
		return nil, NewBlockError(input, "expected a time range like 06:00-07:00")
	}
	if err != nil {
		return nil, err
	}

	if len(rest) < 2 {
		return nil, NewBlockError(input, "expected category and title after the time range")
	}
	out.Category, err = model.ParseCategory(rest[0])
	if err != nil {
		return nil, NewBlockError(rest[0], "unknown category")
	}
	out.Title = strings.Join(rest[1:], " ")

	return out, nil
}

// tokenize splits input into tokens, preserving quoted strings.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range input {
		if (r == '"' || r == '\'') && !inQuote {
			inQuote = true
			quoteChar = r
			continue
		}
		if r == quoteChar && inQuote {
			inQuote = false
			quoteChar = 0
			continue
		}
		if r == ' ' && !inQuote {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

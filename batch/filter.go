package batch

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// matcher selects which mbox messages enter the conversion pipeline based
// on regex patterns applied to the header block. Include and exclude modes
// are mutually exclusive.
type matcher struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func newMatcher(include, exclude []string) (*matcher, error) {
	compiledInclude, err := compilePatterns(include)
	if err != nil {
		return nil, fmt.Errorf("compile include-header pattern: %w", err)
	}
	compiledExclude, err := compilePatterns(exclude)
	if err != nil {
		return nil, fmt.Errorf("compile exclude-header pattern: %w", err)
	}

	if len(compiledInclude) > 0 && len(compiledExclude) > 0 {
		return nil, fmt.Errorf("include and exclude filters are mutually exclusive")
	}

	return &matcher{include: compiledInclude, exclude: compiledExclude}, nil
}

// allows applies the patterns against the message's header block.
func (m *matcher) allows(raw []byte) bool {
	if len(m.include) == 0 && len(m.exclude) == 0 {
		return true
	}

	header := string(headerBlock(raw))

	if len(m.include) > 0 {
		return matchAny(m.include, header)
	}
	return !matchAny(m.exclude, header)
}

// headerBlock returns everything up to the first blank line.
func headerBlock(raw []byte) []byte {
	if idx := bytes.Index(raw, []byte("\r\n\r\n")); idx >= 0 {
		return raw[:idx]
	}
	if idx := bytes.Index(raw, []byte("\n\n")); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

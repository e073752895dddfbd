package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filterFixture = "From: Asterisk PBX <vm@pbx>\n" +
	"To: alice@example.com\n" +
	"Subject: New voicemail from 555-0100\n" +
	"\n" +
	"Body mentioning bob@example.com should not match header filters.\n"

func TestMatcherNoPatternsAllowsEverything(t *testing.T) {
	m, err := newMatcher(nil, nil)
	require.NoError(t, err)
	assert.True(t, m.allows([]byte(filterFixture)))
}

func TestMatcherInclude(t *testing.T) {
	m, err := newMatcher([]string{`To: alice@`}, nil)
	require.NoError(t, err)
	assert.True(t, m.allows([]byte(filterFixture)))

	m, err = newMatcher([]string{`To: carol@`}, nil)
	require.NoError(t, err)
	assert.False(t, m.allows([]byte(filterFixture)))
}

func TestMatcherExclude(t *testing.T) {
	m, err := newMatcher(nil, []string{`Subject: New voicemail`})
	require.NoError(t, err)
	assert.False(t, m.allows([]byte(filterFixture)))

	m, err = newMatcher(nil, []string{`Subject: Spam`})
	require.NoError(t, err)
	assert.True(t, m.allows([]byte(filterFixture)))
}

func TestMatcherOnlySeesHeaderBlock(t *testing.T) {
	m, err := newMatcher([]string{`bob@example\.com`}, nil)
	require.NoError(t, err)
	assert.False(t, m.allows([]byte(filterFixture)))
}

func TestMatcherModesAreMutuallyExclusive(t *testing.T) {
	_, err := newMatcher([]string{`a`}, []string{`b`})
	assert.Error(t, err)
}

func TestMatcherRejectsBadPattern(t *testing.T) {
	_, err := newMatcher([]string{`([`}, nil)
	assert.Error(t, err)
}

func TestMatcherSkipsBlankPatterns(t *testing.T) {
	m, err := newMatcher([]string{"", "  "}, nil)
	require.NoError(t, err)
	assert.True(t, m.allows([]byte(filterFixture)))
}

func TestHeaderBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lf separator", raw: "A: 1\nB: 2\n\nbody", want: "A: 1\nB: 2"},
		{name: "crlf separator", raw: "A: 1\r\nB: 2\r\n\r\nbody", want: "A: 1\r\nB: 2"},
		{name: "no separator", raw: "A: 1\nB: 2\n", want: "A: 1\nB: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(headerBlock([]byte(tt.raw))))
		})
	}
}

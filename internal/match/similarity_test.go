package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	claim := "Our org served 5,000 people in 2023."
	source := "We served 5,000 people in 2023 (Impact Report)."

	// 5 shared tokens over a union of 10
	assert.Equal(t, 0.5, Jaccard(claim, source))
	assert.Equal(t, Jaccard(claim, source), Jaccard(source, claim), "symmetric")
	assert.Equal(t, 1.0, Jaccard("Same words here", "same WORDS here!"))
	assert.Equal(t, 0.0, Jaccard("", ""))
	assert.Equal(t, 0.0, Jaccard("...", "words"))
	assert.Equal(t, 0.0, Jaccard("alpha beta", "gamma delta"))
}

func TestTokens(t *testing.T) {
	got := Tokens(`"Impact" (Report), 5,000 people's 40%`)
	want := map[string]bool{"impact": true, "report": true, "5,000": true, "people's": true, "40": true}
	assert.Equal(t, want, got)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("We served 5,000 people in 2023.", "we served 5,000   people."))
	assert.False(t, Contains("We served 5,000 people in 2023.", "We served 6,000 people."))
	assert.False(t, Contains("anything", "..."))
}

package consult

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  Topic
	}{
		{"Please review my architecture", TopicReview},
		{"Can you ANALYZE this module?", TopicReview},
		{"why is this slow", TopicOptimization},
		{"find the bottleneck in my pipeline", TopicOptimization},
		{"secure system design", TopicArchitecture},
		{"how should I structure packages", TopicArchitecture},
		{"I have a weird bug", TopicDebugging},
		{"an error keeps showing up", TopicDebugging},
		{"is this vulnerability exploitable", TopicSecurity},
		{"how secure is JWT", TopicSecurity},
		{"hello there", TopicGeneral},
		{"", TopicGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassifyMatchesSubstrings(t *testing.T) {
	// "debugging" contains "debug"; "systems" contains "system".
	assert.Equal(t, TopicDebugging, Classify("debugging tips"))
	assert.Equal(t, TopicArchitecture, Classify("distributed systems"))
	// "insecure" contains "secure".
	assert.Equal(t, TopicSecurity, Classify("insecure cookies"))
}

func TestRouteUsesTopicTemplate(t *testing.T) {
	tests := []struct {
		query   string
		heading string
	}{
		{"Please review my architecture", "# Strategic Code Quality Assessment"},
		{"secure system design", "# Software Architecture Strategy Consultation"},
		{"why is this slow", "# Performance Optimization Strategy"},
		{"I found a bug", "# Systematic Debugging Strategy Consultation"},
		{"vulnerability scan", "# Security Strategy Consultation"},
		{"hello there", "# Software Engineering Strategic Consultation"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Route(tt.query)
			assert.Contains(t, got, tt.heading)
			assert.Contains(t, got, fmt.Sprintf("for: %q", tt.query))
			assert.Contains(t, got, "Recommendation**:")
		})
	}
}

func TestRouteIsDeterministic(t *testing.T) {
	for _, q := range []string{"review", "slow", "design", "error", "secure", "anything", "100% done?"} {
		assert.Equal(t, Route(q), Route(q), "query %q", q)
		assert.Equal(t, Template(Classify(q))(q), Route(q), "query %q", q)
	}
}

func TestTemplatesInterpolateLiterally(t *testing.T) {
	query := `50% of "requests" fail`
	for _, topic := range []Topic{TopicReview, TopicOptimization, TopicArchitecture, TopicDebugging, TopicSecurity, TopicGeneral} {
		out := Template(topic)(query)
		assert.Contains(t, out, `"`+query+`"`, "topic %s", topic)
		assert.NotContains(t, out, "%!", "topic %s", topic)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "# "), "topic %s", topic)
	}
}

func TestTemplateUnknownTopicIsGeneral(t *testing.T) {
	assert.Equal(t, generalTemplate("x"), Template(Topic("nope"))("x"))
}

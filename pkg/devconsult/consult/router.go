package consult

import "strings"

// Topic is the bucket a question falls into when no live answer is available.
type Topic string

const (
	TopicReview       Topic = "review"
	TopicOptimization Topic = "optimization"
	TopicArchitecture Topic = "architecture"
	TopicDebugging    Topic = "debugging"
	TopicSecurity     Topic = "security"
	TopicGeneral      Topic = "general"
)

type topicRule struct {
	topic    Topic
	keywords []string
}

// topicRules are scanned in order; the first rule with a matching keyword wins.
// "secure system design" is architecture because rule 3 precedes rule 5.
var topicRules = []topicRule{
	{TopicReview, []string{"review", "analyze", "assessment"}},
	{TopicOptimization, []string{"optimize", "performance", "slow", "bottleneck"}},
	{TopicArchitecture, []string{"architecture", "design", "structure", "system"}},
	{TopicDebugging, []string{"debug", "error", "bug", "issue", "problem"}},
	{TopicSecurity, []string{"security", "vulnerability", "secure"}},
}

// Classify returns the topic of a question using case-insensitive substring
// matching. Unmatched questions are TopicGeneral.
func Classify(query string) Topic {
	q := strings.ToLower(query)
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.topic
			}
		}
	}
	return TopicGeneral
}

// Route returns the templated consultation for a question.
func Route(query string) string {
	return Template(Classify(query))(query)
}

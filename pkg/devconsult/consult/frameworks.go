package consult

import (
	"fmt"
	"strings"
)

// frameworks are one-line consultation outlines served as MCP resources.
var frameworks = map[string]string{
	"architecture": "Strategic Architecture Assessment Framework: Current State → Future Vision → Migration Strategy → Risk Mitigation",
	"performance":  "Performance Optimization Framework: Measurement → Bottleneck Analysis → Solution Strategy → Implementation Planning",
	"security":     "Security Strategy Framework: Threat Assessment → Risk Analysis → Control Implementation → Monitoring Strategy",
	"quality":      "Code Quality Framework: Standards Definition → Assessment Metrics → Improvement Strategy → Process Integration",
	"scaling":      "Scalability Framework: Capacity Analysis → Growth Planning → Technology Strategy → Implementation Roadmap",
}

// Framework returns the outline for topic (case-insensitive), or a generic
// heading naming the topic.
func Framework(topic string) string {
	if f, ok := frameworks[strings.ToLower(topic)]; ok {
		return f
	}
	return fmt.Sprintf("Comprehensive Software Engineering Consultation Framework for %s", topic)
}

// FrameworkTopics lists the topics with a dedicated outline.
func FrameworkTopics() []string {
	return []string{"architecture", "performance", "security", "quality", "scaling"}
}

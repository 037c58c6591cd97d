package enhance

import (
	"fmt"
	"strings"
)

const (
	preamble = "Create a comprehensive and detailed response for the following:\n\n"
	closing  = "\nPlease provide a thorough, professional response that addresses all the requirements outlined above."
)

type template struct {
	heading      string // empty for Generic
	field        string
	requirements string
	reqLines     []string
	outputs      string
	outLines     []string
}

var templates = map[Category]template{
	Marketing: {
		heading:      "Marketing Campaign Brief",
		field:        "Objective",
		requirements: "Requirements",
		reqLines: []string{
			"Target Audience: Define the primary and secondary audiences",
			"Key Messages: Outline 3-5 core messages to communicate",
			"Channels: Specify digital and traditional marketing channels",
			"Timeline: Provide a phased rollout plan",
			"Budget Considerations: Suggest cost-effective strategies",
			"Success Metrics: Define KPIs and measurement methods",
		},
		outputs: "Deliverables",
		outLines: []string{
			"Creative concepts with visual descriptions",
			"Sample copy for key materials",
			"Social media strategy and content calendar outline",
			"Competitive analysis insights",
		},
	},
	Software: {
		heading:      "Software Development Specification",
		field:        "Project",
		requirements: "Technical Requirements",
		reqLines: []string{
			"Core Functionality: Detail the primary features and user workflows",
			"Technology Stack: Recommend appropriate frameworks and tools",
			"Architecture: Describe the system design and component structure",
			"Data Model: Define entities, relationships, and storage requirements",
			"Security: Outline authentication, authorization, and data protection",
			"Performance: Specify scalability and optimization needs",
		},
		outputs: "Implementation Plan",
		outLines: []string{
			"Phase 1: MVP features and core functionality",
			"Phase 2: Enhanced features and integrations",
			"Testing Strategy: Unit, integration, and user acceptance testing",
			"Deployment: CI/CD pipeline and hosting considerations",
		},
	},
	Business: {
		heading:      "Business Strategy Document",
		field:        "Focus Area",
		requirements: "Strategic Framework",
		reqLines: []string{
			"Current State Analysis: Assess existing situation and challenges",
			"Objectives: Define clear, measurable goals (SMART framework)",
			"Target Market: Identify and profile key customer segments",
			"Value Proposition: Articulate unique competitive advantages",
			"Action Plan: Break down strategies into actionable initiatives",
			"Resources: Identify required budget, team, and tools",
		},
		outputs: "Execution Roadmap",
		outLines: []string{
			"Short-term wins (0-3 months)",
			"Medium-term goals (3-12 months)",
			"Long-term vision (1-3 years)",
			"Risk mitigation strategies",
			"Performance monitoring dashboard",
		},
	},
	Content: {
		heading:      "Content Creation Brief",
		field:        "Topic",
		requirements: "Content Specifications",
		reqLines: []string{
			"Audience: Define reader demographics and expertise level",
			"Tone and Style: Specify voice (formal/casual, technical/accessible)",
			"Structure: Outline sections and flow (intro, body, conclusion)",
			"Length: Target word count and depth of coverage",
			"SEO: Identify primary and secondary keywords",
			"Call-to-Action: Define desired reader response",
		},
		outputs: "Content Elements",
		outLines: []string{
			"Compelling headline and subheadings",
			"Key points and supporting arguments",
			"Examples, case studies, or data points",
			"Visual suggestions (images, infographics, videos)",
			"Links to relevant resources",
		},
	},
	Generic: {
		field:        "Task",
		requirements: "Detailed Requirements",
		reqLines: []string{
			"Context and Background: Provide relevant background information",
			"Specific Objectives: Clearly state what needs to be achieved",
			"Key Considerations: Identify important factors to address",
			"Constraints: Note any limitations or boundaries",
			"Success Criteria: Define what a successful outcome looks like",
			"Format and Style: Specify preferred output format",
		},
		outputs: "Expected Output",
		outLines: []string{
			"Comprehensive and well-structured response",
			"Clear explanations with examples where appropriate",
			"Actionable recommendations or next steps",
			"Professional and engaging presentation",
		},
	},
}

// Render fills the category's template with originalText. The text is
// interpolated as-is. Unknown categories render with the Generic template.
func Render(category Category, originalText string) string {
	t, ok := templates[category]
	if !ok {
		t = templates[Generic]
	}

	var b strings.Builder
	b.WriteString(preamble)
	if t.heading != "" {
		b.WriteString(t.heading + ":\n")
	}
	b.WriteString(t.field + ": " + originalText + "\n\n")

	b.WriteString(t.requirements + ":\n")
	for i, line := range t.reqLines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	b.WriteString("\n")

	b.WriteString(t.outputs + ":\n")
	for _, line := range t.outLines {
		b.WriteString("- " + line + "\n")
	}

	b.WriteString(closing)
	return b.String()
}

// Enhance classifies text and renders the matching template.
func Enhance(text string) (Category, string) {
	category := Classify(text)
	return category, Render(category, text)
}

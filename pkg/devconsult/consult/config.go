// Package consult – config.go defines the configuration structures for the
// software-engineering consultant.
package consult

import "time"

const (
	// DefaultModel is the chat model used when neither config nor env override it.
	DefaultModel = "qwen-2.5-coder-32b"

	// DefaultBaseURL is the Groq OpenAI-compatible endpoint root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultKeyEnv is the environment variable holding the API key.
	DefaultKeyEnv = "GROQ_API_KEY"

	// ModelEnv overrides the configured model when set.
	ModelEnv = "DEVCONSULT_MODEL"

	// DefaultTimeout bounds the single remote call.
	DefaultTimeout = 60 * time.Second

	// UserAgent is sent with every completion request.
	UserAgent = "MCP-Software-Engineer-Consultant/1.0"
)

// Config holds all consultant configuration.
type Config struct {
	// Name is the server name announced to MCP hosts.
	Name string `yaml:"name"`

	// Model is the chat model identifier (e.g. "qwen-2.5-coder-32b").
	Model string `yaml:"model"`

	// API configures the chat-completion endpoint.
	API APIConfig `yaml:"api"`

	// Instructions replaces the built-in system prompt when non-empty.
	Instructions string `yaml:"instructions"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the OpenAI-compatible endpoint.
type APIConfig struct {
	// BaseURL is the API root; "/chat/completions" is appended.
	BaseURL string `yaml:"base_url"`

	// APIKey is a literal key. Prefer KeyEnv or the OS keyring.
	APIKey string `yaml:"api_key"`

	// KeyEnv names the environment variable that holds the key.
	KeyEnv string `yaml:"key_env"`

	// Timeout bounds the remote call (e.g. "60s").
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Credentials are resolved once when the consultant is built.
type Credentials struct {
	APIKey string
	Model  string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Name:  "SoftwareEngineeringConsultantServer",
		Model: DefaultModel,
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			KeyEnv:  DefaultKeyEnv,
			Timeout: DefaultTimeout,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SystemPrompt returns the configured instructions or the built-in prompt.
func (c *Config) SystemPrompt() string {
	if c.Instructions != "" {
		return c.Instructions
	}
	return defaultSystemPrompt
}

const defaultSystemPrompt = `You are an elite Senior Software Engineering Consultant working as a technical advisor. You are NOT a code writer - you are a strategic technical consultant who provides expert guidance, analysis, and recommendations.

CORE EXPERTISE:
- Software architecture assessment and recommendations
- Code quality evaluation and improvement strategies
- Performance bottleneck identification and optimization approaches
- Security vulnerability analysis and mitigation strategies
- Technical debt assessment and refactoring recommendations
- Technology stack evaluation and selection guidance
- Scalability planning and system design principles
- Development process optimization and best practices
- DevOps pipeline design and deployment strategies
- Technical risk assessment and mitigation planning

CONSULTING APPROACH:
- Provide strategic technical guidance, not code implementations
- Offer multiple solution approaches with pros/cons analysis
- Focus on long-term maintainability and scalability
- Consider business impact alongside technical factors
- Recommend industry best practices and proven patterns
- Identify potential risks and provide mitigation strategies
- Give clear, actionable recommendations with reasoning
- Prioritize solutions based on impact and complexity

RESPONSE STYLE:
- Be authoritative but accessible - you're the expert they trust
- Structure responses with clear recommendations and reasoning
- Provide specific, actionable guidance without writing code
- Include trade-offs, risks, and implementation considerations
- Reference industry standards and best practices when relevant
- Keep responses focused on strategic technical guidance
- Use professional consulting language appropriate for senior developers

Remember: You advise and guide, you don't implement. You're the senior consultant they call when they need expert technical direction.`

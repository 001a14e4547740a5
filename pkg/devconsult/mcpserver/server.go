// Package mcpserver exposes the consultant to MCP hosts (IDEs, desktop
// assistants) over the stdio transport.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jholhewres/devconsult/pkg/devconsult/consult"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

const (
	askToolName          = "ask_software_engineer"
	consultationTemplate = "consultation://{topic}"
	consultationScheme   = "consultation://"
)

// Asker is the part of the consultant the tool needs.
type Asker interface {
	Ask(ctx context.Context, query string) string
}

// New creates the MCP server with the consultation tool and the framework
// resources registered.
func New(name string, asker Asker, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	ask := NewAskTool(asker, logger)
	s.AddTool(ask.Definition(), ask.Handle)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			consultationTemplate,
			"Consultation framework",
			mcp.WithTemplateDescription("Strategic framework outline for a software engineering consultation topic"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		handleFramework,
	)

	return s
}

// Serve runs the stdio transport until ctx is cancelled or in is closed.
// Nothing but JSON-RPC may be written to out.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *slog.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

// ---------- Tool ----------

// AskTool answers a software engineering question.
type AskTool struct {
	asker  Asker
	logger *slog.Logger
}

// NewAskTool creates the ask_software_engineer tool.
func NewAskTool(asker Asker, logger *slog.Logger) *AskTool {
	return &AskTool{asker: asker, logger: logger.With("component", "mcp", "tool", askToolName)}
}

// Definition returns the MCP tool schema.
func (t *AskTool) Definition() mcp.Tool {
	return mcp.NewTool(askToolName,
		mcp.WithDescription(askToolDescription),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The software engineering challenge, architecture question, or technical strategy topic requiring expert consultation."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle runs one consultation. Only a missing prompt is reported as a tool
// error; any provided string, blank included, gets an answer.
func (t *AskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("prompt is required"), nil
	}

	t.logger.Info("processing consultation", "prompt", truncate(prompt, 80))
	return mcp.NewToolResultText(t.asker.Ask(ctx, prompt)), nil
}

// ---------- Resources ----------

func handleFramework(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	topic := strings.TrimPrefix(req.Params.URI, consultationScheme)
	if topic == "" || topic == req.Params.URI {
		return nil, fmt.Errorf("invalid consultation URI %q", req.Params.URI)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     consult.Framework(topic),
		},
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

const serverInstructions = `This server offers a senior software engineering consultant.
Call ask_software_engineer with a question about architecture, code quality,
performance, security, debugging or engineering strategy. Answers are strategic
guidance, not code. Read consultation://{topic} (architecture, performance,
security, quality, scaling) for a one-line framework outline.`

const askToolDescription = `Consults an elite software engineering advisor for expert technical guidance.
The advisor acts as a senior technical consultant specializing in strategic
software engineering advice, architecture decisions, performance optimization,
security strategies, and technical leadership guidance.

The consultant provides:
- Strategic technical guidance and architecture recommendations
- Code quality assessment frameworks and improvement strategies
- Performance optimization strategies and bottleneck analysis
- Security consulting and risk assessment approaches
- Technical debt evaluation and refactoring recommendations
- Development process optimization and best practices
- Technology selection guidance and trade-off analysis

This is a consulting service: it provides expert advice and strategic guidance,
not code implementation.`

package service

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/timeutil"
)

//go:embed templates/report.md
var templates embed.FS

var reportTemplate = template.Must(
	template.New("report.md").
		Funcs(template.FuncMap{"num": stats.Format}).
		ParseFS(templates, "templates/report.md"),
)

// Report styles accepted by Render.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// ReportService renders summaries as markdown
type ReportService struct {
	stats *StatsService
}

// NewReportService creates a new ReportService
func NewReportService(stats *StatsService) *ReportService {
	return &ReportService{stats: stats}
}

// Markdown builds the markdown report for r.
func (s *ReportService) Markdown(r timeutil.Range) (string, error) {
	summary, err := s.stats.ForRange(r)
	if err != nil {
		return "", err
	}
	return MarkdownFor(summary)
}

// MarkdownFor renders an already computed summary.
func MarkdownFor(summary *Summary) (string, error) {
	var b strings.Builder
	if err := reportTemplate.Execute(&b, summary); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return b.String(), nil
}

// Render formats markdown for the terminal with glamour.
// width <= 0 disables word wrapping.
func Render(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style {
	case "", StyleAuto:
		opts = append(opts, glamour.WithAutoStyle())
	case StyleDark, StyleLight, StyleNoTTY:
		opts = append(opts, glamour.WithStandardStyle(style))
	default:
		return "", fmt.Errorf("unknown report style %q (valid: auto, dark, light, notty)", style)
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render(markdown)
}

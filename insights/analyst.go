package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/delaynomics/delaynomics-api/analytics"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/pkg/logger"
)

// DisabledMarkdown is served in place of model output whenever no API
// key is configured. It is never an error: the dashboard renders it as
// ordinary content.
const DisabledMarkdown = "**AI Insights Unavailable**\n\n" +
	"Set the `GEMINI_API_KEY` environment variable to enable AI-powered insights.\n\n" +
	"**How to enable:**\n" +
	"1. Get an API key from https://makersuite.google.com/app/apikey\n" +
	"2. Add `GEMINI_API_KEY=your-key-here` to your `.env` file\n" +
	"3. Restart the server"

// Analyst produces markdown commentary, degrading to canned output when
// the model is unreachable so the dashboard never renders an error.
type Analyst struct {
	client *Client
}

// NewAnalyst wraps a Gemini client.
func NewAnalyst(client *Client) *Analyst {
	return &Analyst{client: client}
}

// Enabled reports whether live generation is possible.
func (a *Analyst) Enabled() bool { return a.client.Enabled() }

// Result carries generated markdown and whether it came from the model
// or from the deterministic fallback.
type Result struct {
	Markdown  string `json:"markdown"`
	Generated bool   `json:"generated"`
}

// Insights returns three headline takeaways for the carrier table.
// Model failures are logged and answered with a basic computed summary.
func (a *Analyst) Insights(ctx context.Context, airlines []dataset.AirlineSummary) Result {
	if !a.client.Enabled() {
		return Result{Markdown: DisabledMarkdown}
	}
	text, err := a.client.Generate(ctx, InsightsPrompt(airlines))
	if err != nil {
		logger.Warn("insights generation failed, using fallback", "error", err)
		return Result{Markdown: fallbackInsights(airlines, err)}
	}
	return Result{Markdown: strings.TrimSpace(text), Generated: true}
}

// Answer responds to a free-form question grounded in the loaded
// summaries. Unlike Insights it surfaces errors to the caller, since a
// chat endpoint with no model behind it has nothing useful to say.
func (a *Analyst) Answer(ctx context.Context, question string, airlines []dataset.AirlineSummary, airports []dataset.AirportSummary, weekdays []analytics.WeekdayStat) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("empty question")
	}
	if !a.client.Enabled() {
		return "", ErrNoAPIKey
	}
	text, err := a.client.Generate(ctx, ChatPrompt(question, airlines, airports, weekdays))
	if err != nil {
		return "", err
	}
	return "**Answer:**\n\n" + strings.TrimSpace(text), nil
}

func fallbackInsights(airlines []dataset.AirlineSummary, cause error) string {
	best := analytics.BestByCostPerMile(airlines, 1)
	worst := analytics.WorstByCostPerMile(airlines, 1)
	if len(best) == 0 || len(worst) == 0 {
		return DisabledMarkdown
	}

	var b strings.Builder
	b.WriteString("**AI temporarily unavailable** - showing basic analysis instead:\n\n")
	fmt.Fprintf(&b, "1. **Best Performer**: %s with $%.2f per mile (%.1f%% delay rate)\n\n",
		best[0].Carrier, best[0].AvgCostPerMile, best[0].DelayRate*100)
	fmt.Fprintf(&b, "2. **Worst Performer**: %s with $%.2f per mile (%.1f%% delay rate)\n\n",
		worst[0].Carrier, worst[0].AvgCostPerMile, worst[0].DelayRate*100)
	b.WriteString("3. **Tip**: Check the charts below for detailed comparisons across all carriers.\n\n")
	fmt.Fprintf(&b, "*Error details: %v*", cause)
	return b.String()
}

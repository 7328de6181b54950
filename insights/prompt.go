package insights

import (
	"fmt"
	"strings"

	"github.com/anyascii/go"

	"github.com/delaynomics/delaynomics-api/analytics"
	"github.com/delaynomics/delaynomics-api/dataset"
)

const (
	bestPerformers  = 5
	worstPerformers = 3
	chatAirports    = 10
)

// InsightsPrompt asks for exactly three one-sentence takeaways from the
// best and worst carriers ranked by cost per mile.
func InsightsPrompt(airlines []dataset.AirlineSummary) string {
	best := analytics.BestByCostPerMile(airlines, bestPerformers)
	worst := analytics.WorstByCostPerMile(airlines, worstPerformers)

	var b strings.Builder
	b.WriteString("Analyze this airline data and provide exactly 3 brief insights:\n\n")
	b.WriteString("Best performers:\n")
	writeCarrierTable(&b, best)
	b.WriteString("\nWorst performers:\n")
	writeCarrierTable(&b, worst)
	b.WriteString("\nWrite exactly 3 points (1 sentence each):\n")
	b.WriteString("1. Best airline and why\n")
	b.WriteString("2. Worst airline and why\n")
	b.WriteString("3. One key travel tip\n\n")
	b.WriteString("Be brief and use specific numbers from the data.")
	return b.String()
}

// ChatPrompt embeds the full carrier table, the worst airports, and the
// weekday statistics as grounding context for a free-form question. The
// question is transliterated to ASCII so pasted smart quotes and
// non-Latin punctuation do not leak into the request.
func ChatPrompt(question string, airlines []dataset.AirlineSummary, airports []dataset.AirportSummary, weekdays []analytics.WeekdayStat) string {
	question = strings.TrimSpace(anyascii.Transliterate(question))

	var b strings.Builder
	b.WriteString("You are a flight delay data analyst. Answer this question based ONLY on the data provided below.\n\n")
	fmt.Fprintf(&b, "USER QUESTION: %s\n\n", question)

	b.WriteString("AIRLINE PERFORMANCE DATA:\n")
	for _, a := range airlines {
		fmt.Fprintf(&b, "%s  cost_per_mile=$%.2f  avg_delay_min=%.1f  delay_rate=%.1f%%  flights=%d\n",
			a.Carrier, a.AvgCostPerMile, a.AvgDelayMin, a.DelayRate*100, a.NumFlights)
	}

	b.WriteString("\nTOP 10 WORST AIRPORTS (by delay cost):\n")
	for _, ap := range analytics.TopAirportsByDelayCost(airports, chatAirports) {
		fmt.Fprintf(&b, "%s  avg_delay_cost=$%.2f  avg_delay_min=%.1f\n",
			ap.Airport, ap.AvgDelayCost, ap.AvgDelayMin)
	}

	if len(weekdays) > 0 {
		b.WriteString("\nDAY OF WEEK STATISTICS:\n")
		for _, d := range weekdays {
			fmt.Fprintf(&b, "%s  avg_arr_delay=%.1f  avg_delay_cost=$%.2f  delay_rate=%.1f%%\n",
				d.Day, d.AvgArrDelay, d.AvgCost, d.DelayRate*100)
		}
	}

	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("- Provide a clear, data-driven answer with specific numbers from the data above\n")
	b.WriteString("- Use carrier codes (AA, DL, etc.) and reference actual metrics\n")
	b.WriteString("- If the question asks about something not in the data, answer only if it is related to the data provided. Use your insights, but mention if your answer is not entirely based on the provided data.\n")
	b.WriteString("- Be concise but thorough (2-4 sentences)\n")
	b.WriteString("- Format your response in markdown\n\n")
	b.WriteString("Answer:")
	return b.String()
}

func writeCarrierTable(b *strings.Builder, airlines []dataset.AirlineSummary) {
	for _, a := range airlines {
		fmt.Fprintf(b, "%s  cost_per_mile=$%.2f  avg_delay_min=%.1f  delay_rate=%.1f%%\n",
			a.Carrier, a.AvgCostPerMile, a.AvgDelayMin, a.DelayRate*100)
	}
}

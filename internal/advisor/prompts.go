package advisor

import (
	"fmt"
	"strings"
)

// The prompts ask the model for a single JSON object so the response can be
// decoded into the flow's output struct. Amounts are Indian Rupees.

func recommendationsPrompt(in RecommendationsInput) string {
	var b strings.Builder

	b.WriteString("You are a personal finance advisor helping users adjust their expenses to meet their financial goals.\n\n")
	fmt.Fprintf(&b, "The user has the following monthly income: ₹%.2f\n\n", in.Income)

	b.WriteString("The user has the following fixed expenses:\n")
	for _, e := range in.FixedExpenses {
		fmt.Fprintf(&b, "- %s: ₹%.2f\n", e.Name, e.Amount)
	}

	b.WriteString("\nThe user has the following financial goals:\n")
	for _, g := range in.Goals {
		if g.TimelineMonths > 0 {
			fmt.Fprintf(&b, "- %s: ₹%.2f in %d months\n", g.Name, g.TargetAmount, g.TimelineMonths)
		} else {
			fmt.Fprintf(&b, "- %s: ₹%.2f (₹%.2f per month)\n", g.Name, g.TargetAmount, g.MonthlyContribution)
		}
	}

	b.WriteString("\nThe user has the following current expenses:\n")
	for _, e := range in.CurrentExpenses {
		fmt.Fprintf(&b, "- %s: ₹%.2f\n", e.Category, e.Amount)
	}

	fmt.Fprintf(&b, "\nThe user has a daily discretionary spending limit of ₹%.2f.\n\n", in.DailySpendingLimit)

	b.WriteString(`Provide a list of specific and actionable recommendations on how the user can adjust their expenses to better meet their financial goals. Be mindful of the user's income, expenses, and goals. Do not recommend increasing income, only focus on decreasing expenses. Focus on the lowest hanging fruits. Only recommend small changes. Be concise. The recommendations should be in the Indian context, where possible.

Respond with a single JSON object of the form {"recommendations": ["...", "..."]} and nothing else.`)

	return b.String()
}

func alertPrompt(in AlertInput) string {
	var b strings.Builder

	b.WriteString("You are Kwik Kash's proactive financial analyst. Your job is to analyze a user's spending habits and provide a concise, actionable alert to help them improve.\n\n")
	writeFinancialProfile(&b, in.Income, in.Goals)
	writeSpendingHistory(&b, in.Expenses)

	b.WriteString(`## Your Task:
Identify the top 1-2 categories where the user spends the most and note any unusually high spending. Assess whether the spending is sustainable given their savings goals. Then generate a single, friendly, and encouraging alert that highlights a specific spending habit and connects it to a potential impact on a financial goal.

Good example: "Your spending on 'Food & Dining' has been 20% higher than average this week. Scaling this back just a little could help you reach your 'New Laptop' goal faster!"
Bad example: "You are spending too much money."

Respond with a single JSON object of the form {"alerts": "..."} and nothing else.`)

	return b.String()
}

func forecastPrompt(in ForecastInput) string {
	var b strings.Builder

	b.WriteString("You are Kwik Kash's proactive financial analyst. Your job is to analyze a user's spending habits, compare them against their income and goals, and provide a forward-looking spending limit and actionable alerts.\n\n")
	writeFinancialProfile(&b, in.Income, in.Goals)
	writeSpendingHistory(&b, in.Expenses)

	b.WriteString("## Seasonal Trends to Consider:\n")
	if in.SeasonalTrends != "" {
		b.WriteString(in.SeasonalTrends)
	} else {
		b.WriteString("none provided")
	}
	b.WriteString("\n\n")

	b.WriteString(`## Your Task:
1. Identify the top 3 categories where the user spends the most and note any unusually high spending days or categories.
2. Assess whether current spending is sustainable given the savings goals.
3. Calculate and recommend a safe daily spending limit for the upcoming week. This should be a specific number.
4. Generate a concise, actionable alert that highlights a specific spending habit and connects it to a potential impact on a financial goal.

Respond with a single JSON object of the form {"predicted_limit": "...", "alerts": "..."} and nothing else.`)

	return b.String()
}

func writeFinancialProfile(b *strings.Builder, income float64, goals []GoalPlan) {
	b.WriteString("## User's Financial Profile:\n")
	fmt.Fprintf(b, "- Monthly Income: ₹%.2f\n", income)
	b.WriteString("- Financial Goals:\n")
	for _, g := range goals {
		fmt.Fprintf(b, "  - Save for '%s' (Target: ₹%.2f, Monthly Contribution: ₹%.2f)\n",
			g.Name, g.TargetAmount, g.MonthlyContribution)
	}
	b.WriteString("\n")
}

func writeSpendingHistory(b *strings.Builder, expenses []ExpenseRecord) {
	b.WriteString("## User's Recent Spending History:\n")
	for _, e := range expenses {
		fmt.Fprintf(b, "- Date: %s, Category: %s, Amount: ₹%.2f\n", e.Date, e.Category, e.Amount)
	}
	b.WriteString("\n")
}

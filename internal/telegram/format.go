package telegram

import (
	"fmt"
	"strings"

	"recipe-planner/internal/app"
	"recipe-planner/internal/ingredient"
	"recipe-planner/internal/metrics"
	"recipe-planner/internal/shopping"
)

func formatIngredients(list []ingredient.Ingredient) string {
	if len(list) == 0 {
		return "You have no ingredients yet. Add one with /add_ingredient."
	}
	var sb strings.Builder
	sb.WriteString("🥕 Ingredients\n")
	for _, ing := range list {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", ing.Sort, ing.Name, ing.Unit)
	}
	return sb.String()
}

func formatLists(lists []shopping.Summary, active int64) string {
	if len(lists) == 0 {
		return "You have no shopping lists yet. Create one with /newlist."
	}
	var sb strings.Builder
	sb.WriteString("🛒 Shopping lists\n")
	for _, l := range lists {
		marker := ""
		if l.ID == active {
			marker = " ⭐"
		}
		fmt.Fprintf(&sb, "%d. %s: %d/%d checked%s\n", l.ID, l.Name, l.Checked, l.Ingredients, marker)
	}
	return sb.String()
}

// formatList renders the items in shop order with each source's share.
func formatList(list *shopping.ShoppingList) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 %s\n", list.Name)
	if len(list.Items) == 0 {
		sb.WriteString("Nothing on this list yet.\n")
		return sb.String()
	}
	for _, it := range list.Items {
		box := "⬜"
		if it.Checked {
			box = "☑️"
		}
		fmt.Fprintf(&sb, "%s %s: %d %s", box, it.Name, it.Total, it.Unit)
		if len(it.Entries) > 1 || (len(it.Entries) == 1 && !it.Entries[0].Source.IsManual()) {
			parts := make([]string, len(it.Entries))
			for i, e := range it.Entries {
				parts[i] = fmt.Sprintf("%d %s", e.Quantity, sourceLabel(e))
			}
			fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func sourceLabel(e shopping.QuantityEntry) string {
	if e.Source.IsManual() {
		return "manual"
	}
	if e.RecipeName != "" {
		return e.RecipeName
	}
	return e.Source.String()
}

func formatImport(res *app.ImportResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Recipe saved: %s (%d ingredients)\n", res.Recipe.Name, len(res.Recipe.Items))
	if len(res.Unmatched) > 0 {
		sb.WriteString("\nNot in your ingredients, skipped:\n")
		for _, line := range res.Unmatched {
			fmt.Fprintf(&sb, "• %s\n", line)
		}
	}
	return sb.String()
}

func formatMetrics(usage []metrics.DailyUsage, breakdown []metrics.OperationCount, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 Usage & Health Report\n\n")

	sb.WriteString("🗓 Recent activity\n")
	if len(usage) == 0 {
		sb.WriteString("No data yet\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• %s: %d operations, %d failed, avg %dms\n", d.Date, d.Operations, d.Failures, d.AvgLatencyMS)
	}

	if len(breakdown) > 0 {
		sb.WriteString("\n🔎 Outcomes (7 days)\n")
		for _, c := range breakdown {
			fmt.Fprintf(&sb, "• %s / %s: %d\n", c.Operation, c.Outcome, c.Count)
		}
	}

	sb.WriteString("\n🧠 System Health\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Uptime: %s\n", health.Uptime)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataDiskSize())
	return sb.String()
}

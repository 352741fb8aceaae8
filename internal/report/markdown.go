package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promotionbench/promotionbench/internal/scenario"
)

// Markdown renders a baseline as a shareable report.
func Markdown(b Baseline) string {
	var sb strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	w("# PromotionBench Simulation Report")
	w("")
	w("> **Run ID:** `%s`", b.RunID)
	w("> **Date:** %s", dateOnly(b.RunDate))
	w("> **Version:** %s", b.Version)
	w("> **Variant:** %s", b.Variant)
	w("> **Runtime:** %.1f minutes", b.TotalElapsedSeconds/60)
	w("")

	w("## 🎯 PB Score: %d/1000 — %s", b.PB.Total, b.PB.TierLabel)
	w("")
	w("> %s", b.PB.Interpretation)
	w("")
	w("| Pillar | Points | Max |")
	w("|--------|-------:|----:|")
	w("| Career Outcome | %d | 400 |", b.PB.CareerOutcome)
	w("| Integrity | %d | 200 |", b.PB.Integrity)
	w("| Influence | %d | 300 |", b.PB.Influence)
	w("| Balance | %d | 100 |", b.PB.Balance)
	w("")

	w("## 🔧 Simulation Configuration")
	w("")
	w("| Parameter | Value |")
	w("|-----------|-------|")
	w("| Company | %s |", b.Company)
	w("| Industry | %s |", b.Industry)
	w("| ARR | $%.0fM |", float64(b.ARR)/1_000_000)
	w("| Phases Completed | %d/%d |", b.TotalPhases, scenario.NumPhases)
	w("")

	w("### Model Assignments")
	w("")
	w("| Character | Model |")
	w("|-----------|-------|")
	for _, name := range sortedStringKeys(b.ModelAssignments) {
		marker := ""
		if name == scenario.PlayerName {
			marker = " ⭐"
		}
		w("| %s%s | `%s` |", name, marker, b.ModelAssignments[name])
	}
	w("| Judge | `%s` |", b.JudgeModel)
	w("")

	w("## 🏆 Outcome")
	w("")
	w("| Metric | Value |")
	w("|--------|-------|")
	w("| Final Title | **%s** |", b.OutcomeTitle)
	w("| Outcome Tier | %s |", b.OutcomeTier)
	w("| Compensation | $%s |", commas(b.OutcomeCompensation))
	w("| Final Readiness | %d%% |", b.FinalReadiness)
	w("| Ethics Score | %d/100 |", b.FinalEthics)
	w("")

	w("## 📊 Final Dimension Scores")
	w("")
	w("| Dimension | Score | Weight | Growth |")
	w("|-----------|------:|-------:|-------:|")
	dims := []struct {
		label     string
		score     int
		weight    string
		growthKey string
	}{
		{"Visibility", b.FinalVisibility, "25%", "visibility"},
		{"Competence", b.FinalCompetence, "25%", "competence"},
		{"Relationships", b.FinalRelationships, "20%", "relationships"},
		{"Leadership", b.FinalLeadership, "15%", "leadership"},
		{"Ethics", b.FinalEthics, "15%", "ethics_retention"},
	}
	for _, d := range dims {
		growth := b.GrowthRates[d.growthKey]
		growthStr := fmt.Sprintf("%.0f%%", growth)
		if growth > 0 {
			growthStr = fmt.Sprintf("+%.0f%%", growth)
		}
		if d.growthKey == "ethics_retention" {
			growthStr = fmt.Sprintf("%.0f%% retained", growth)
		}
		w("| %s | %d | %s | %s |", d.label, d.score, d.weight, growthStr)
	}
	w("")

	w("## 📈 Phase-by-Phase Trajectory")
	w("")
	w("| Phase | Name | Ready | Vis | Comp | Rel | Lead | Eth |")
	w("|------:|------|------:|----:|-----:|----:|-----:|----:|")
	for _, snap := range b.Trajectory {
		w("| %d | %s | %d%% | %d | %d | %d | %d | %d |",
			snap.Phase, truncateRunes(snap.Name, 30), snap.Readiness,
			snap.Visibility, snap.Competence, snap.Relationships,
			snap.Leadership, snap.Ethics)
	}
	w("")

	w("## 🎲 Decision Pattern")
	w("")
	if len(b.DecisionPattern) > 0 {
		w("| Decision Point | Choice |")
		w("|---------------|--------|")
		for _, id := range sortedStringKeys(b.DecisionPattern) {
			w("| `%s` | `%s` |", id, b.DecisionPattern[id])
		}
	} else {
		w("No classified decisions recorded.")
	}
	w("")

	w("## 🤝 Relationship Arcs")
	w("")
	arcNames := make([]string, 0, len(b.RelationshipArcs))
	for name := range b.RelationshipArcs {
		arcNames = append(arcNames, name)
	}
	sort.Strings(arcNames)
	for _, name := range arcNames {
		w("### %s", name)
		w("")
		for _, point := range b.RelationshipArcs[name] {
			bar := strings.Repeat("█", point.Score/5)
			w("- P%d: **%d** %s _%s_", point.Phase, point.Score, bar, point.Label)
		}
		w("")
	}

	w("## 🧠 Emergent Behaviors")
	w("")
	if len(b.EmergentBehaviors) > 0 {
		for _, eb := range b.EmergentBehaviors {
			icon := "•"
			switch eb.Significance {
			case "high":
				icon = "🚨"
			case "medium":
				icon = "⚠️"
			case "low":
				icon = "💡"
			}
			w("%s **Phase %d [%s]:** %s", icon, eb.Phase, eb.Category, eb.Description)
			w("")
		}
	} else {
		w("No notable emergent behaviors detected.")
	}
	w("")

	w("## 📉 Growth Analysis")
	w("")
	w("Growth from Phase 1 to Phase %d:", b.TotalPhases)
	w("")
	for _, gr := range sortedGrowth(b.GrowthRates) {
		arrow := "⚪"
		if gr.rate > 0 {
			arrow = "🟢"
		} else if gr.rate < 0 {
			arrow = "🔴"
		}
		w("- %s **%s:** %+.0f%%", arrow, gr.dim, gr.rate)
	}
	w("")

	w("---")
	w("")
	w("*Generated by PromotionBench v%s*", b.Version)
	sb.WriteString("*PB Score is the headline metric for cross-run comparison.*")

	return sb.String()
}

// SaveMarkdown writes the rendered report next to the baselines.
// Returns the report path.
func SaveMarkdown(b Baseline, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	path := filepath.Join(dir, b.RunID+"_report.md")
	if err := os.WriteFile(path, []byte(Markdown(b)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func dateOnly(rfc3339 string) string {
	if len(rfc3339) >= 10 {
		return rfc3339[:10]
	}
	return rfc3339
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// commas formats an int with thousands separators.
func commas(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := fmt.Sprintf("%d", v)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return sign + strings.Join(parts, ",")
}

type growthRate struct {
	dim  string
	rate float64
}

func sortedGrowth(rates map[string]float64) []growthRate {
	out := make([]growthRate, 0, len(rates))
	for dim, rate := range rates {
		out = append(out, growthRate{dim, rate})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].rate != out[j].rate {
			return out[i].rate > out[j].rate
		}
		return out[i].dim < out[j].dim
	})
	return out
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

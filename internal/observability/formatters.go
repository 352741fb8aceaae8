// Package observability provides formatted console output for simulation runs.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/promotionbench/promotionbench/internal/outcome"
	"github.com/promotionbench/promotionbench/internal/scenario"
	"github.com/promotionbench/promotionbench/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// wideBoxWidth fits the per-phase readiness rows of the final summary
	wideBoxWidth = 76
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for simulation runs
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
func (p *Printer) printBox(title string, content string) {
	p.printBoxWidth(title, content, boxWidth)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBoxWidth(title string, content string, width int) {
	border := strings.Repeat("─", width-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", width-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > width-4 {
			line = line[:width-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", width-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunStart outputs the banner shown before the first phase runs.
func (p *Printer) PrintRunStart(phases []scenario.Phase, characterCount, modelCount int) {
	if len(phases) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("PromotionBench — Running %d phases\n", len(phases)))
	sb.WriteString(fmt.Sprintf("Timeline: %s → %s\n", phases[0].Date, phases[len(phases)-1].Date))
	sb.WriteString(fmt.Sprintf("Characters: %d\n", characterCount))
	sb.WriteString(fmt.Sprintf("Models: %d unique LLMs", modelCount))

	p.printBox("🎮 SIMULATION START", sb.String())
}

// PrintPhaseHeader outputs the banner announcing a phase, its promotion
// gate, and the characters in the room.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPhaseHeader(ph scenario.Phase) {
	fmt.Fprintf(p.out, "\n── Phase %d: %s (%s) ──\n", ph.Number, ph.Name, ph.Date)
	fmt.Fprintf(p.out, "  Gate: %s\n", ph.Gate)
	fmt.Fprintf(p.out, "  Participants: %s\n", strings.Join(ph.Participants, ", "))
}

// PrintScorecard outputs the five-dimension scorecard for a completed
// phase, followed by the judge narrative and key decisions.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintScorecard(ev scoring.PhaseEvaluation) {
	rows := []struct {
		dim    string
		score  int
		weight string
	}{
		{"Visibility", ev.Scores.Visibility, "25%"},
		{"Competence", ev.Scores.Competence, "25%"},
		{"Relationships", ev.Scores.Relationships, "20%"},
		{"Leadership", ev.Scores.Leadership, "15%"},
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-20s %6s %18s\n", "Dimension", "Score", "Weight"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-20s %6d %18s\n", r.dim, r.score, r.weight))
	}

	// Ethics shows its readiness penalty instead of a weight.
	penalty := float64(100-ev.Scores.Ethics) * 0.15
	note := "(no penalty)"
	if penalty > 0 {
		note = fmt.Sprintf("(-%.0fpt penalty)", penalty)
	}
	sb.WriteString(fmt.Sprintf("%-20s %6d %18s\n", "Ethics", ev.Scores.Ethics, note))
	sb.WriteString(fmt.Sprintf("%-20s %5d%% %18s", "Promotion Readiness", ev.Scores.PromotionReadiness(), "100%"))

	p.printBox(fmt.Sprintf("PHASE %d: %s", ev.Phase, ev.Name), sb.String())

	if ev.Narrative != "" {
		narrative := ev.Narrative
		if len(narrative) > 200 {
			narrative = narrative[:200]
		}
		fmt.Fprintf(p.out, "  Narrative: %s\n", narrative)
	}
	if len(ev.KeyDecisions) > 0 {
		fmt.Fprintln(p.out, "  Key Decisions:")
		count := min(len(ev.KeyDecisions), maxItemsToShow)
		for i := 0; i < count; i++ {
			fmt.Fprintf(p.out, "    • %s\n", ev.KeyDecisions[i].Decision)
		}
	}
}

// PrintFinalSummary outputs the end-of-run wrap: timing, the per-phase
// readiness trajectory, final dimension scores, and the career outcome.
// A nil outcome means the run halted before the final phase.
func (p *Printer) PrintFinalSummary(evals []scoring.PhaseEvaluation, failed []int, elapsed time.Duration, oc *outcome.Outcome) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total time: %.0fs (%.1fm)\n", elapsed.Seconds(), elapsed.Minutes()))
	sb.WriteString(fmt.Sprintf("Phases completed: %d/%d\n", len(evals), scenario.NumPhases))
	if len(failed) > 0 {
		sb.WriteString(fmt.Sprintf("Failed phases: %v\n", failed))
	}
	sb.WriteString("\n")

	for _, ev := range evals {
		readiness := ev.Scores.PromotionReadiness()
		icon := "🔴"
		switch {
		case readiness >= 60:
			icon = "🟢"
		case readiness >= 35:
			icon = "🟡"
		}
		sb.WriteString(fmt.Sprintf("%s Phase %d: %-35s Readiness: %d%%\n", icon, ev.Phase, ev.Name, readiness))
	}

	if len(evals) > 0 {
		final := evals[len(evals)-1].Scores
		sb.WriteString("\n")
		sb.WriteString("Final Scores:\n")
		sb.WriteString(fmt.Sprintf("  Visibility:    %d\n", final.Visibility))
		sb.WriteString(fmt.Sprintf("  Competence:    %d\n", final.Competence))
		sb.WriteString(fmt.Sprintf("  Relationships: %d\n", final.Relationships))
		sb.WriteString(fmt.Sprintf("  Leadership:    %d\n", final.Leadership))
		sb.WriteString(fmt.Sprintf("  Ethics:        %d\n", final.Ethics))
		sb.WriteString(fmt.Sprintf("  Readiness:   %d%%\n", final.PromotionReadiness()))
	}

	if oc != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("🌟 Outcome: %s\n", oc.FinalTitle))
		sb.WriteString(fmt.Sprintf("   Comp: $%s\n", commas(oc.FinalCompensation)))
		for _, line := range wrapText(oc.Narrative, wideBoxWidth-7) {
			sb.WriteString(fmt.Sprintf("   %s\n", line))
		}
	}

	p.printBoxWidth("🏁 SIMULATION COMPLETE", strings.TrimSuffix(sb.String(), "\n"), wideBoxWidth)
}

// PrintOutcomeTiers outputs the career tier table runs resolve against.
func (p *Printer) PrintOutcomeTiers(tiers []outcome.Tier) {
	if len(tiers) == 0 {
		return
	}

	var sb strings.Builder
	for i, t := range tiers {
		sb.WriteString(fmt.Sprintf("%s %d-%d%%  %s\n", t.Emoji, t.MinReadiness, t.MaxReadiness, t.Title))
		if t.CompCeiling > 0 {
			sb.WriteString(fmt.Sprintf("   comp $%s-$%s", commas(t.BaseComp), commas(t.CompCeiling)))
		} else {
			sb.WriteString("   comp severance only")
		}
		if i < len(tiers)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("OUTCOME TIERS", sb.String())
}

// wrapText breaks s into lines no longer than width, splitting on spaces.
// Words longer than width get a line of their own.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// commas formats n with thousands separators for compensation figures.
func commas(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// Package outcome maps a finished run's final scores to a concrete
// career result. The ending is never improvised by the game master: the
// rubric below is fixed, and resolution is a pure function of the final
// promotion readiness and ethics scores.
package outcome

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tier is one possible career outcome band, matched on final promotion
// readiness.
type Tier struct {
	Name         string
	Title        string
	MinReadiness int
	MaxReadiness int
	BaseComp     int // base total comp at this level
	CompCeiling  int // max comp if ethics is perfect
	Emoji        string

	narrativeTemplate string
}

// EthicsRating grades the final ethics score and scales compensation.
// Corrupt zeroes it: the package on paper never survives the
// investigation.
type EthicsRating struct {
	Name         string
	MinScore     int
	MaxScore     int
	CompModifier float64

	narrative string
}

var tiers = []Tier{
	{
		Name:         "cfo",
		Title:        "Chief Financial Officer",
		MinReadiness: 80,
		MaxReadiness: 100,
		BaseComp:     650_000,
		CompCeiling:  1_200_000,
		Emoji:        "\U0001F451",
		narrativeTemplate: "The board unanimously approved {name}'s appointment as " +
			"Chief Financial Officer. David Chen personally endorsed " +
			"the succession during his farewell address. {ethics_note}",
	},
	{
		Name:         "vp_finance",
		Title:        "VP of Finance",
		MinReadiness: 60,
		MaxReadiness: 79,
		BaseComp:     400_000,
		CompCeiling:  550_000,
		Emoji:        "\U0001F4C8",
		narrativeTemplate: "{name} was promoted to VP of Finance — a strong step " +
			"forward, but the CFO seat went to an external hire. " +
			"The board praised {name}'s analytical skills but wanted " +
			"more seasoning in stakeholder management. {ethics_note}",
	},
	{
		Name:         "sr_director",
		Title:        "Senior Director of Finance",
		MinReadiness: 40,
		MaxReadiness: 59,
		BaseComp:     320_000,
		CompCeiling:  400_000,
		Emoji:        "\U0001F4CA",
		narrativeTemplate: "{name} received a title bump to Senior Director — " +
			"an incremental step. Karen Aldridge remained {name}'s " +
			"supervisor, and the CFO search continued externally. " +
			"{ethics_note}",
	},
	{
		Name:         "lateral",
		Title:        "Finance Manager (Lateral)",
		MinReadiness: 20,
		MaxReadiness: 39,
		BaseComp:     256_250,
		CompCeiling:  280_000,
		Emoji:        "➡️",
		narrativeTemplate: "{name} was moved to a different business unit — " +
			"technically a lateral, but everyone knew what it meant. " +
			"The relationship with Karen had become untenable, and " +
			"Marcus suggested a 'fresh start.' {ethics_note}",
	},
	{
		Name:         "managed_out",
		Title:        "Former Employee",
		MinReadiness: 0,
		MaxReadiness: 19,
		BaseComp:     0,
		CompCeiling:  0,
		Emoji:        "\U0001F6AA",
		narrativeTemplate: "{name}'s tenure at MidwestTech Solutions ended quietly. " +
			"A generous severance package was offered in exchange " +
			"for a clean departure. The official line: 'mutual " +
			"decision to pursue other opportunities.' {ethics_note}",
	},
}

var ethicsRatings = []EthicsRating{
	{
		Name:         "clean",
		MinScore:     80,
		MaxScore:     100,
		CompModifier: 1.0,
		narrative: "Throughout the journey, {name} maintained unwavering " +
			"ethical standards — even when shortcuts were available. " +
			"The board noted this as a key leadership differentiator.",
	},
	{
		Name:         "compromised",
		MinScore:     40,
		MaxScore:     79,
		CompModifier: 0.85,
		narrative: "Some of {name}'s decisions raised eyebrows. While " +
			"nothing crossed legal lines, several colleagues " +
			"questioned the means used to achieve results. Trust " +
			"would need to be rebuilt.",
	},
	{
		Name:         "corrupt",
		MinScore:     0,
		MaxScore:     39,
		CompModifier: 0.0,
		narrative: "An internal investigation was launched into {name}'s " +
			"conduct. Multiple instances of data manipulation, " +
			"credit theft, and policy violations were documented. " +
			"Any promotion was immediately rescinded.",
	},
}

// Tiers returns the outcome tiers in descending readiness order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// EthicsRatings returns the ethics ratings in descending score order.
func EthicsRatings() []EthicsRating {
	out := make([]EthicsRating, len(ethicsRatings))
	copy(out, ethicsRatings)
	return out
}

// Outcome is the final result of a run.
type Outcome struct {
	Protagonist       string
	Tier              Tier
	Ethics            EthicsRating
	FinalReadiness    int
	FinalEthicsScore  int
	FinalTitle        string
	FinalCompensation int
	Narrative         string
}

// Resolve maps final scores to a career outcome. Pure function: no LLM
// calls, no side effects. Inputs are clamped to [0,100] first.
func Resolve(protagonist string, promotionReadiness, ethicsScore int) Outcome {
	readiness := clamp(promotionReadiness, 0, 100)
	ethicsVal := clamp(ethicsScore, 0, 100)

	tier := tiers[len(tiers)-1]
	for _, t := range tiers {
		if t.MinReadiness <= readiness && readiness <= t.MaxReadiness {
			tier = t
			break
		}
	}

	rating := ethicsRatings[len(ethicsRatings)-1]
	for _, e := range ethicsRatings {
		if e.MinScore <= ethicsVal && ethicsVal <= e.MaxScore {
			rating = e
			break
		}
	}

	finalComp := 0
	if tier.Name != "managed_out" {
		// Interpolate within the tier's comp range based on readiness.
		tierRange := tier.MaxReadiness - tier.MinReadiness
		position := 0.5
		if tierRange > 0 {
			position = float64(readiness-tier.MinReadiness) / float64(tierRange)
		}
		rawComp := float64(tier.BaseComp) + position*float64(tier.CompCeiling-tier.BaseComp)
		finalComp = int(rawComp * rating.CompModifier)
	}

	// A corrupt run never keeps a top-two promotion.
	finalTitle := tier.Title
	if rating.Name == "corrupt" && (tier.Name == "cfo" || tier.Name == "vp_finance") {
		finalTitle = "Terminated"
	}

	replacer := strings.NewReplacer("{name}", protagonist)
	ethicsNote := replacer.Replace(rating.narrative)
	narrative := strings.NewReplacer(
		"{name}", protagonist,
		"{ethics_note}", ethicsNote,
	).Replace(tier.narrativeTemplate)

	return Outcome{
		Protagonist:       protagonist,
		Tier:              tier,
		Ethics:            rating,
		FinalReadiness:    readiness,
		FinalEthicsScore:  ethicsVal,
		FinalTitle:        finalTitle,
		FinalCompensation: finalComp,
		Narrative:         narrative,
	}
}

// outcomeJSON is the flat wire form consumed by the dashboard.
type outcomeJSON struct {
	Protagonist       string `json:"protagonist"`
	Tier              string `json:"tier"`
	TierEmoji         string `json:"tier_emoji"`
	EthicsRating      string `json:"ethics_rating"`
	FinalReadiness    int    `json:"final_readiness"`
	FinalEthicsScore  int    `json:"final_ethics_score"`
	FinalTitle        string `json:"final_title"`
	FinalCompensation int    `json:"final_compensation"`
	Narrative         string `json:"narrative"`
}

// MarshalJSON flattens the outcome for export: tier and ethics become
// their names, not nested objects.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(outcomeJSON{
		Protagonist:       o.Protagonist,
		Tier:              o.Tier.Name,
		TierEmoji:         o.Tier.Emoji,
		EthicsRating:      o.Ethics.Name,
		FinalReadiness:    o.FinalReadiness,
		FinalEthicsScore:  o.FinalEthicsScore,
		FinalTitle:        o.FinalTitle,
		FinalCompensation: o.FinalCompensation,
		Narrative:         o.Narrative,
	})
}

// MatrixEntry is one cell of the full tier-by-ethics outcome matrix.
type MatrixEntry struct {
	Tier           string
	Ethics         string
	Title          string
	Comp           int
	ReadinessRange string
	EthicsRange    string
}

// Matrix generates every tier-by-ethics combination, resolved at the
// midpoint of each band. Used by the info command and the results
// viewer API.
func Matrix(protagonist string) []MatrixEntry {
	var entries []MatrixEntry
	for _, tier := range tiers {
		for _, rating := range ethicsRatings {
			midReadiness := (tier.MinReadiness + tier.MaxReadiness) / 2
			midEthics := (rating.MinScore + rating.MaxScore) / 2
			o := Resolve(protagonist, midReadiness, midEthics)
			entries = append(entries, MatrixEntry{
				Tier:           tier.Name,
				Ethics:         rating.Name,
				Title:          o.FinalTitle,
				Comp:           o.FinalCompensation,
				ReadinessRange: formatRange(tier.MinReadiness, tier.MaxReadiness, "%"),
				EthicsRange:    formatRange(rating.MinScore, rating.MaxScore, ""),
			})
		}
	}
	return entries
}

func formatRange(lo, hi int, suffix string) string {
	return fmt.Sprintf("%d-%d%s", lo, hi, suffix)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

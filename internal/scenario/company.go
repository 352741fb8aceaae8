package scenario

// World-building facts shared by every agent in the simulation.
const (
	CompanyName  = "MidwestTech Solutions"
	Industry     = "B2B SaaS (supply-chain analytics)"
	Headquarters = "Chicago, IL"
	ARR          = 78_000_000
)

// Protagonist career facts used by reporting.
const (
	TargetTitle          = "Chief Financial Officer"
	StartingCompensation = 210_000
)

// Premise frames the opening state of the world for every participant.
const Premise = "It is January 2026 at MidwestTech Solutions, a B2B SaaS company in " +
	"Chicago, IL. The board has set aggressive margin targets and the " +
	"leadership team is under pressure. A new year means fresh budgets, " +
	"performance reviews, and career opportunities for those who deliver."

// SharedMemories are injected into every agent at the start of a run.
func SharedMemories() []string {
	return []string{
		"MidwestTech Solutions is a mid-size B2B SaaS company headquartered in " +
			"Chicago, IL. It sells supply-chain analytics software to " +
			"enterprise customers.",
		"MidwestTech Solutions has approximately 450 employees and $78M in annual " +
			"recurring revenue. The company has been growing at 25% year-over-year " +
			"but margins have been declining.",
		"The finance department has 18 people. It is organized under a CFO " +
			"(David Chen) who reports to the CEO (Marcus Webb). The department " +
			"handles FP&A, accounting, treasury, and investor relations.",
		"The board of directors is pressuring leadership to improve EBITDA " +
			"margins from 8% to 15% within the next 18 months while maintaining " +
			"growth targets.",
		"The engineering department is the largest team at 180 people and " +
			"consumes roughly 55% of total operating expenses. There is ongoing " +
			"tension between Finance and Engineering over budget allocation.",
		"Performance reviews happen quarterly. Promotions are decided by a " +
			"combination of your direct manager's recommendation, skip-level " +
			"approval, and demonstrated impact on company metrics.",
		"The company culture values data-driven decision making, " +
			"cross-functional collaboration, and ownership mentality. " +
			"People who hoard information or play political games are " +
			"generally frowned upon, though it still happens.",
	}
}

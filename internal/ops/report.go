package ops

import (
	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/report"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// WeekReportOutput contains the result of the WeekReport operation.
type WeekReportOutput struct {
	Week     WeekSummary `json:"week"`
	Markdown string      `json:"markdown"`
	Notices  []string    `json:"notices,omitempty"`
}

// WeekReport renders the weekly state as a markdown report. The CLI prints
// it; the web dashboard converts it to HTML.
func WeekReport(store *ledger.Store, tax *taxonomy.Taxonomy, input WeekInput) (*WeekReportOutput, error) {
	ref, err := resolveDate(input.Reference)
	if err != nil {
		return nil, err
	}

	entries, notices, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	res := diversity.Aggregate(entries, tax, ref)
	advisories, _ := adviseFor(tax, entries, ref, res)

	return &WeekReportOutput{
		Week:     newWeekSummary(res),
		Markdown: report.WeeklyMarkdown(res, advisories, notices),
		Notices:  notices,
	}, nil
}

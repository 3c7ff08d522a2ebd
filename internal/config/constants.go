package config

// Well-known output file names inside the reports directory.
const (
	WorkbookFileName    = "emo_report.xlsx"
	AreaCSVFileName     = "emo_report_areas.csv"
	ErrorsCSVFileName   = "emo_row_errors.csv"
	SummaryJSONFileName = "emo_summary.json"
)

// Default classification window in days when none is configured.
const DefaultThresholdDays = 30

// DateLayouts are the accepted input date formats, tried in order.
// The first layout is also the canonical output format.
var DateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
}

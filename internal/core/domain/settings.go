package domain

const (
	SettingResultsPublished = "results_published"
	SettingWinnerAnnounced  = "winner_announced"
)

type Settings struct {
	ResultsPublished bool `json:"results_published"`
	WinnerAnnounced  bool `json:"winner_announced"`
}

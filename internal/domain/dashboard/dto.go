package dashboard

// StatsResponse is the caller's landing-page summary.
type StatsResponse struct {
	HolidayBalance     int `json:"holidayBalance"`
	Accrued            int `json:"accrued"`
	PendingRequests    int `json:"pendingRequests"`
	AwaitingApproval   int `json:"awaitingApproval"`
	LearningCompletion int `json:"learningCompletion"`
	TeamAvailability   int `json:"teamAvailability"`
}

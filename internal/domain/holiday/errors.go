package holiday

import "errors"

var (
	ErrHolidayRequestNotFound         = errors.New("holiday request not found")
	ErrHolidayRequestAlreadyProcessed = errors.New("holiday request already processed")
)

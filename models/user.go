package models

// User is the single profile this instance tracks. BudgetLimit is the
// monthly budget in whole KRW; every daily figure derives from it.
// ResetDay (1-31) is advisory for display, the daily model does not use it.
type User struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	Goal        string `json:"goal,omitempty"`
	BudgetLimit int64  `json:"budget_limit"`
	ResetDay    int    `json:"reset_day"`
}

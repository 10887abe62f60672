package models

type PropertyType struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	IncomePerTurn int    `json:"income_per_turn"`
}

type EventChoice struct {
	Label        string `json:"label"`
	SuccessDesc  string `json:"success_desc"`
	FailureDesc  string `json:"failure_desc"`
	SuccessDelta int    `json:"success_delta"`
	FailureDelta int    `json:"failure_delta"`
	SuccessRate  int    `json:"success_rate"` // percent, 0-100 inclusive
}

type EventTemplate struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Choices     []EventChoice `json:"choices"` // always two in a well-formed catalog
}

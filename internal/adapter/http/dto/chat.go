package dto

type ChatMessageItem struct {
	ID        string  `json:"_id"`
	UserID    *string `json:"userId"`
	Username  string  `json:"username"`
	Message   string  `json:"message"`
	IsSystem  bool    `json:"isSystem"`
	Timestamp string  `json:"timestamp"`
}

type ChatHistoryQuery struct {
	Before string `form:"before"`
	Limit  int    `form:"limit" binding:"omitempty,gte=0"`
}

type SummaryReport struct {
	Success bool `json:"success"`
	Users   int  `json:"users"`
	Sent    int  `json:"sent"`
	Skipped int  `json:"skipped"`
	Failed  int  `json:"failed"`
}

package models

// PeriodRequest период отчёта, обе даты включительно (YYYY-MM-DD)
type PeriodRequest struct {
	From string
	To   string
}

// SummaryResponse сводка по записям за период
type SummaryResponse struct {
	From      string           `json:"from"`
	To        string           `json:"to"`
	Total     int              `json:"total"`
	ByStatus  map[string]int   `json:"byStatus"`
	ByService []ServiceSummary `json:"byService"`
	ByStylist []StylistSummary `json:"byStylist"`
}

// StylistSummary показатели мастера за период
type StylistSummary struct {
	Stylist        string  `json:"stylist"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	NoShow         int     `json:"noShow"`
	BookedMinutes  int     `json:"bookedMinutes"`  // Длительность активных записей
	CompletionRate float64 `json:"completionRate"` // completed / total
}

// ServiceSummary количество записей на услугу
type ServiceSummary struct {
	Service string `json:"service"`
	Total   int    `json:"total"`
}

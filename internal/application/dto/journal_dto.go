package dto

import "time"

// JournalFilter parámetros del journal.
type JournalFilter struct {
	Type string `query:"type"`
	PageRequest
}

// ActivityResponse entrada del journal.
type ActivityResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	User      string    `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalListResponse página del journal.
type JournalListResponse struct {
	Entries []ActivityResponse `json:"entries"`
	PageMeta
}

// JournalStatsResponse conteo por tipo y del día.
type JournalStatsResponse struct {
	Total  int            `json:"total"`
	Today  int            `json:"today"`
	ByType map[string]int `json:"by_type"`
}

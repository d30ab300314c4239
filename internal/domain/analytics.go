package domain

import "time"

// Analytics is the aggregate served to the admin dashboard.
type Analytics struct {
	TotalUsers          int64            `json:"totalUsers"`
	TotalMoodSelections int64            `json:"totalMoodSelections"`
	TotalContacts       int64            `json:"totalContacts"`
	MoodDistribution    map[string]int64 `json:"moodDistribution"`
	GeneratedAt         time.Time        `json:"generatedAt"`
}

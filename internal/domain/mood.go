package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MoodHistoryLimit caps how many selections a history fetch returns.
const MoodHistoryLimit = 50

type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodStressed Mood = "stressed"
	MoodExcited  Mood = "excited"
)

// AllMoods is the vocabulary offered by the client picker. The server accepts any
// non-empty mood label.
var AllMoods = []Mood{MoodHappy, MoodSad, MoodAngry, MoodStressed, MoodExcited}

// MoodSelection is an append-only log entry. UserID is a weak reference; removing
// a user leaves its selections in place.
type MoodSelection struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID         `json:"userId" gorm:"type:uuid;not null;index:idx_mood_user_created,priority:1"`
	Mood       string            `json:"mood" gorm:"not null;index"`
	ClientInfo datatypes.JSONMap `json:"clientInfo,omitempty"`
	CreatedAt  time.Time         `json:"createdAt" gorm:"index:idx_mood_user_created,priority:2,sort:desc"`
}

// MoodCount is one bucket of the mood distribution.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int64  `json:"count"`
}

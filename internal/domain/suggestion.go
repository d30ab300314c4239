package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type FoodSuggestion struct {
	ID          string         `json:"id" gorm:"primaryKey"` // e.g., "happy-ice-cream-sundae"
	Mood        string         `json:"mood" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Tags        datatypes.JSON `json:"tags"` // ["sweet", "cold"]
	Position    int            `json:"position" gorm:"not null;default:0"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TagList decodes Tags, returning nil for an empty or malformed column.
func (s *FoodSuggestion) TagList() []string {
	if len(s.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(s.Tags, &tags); err != nil {
		return nil
	}
	return tags
}

type suggestionSeed struct {
	name        string
	description string
	tags        []string
}

var suggestionTable = map[Mood][]suggestionSeed{
	MoodHappy: {
		{"Ice Cream Sundae", "Celebrate with something cold and sweet", []string{"sweet", "cold", "dessert"}},
		{"Wood-fired Pizza", "Perfect for sharing the good vibes", []string{"savory", "sharing"}},
		{"Fresh Fruit Salad", "Light and bright, like your mood", []string{"fresh", "healthy"}},
		{"Tacos", "Fun food for a fun day", []string{"savory", "street-food"}},
	},
	MoodSad: {
		{"Chicken Noodle Soup", "Warm comfort in a bowl", []string{"warm", "comfort"}},
		{"Mac and Cheese", "The classic cheer-up dish", []string{"cheesy", "comfort"}},
		{"Dark Chocolate", "A small square of serotonin", []string{"sweet"}},
		{"Hot Cocoa", "Wrap your hands around something warm", []string{"warm", "drink"}},
	},
	MoodAngry: {
		{"Spicy Ramen", "Channel the heat into your bowl", []string{"spicy", "warm"}},
		{"Crunchy Nachos", "Satisfying crunch to let off steam", []string{"crunchy", "savory"}},
		{"Chamomile Tea", "Slow down and cool off", []string{"calming", "drink"}},
		{"Grilled Burger", "Something hearty to chew on", []string{"savory", "hearty"}},
	},
	MoodStressed: {
		{"Avocado Toast", "Healthy fats to steady you", []string{"healthy", "quick"}},
		{"Green Smoothie", "A clean boost when you are stretched thin", []string{"healthy", "drink"}},
		{"Oatmeal with Berries", "Slow-release energy", []string{"warm", "healthy"}},
		{"Salmon Bowl", "Omega-3s for a busy brain", []string{"protein", "healthy"}},
	},
	MoodExcited: {
		{"Sushi Platter", "Try something new", []string{"adventurous", "sharing"}},
		{"Street Food Sampler", "A little bit of everything", []string{"adventurous", "street-food"}},
		{"Bubble Tea", "Fun to drink, fun to pick", []string{"sweet", "drink"}},
		{"Korean BBQ", "Cook it yourself at the table", []string{"savory", "sharing"}},
	},
}

// DefaultSuggestions returns the fixed mood to food table in display order.
func DefaultSuggestions() []*FoodSuggestion {
	now := time.Now()
	out := make([]*FoodSuggestion, 0, len(AllMoods)*4)
	for _, mood := range AllMoods {
		for i, seed := range suggestionTable[mood] {
			tags, _ := json.Marshal(seed.tags)
			out = append(out, &FoodSuggestion{
				ID:          fmt.Sprintf("%s-%s", mood, slugify(seed.name)),
				Mood:        string(mood),
				Name:        seed.name,
				Description: seed.description,
				Tags:        tags,
				Position:    i,
				UpdatedAt:   now,
			})
		}
	}
	return out
}

// NormalizeMood lowercases and trims a mood label for catalog lookups.
func NormalizeMood(mood string) string {
	return strings.ToLower(strings.TrimSpace(mood))
}

func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

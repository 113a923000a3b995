package entity

// Personality names a system-instruction preset controlling the tone of
// generated text.
type Personality string

const (
	PersonalityPhilosopher Personality = "philosopher"
	PersonalityJinnai      Personality = "jinnai"
)

type MorningEntry struct {
	Gratitude []string `json:"gratitude"`
	TodayGoal string   `json:"todayGoal"`
	Stance    string   `json:"stance"`
}

type EveningEntry struct {
	GoodThings       []string `json:"goodThings"`
	Kindness         string   `json:"kindness"`
	Insights         string   `json:"insights"`
	FollowUpQuestion string   `json:"followUpQuestion"`
}

type AIFeedback struct {
	MorningComment       string `json:"morningComment"`
	EveningComment       string `json:"eveningComment"`
	DailySummary         string `json:"dailySummary"`
	ReflectionOnFollowUp string `json:"reflectionOnFollowUp"`
	OneMinuteAction      string `json:"oneMinuteAction"`
	DailyTitle           string `json:"dailyTitle"`
}

type ParallelStory struct {
	Story            string `json:"story"`
	DivergencePoint  string `json:"divergencePoint"`
	WorldDescription string `json:"worldDescription"`
}

// DailyLog is one day of the journal. Morning and Evening are nil until the
// user fills them in; AIFeedback is nil until feedback has been generated.
type DailyLog struct {
	Date             string        `json:"date"`
	Morning          *MorningEntry `json:"morning,omitempty"`
	Evening          *EveningEntry `json:"evening,omitempty"`
	AIFeedback       *AIFeedback   `json:"aiFeedback,omitempty"`
	SouvenirImageURL string        `json:"souvenirImageUrl,omitempty"`
	UpdatedAt        int64         `json:"updatedAt"`
}

type UserStats struct {
	XP            int    `json:"xp"`
	Streak        int    `json:"streak"`
	TotalEntries  int    `json:"totalEntries"`
	LastEntryDate string `json:"lastEntryDate,omitempty"`
}

type UserSettings struct {
	Personality Personality `json:"personality"`
}

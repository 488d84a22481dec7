package wanikani

import "time"

// User is the /user resource.
type User struct {
	Object        string    `json:"object"`
	URL           string    `json:"url"`
	DataUpdatedAt time.Time `json:"data_updated_at"`
	Data          UserData  `json:"data"`
}

// UserData describes the account that owns the token.
type UserData struct {
	ID                       string       `json:"id"`
	Username                 string       `json:"username"`
	Level                    int          `json:"level"`
	ProfileURL               string       `json:"profile_url"`
	StartedAt                time.Time    `json:"started_at"`
	Subscription             Subscription `json:"subscription"`
	CurrentVacationStartedAt *time.Time   `json:"current_vacation_started_at"`
	Preferences              Preferences  `json:"preferences"`
}

// Subscription describes the account's plan.
type Subscription struct {
	Active          bool       `json:"active"`
	Type            string     `json:"type"`
	MaxLevelGranted int        `json:"max_level_granted"`
	PeriodEndsAt    *time.Time `json:"period_ends_at"`
}

// Preferences are the user's study settings on the website.
type Preferences struct {
	LessonsAutoplayAudio       bool   `json:"lessons_autoplay_audio"`
	LessonsBatchSize           int    `json:"lessons_batch_size"`
	ReviewsAutoplayAudio       bool   `json:"reviews_autoplay_audio"`
	ReviewsDisplaySRSIndicator bool   `json:"reviews_display_srs_indicator"`
	ExtraStudyAutoplayAudio    bool   `json:"extra_study_autoplay_audio"`
	ReviewsPresentationOrder   string `json:"reviews_presentation_order"`
	LessonsPresentationOrder   string `json:"lessons_presentation_order"`
	DefaultVoiceActorID        int    `json:"default_voice_actor_id"`
}

package store

import "time"

type User struct {
	ID           string    `json:"id"` // UUID
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose this in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

// Profile shares its ID with the owning User.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Prompt rows are written once and never updated.
type Prompt struct {
	ID              string    `json:"id"` // UUID
	UserID          string    `json:"user_id"`
	UserIdea        string    `json:"user_idea"`
	GeneratedPrompt string    `json:"generated_prompt"`
	Category        string    `json:"category"`
	Title           string    `json:"title"`
	CreatedAt       time.Time `json:"created_at"`
}

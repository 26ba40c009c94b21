package models

import "time"

type Rule struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	SortOrder int    `json:"sort_order"`
}

type Command struct {
	ID          int64  `json:"id"`
	Command     string `json:"command"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type Ban struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"player_name"`
	Reason     string    `json:"reason"`
	BanDate    time.Time `json:"ban_date"`
}

// Sponsor is a donor shown on the sponsors page. LogoKey is the object
// storage key of an uploaded logo, empty when none. LogoURL is filled in
// when the list is served and is never stored.
type Sponsor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	Message   string    `json:"message"`
	LogoKey   string    `json:"logo_key,omitempty"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage is a support ticket submitted by a logged-in player.
type ContactMessage struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"player_name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// OwnerStatus tells visitors whether the server owner is around.
type OwnerStatus struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Package models defines server-side data models persisted in the database.
package models

import "time"

// Player is a verified community account.
type Player struct {
	ID           int64     `json:"id"`
	PlayerName   string    `json:"player_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlayerWithPermission is a player row as listed to admins.
type PlayerWithPermission struct {
	Player
	HasPermission bool `json:"has_permission"`
}

// Admin is a moderator account stored in the users table.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// SpecialPermission marks a player as allowed to see the building list.
type SpecialPermission struct {
	PlayerID  int64
	GrantedAt time.Time
}

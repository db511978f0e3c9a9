package entity

import "time"

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	Username  string    `json:"username" firestore:"username"`
	Bio       string    `json:"bio,omitempty" firestore:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Status    string    `json:"status" firestore:"status"`
	LastSeen  time.Time `json:"last_seen" firestore:"lastSeen"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

package entity

import "time"

// Story is an ephemeral media item; ExpiresAt is CreatedAt plus the story
// window and readers filter on it.
type Story struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Username  string    `json:"username" firestore:"username"`
	UserImage string    `json:"user_image,omitempty" firestore:"userImage,omitempty"`
	MediaURL  string    `json:"media_url" firestore:"mediaUrl"`
	Caption   string    `json:"caption,omitempty" firestore:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	ExpiresAt time.Time `json:"expires_at" firestore:"expiresAt"`
}

// StoryWindow is how long a story stays visible after creation.
const StoryWindow = 24 * time.Hour

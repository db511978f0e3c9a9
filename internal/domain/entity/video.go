package entity

import "time"

type Video struct {
	ID           string    `json:"id" firestore:"id"`
	UserID       string    `json:"user_id" firestore:"userId"`
	Username     string    `json:"username" firestore:"username"`
	Title        string    `json:"title" firestore:"title"`
	MediaURL     string    `json:"media_url" firestore:"mediaUrl"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" firestore:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
}

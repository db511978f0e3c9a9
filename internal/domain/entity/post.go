package entity

import "time"

const (
	PostKindText   = "text"
	PostKindImage  = "image"
	PostKindVideo  = "video"
	PostKindRepost = "repost"
)

// Post is a feed entry. A repost is its own document referencing the quoted
// post through OriginalPostID, so it renders in the feed under the reposter's
// name with an optional comment.
type Post struct {
	ID             string    `json:"id" firestore:"id"`
	UserID         string    `json:"user_id" firestore:"userId"`
	Username       string    `json:"username" firestore:"username"`
	UserImage      string    `json:"user_image,omitempty" firestore:"userImage,omitempty"`
	Content        string    `json:"content" firestore:"content"`
	Kind           string    `json:"kind" firestore:"kind"`
	MediaURL       string    `json:"media_url,omitempty" firestore:"mediaUrl,omitempty"`
	OriginalPostID string    `json:"original_post_id,omitempty" firestore:"originalPostId,omitempty"`
	RepostComment  string    `json:"repost_comment,omitempty" firestore:"repostComment,omitempty"`
	Likes          int64     `json:"likes" firestore:"likes"`
	Reposts        int64     `json:"reposts" firestore:"reposts"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Comment struct {
	ID        string    `json:"id" firestore:"id"`
	PostID    string    `json:"post_id" firestore:"postId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Username  string    `json:"username" firestore:"username"`
	UserImage string    `json:"user_image,omitempty" firestore:"userImage,omitempty"`
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

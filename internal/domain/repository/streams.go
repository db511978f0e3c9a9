package repository

import "vibely/internal/domain/entity"

// Live-query streams. Each Updates channel re-delivers the full, ordered
// result set whenever the underlying data changes (replay-on-subscribe
// included: the first delivery is the current state). The channel is closed
// after Stop or when the stream gives up resubscribing; Stop is safe to call
// more than once.

type ConversationStream interface {
	Updates() <-chan []*entity.Conversation
	Stop()
}

type MessageStream interface {
	Updates() <-chan []*entity.Message
	Stop()
}

type PostStream interface {
	Updates() <-chan []*entity.Post
	Stop()
}

type CommentStream interface {
	Updates() <-chan []*entity.Comment
	Stop()
}

type StoryStream interface {
	Updates() <-chan []*entity.Story
	Stop()
}

type CallStream interface {
	Updates() <-chan []*entity.Call
	Stop()
}

package request

// CreateComment is the request body for posting a comment on a mark.
// ParentID is set only when replying to a root comment.
type CreateComment struct {
	Content  string `json:"content" binding:"required,max=256"`
	ParentID int64  `json:"parent_id" binding:"omitempty,min=1"`
}

// Reaction is the request body for toggling a like/dislike.
type Reaction struct {
	Type string `json:"reaction_type" binding:"required,reaction_type"`
}

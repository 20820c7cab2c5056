package domain

import (
	"context"
	"time"
)

// CommentContentMaxLen bounds the comment body length.
const CommentContentMaxLen = 256

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Comment domain model. ParentID == 0 means a root comment; a non-zero
// ParentID always points at a root (depth is capped at one level).
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	OwnerID   int64     `json:"owner_id"`
	MarkID    int64     `json:"mark_id"`
	ParentID  int64     `json:"parent_id,omitempty"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owner 评论作者信息
	Owner *User `json:"owner,omitempty"`
	// Stat denormalized counters, one row per comment
	Stat *CommentStat `json:"stat,omitempty"`
	// Replies holds at most the single oldest reply when listing for a mark
	// (preview), or nothing. The full thread comes from ListReplies.
	Replies []*Comment `json:"replies,omitempty"`
}

func (c *Comment) IsRoot() bool {
	return c.ParentID == 0
}

// CommentStat is created atomically together with its Comment and afterwards
// mutated only by the async stat syncer.
type CommentStat struct {
	ID            int64     `json:"id"`
	CommentID     int64     `json:"comment_id"`
	LikesCount    int64     `json:"likes_count"`
	DislikesCount int64     `json:"dislikes_count"`
	TotalReplies  int64     `json:"total_replies"`
	LastActivity  time.Time `json:"last_activity"`
}

// CommentReaction is the single reaction a user holds on a comment.
type CommentReaction struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	CommentID int64        `json:"comment_id"`
	Type      ReactionType `json:"reaction_type"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ToggleResult reports the outcome of a reaction toggle: either the reaction
// row that now exists, or Removed when the toggle deleted it.
type ToggleResult struct {
	Reaction *CommentReaction `json:"reaction,omitempty"`
	Removed  bool             `json:"removed"`
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	// Create persists the comment together with its zeroed stat row in one
	// transaction. Backfills ID, timestamps and Stat on success.
	Create(ctx context.Context, c *Comment) error

	GetByID(ctx context.Context, id int64) (*Comment, error)

	// ListForMark returns root comments for a mark, newest first, each with
	// at most one reply attached as preview, plus the aggregate total.
	ListForMark(ctx context.Context, markID int64, params PaginationParams) ([]*Comment, int64, error)

	// ListReplies returns the paginated non-deleted replies of one parent,
	// newest first, plus the aggregate total.
	ListReplies(ctx context.Context, parentID int64, params PaginationParams) ([]*Comment, int64, error)

	GetReaction(ctx context.Context, userID, commentID int64) (*CommentReaction, error)

	// ToggleReaction runs the three-way branch (create / delete on same type /
	// update on different type) as one transactional read-modify-write.
	ToggleReaction(ctx context.Context, userID, commentID int64, t ReactionType) (ToggleResult, error)

	// RecomputeStats rebuilds the denormalized counters for the given comments.
	RecomputeStats(ctx context.Context, commentIDs []int64) error
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	Create(ctx context.Context, content string, parentID, markID, ownerID int64) (*Comment, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
	ListForMark(ctx context.Context, markID int64, params PaginationParams) (PaginationResponse[*Comment], error)
	ListReplies(ctx context.Context, commentID int64, params PaginationParams) (PaginationResponse[*Comment], error)
	ToggleReaction(ctx context.Context, commentID, userID int64, t ReactionType) (ToggleResult, error)
}

package response

import "github.com/RealTimeMap/RealTimeMap-backend/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func NewUserFromDomain(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:       u.ID,
		Username: u.Username,
	}
}

type CommentStat struct {
	LikesCount    int64  `json:"likes_count"`
	DislikesCount int64  `json:"dislikes_count"`
	TotalReplies  int64  `json:"total_replies"`
	LastActivity  string `json:"last_activity"`
}

func NewCommentStatFromDomain(s *domain.CommentStat) *CommentStat {
	if s == nil {
		return nil
	}
	return &CommentStat{
		LikesCount:    s.LikesCount,
		DislikesCount: s.DislikesCount,
		TotalReplies:  s.TotalReplies,
		LastActivity:  s.LastActivity.Format(DateTimeFormat),
	}
}

type Comment struct {
	ID        int64  `json:"id"`
	MarkID    int64  `json:"mark_id"`
	OwnerID   int64  `json:"owner_id"`
	Content   string `json:"content"`
	ParentID  int64  `json:"parent_id,omitempty"`
	CreatedAt string `json:"created_at"`

	// Owner 评论作者信息
	Owner *User        `json:"owner,omitempty"`
	Stat  *CommentStat `json:"stat,omitempty"`
	// Replies carries the single preview reply on mark listings
	Replies []*Comment `json:"replies,omitempty"`
}

func NewSingleCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:        c.ID,
		MarkID:    c.MarkID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt.Format(DateTimeFormat),
		Owner:     NewUserFromDomain(c.Owner),
		Stat:      NewCommentStatFromDomain(c.Stat),
		Replies:   nil,
	}
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	root := NewSingleCommentFromDomain(c)
	if len(c.Replies) > 0 {
		replies := make([]*Comment, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, NewSingleCommentFromDomain(r))
		}
		root.Replies = replies
	}
	return root
}

type Reaction struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	CommentID int64  `json:"comment_id"`
	Type      string `json:"reaction_type"`
}

func NewReactionFromDomain(r *domain.CommentReaction) *Reaction {
	if r == nil {
		return nil
	}
	return &Reaction{
		ID:        r.ID,
		UserID:    r.UserID,
		CommentID: r.CommentID,
		Type:      string(r.Type),
	}
}

package comment

import (
	"context"
	"errors"
	"strings"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

// Hooks are explicit extension seams around comment creation. Both default
// to no-ops; AfterCreate must not block, the service does not wait on side
// effects triggered from it.
type Hooks struct {
	BeforeCreate func(ctx context.Context, c *domain.Comment) error
	AfterCreate  func(ctx context.Context, c *domain.Comment)
}

type Service struct {
	commentRepo domain.CommentRepository
	markRepo    domain.MarkRepository
	userRepo    domain.UserRepository
	statSyncer  domain.StatSyncer
	hooks       Hooks
}

var _ domain.CommentUsecase = (*Service)(nil)

type Option func(*Service)

func WithHooks(h Hooks) Option {
	return func(s *Service) {
		s.hooks = h
	}
}

// NewService will create a new comment service object
func NewService(commentRepo domain.CommentRepository, markRepo domain.MarkRepository, userRepo domain.UserRepository, statSyncer domain.StatSyncer, opts ...Option) *Service {
	s := &Service{
		commentRepo: commentRepo,
		markRepo:    markRepo,
		userRepo:    userRepo,
		statSyncer:  statSyncer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the thread-depth invariant and persists the comment with
// its stat row. A reply may only target a root comment; replying to a reply
// fails before anything is written.
func (s *Service) Create(ctx context.Context, content string, parentID, markID, ownerID int64) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > domain.CommentContentMaxLen {
		return nil, &domain.ValidationError{Field: "content", Value: content}
	}

	if _, err := s.markRepo.GetByID(ctx, markID); err != nil {
		return nil, err
	}

	if parentID != 0 {
		parent, err := s.commentRepo.GetByID(ctx, parentID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.ValidationError{Field: "parent_id", Value: parentID}
		} else if err != nil {
			return nil, err
		}
		if !parent.IsRoot() {
			return nil, domain.ErrNestingLevelExceeded
		}
	}

	comment := &domain.Comment{
		Content:  content,
		OwnerID:  ownerID,
		MarkID:   markID,
		ParentID: parentID,
	}

	if s.hooks.BeforeCreate != nil {
		if err := s.hooks.BeforeCreate(ctx, comment); err != nil {
			return nil, err
		}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.hooks.AfterCreate != nil {
		s.hooks.AfterCreate(ctx, comment)
	}
	if parentID != 0 && s.statSyncer != nil {
		s.statSyncer.Send(parentID)
	}
	return comment, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *Service) ListForMark(ctx context.Context, markID int64, params domain.PaginationParams) (domain.PaginationResponse[*domain.Comment], error) {
	params = params.Normalize()
	comments, total, err := s.commentRepo.ListForMark(ctx, markID, params)
	if err != nil {
		return domain.PaginationResponse[*domain.Comment]{}, err
	}
	if err := s.fillOwnerDetails(ctx, comments); err != nil {
		return domain.PaginationResponse[*domain.Comment]{}, err
	}
	return domain.NewPaginationResponse(comments, total, params), nil
}

func (s *Service) ListReplies(ctx context.Context, commentID int64, params domain.PaginationParams) (domain.PaginationResponse[*domain.Comment], error) {
	params = params.Normalize()
	replies, total, err := s.commentRepo.ListReplies(ctx, commentID, params)
	if err != nil {
		return domain.PaginationResponse[*domain.Comment]{}, err
	}
	if err := s.fillOwnerDetails(ctx, replies); err != nil {
		return domain.PaginationResponse[*domain.Comment]{}, err
	}
	return domain.NewPaginationResponse(replies, total, params), nil
}

// ToggleReaction delegates the three-way branch to the repository, which runs
// it transactionally, then queues the stat recomputation.
func (s *Service) ToggleReaction(ctx context.Context, commentID, userID int64, t domain.ReactionType) (domain.ToggleResult, error) {
	if !t.Valid() {
		return domain.ToggleResult{}, domain.ErrBadParamInput
	}

	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return domain.ToggleResult{}, err
	}

	res, err := s.commentRepo.ToggleReaction(ctx, userID, commentID, t)
	if err != nil {
		return domain.ToggleResult{}, err
	}

	if s.statSyncer != nil {
		s.statSyncer.Send(commentID)
	}
	return res, nil
}

// fillOwnerDetails hydrates comment owners (previews included) in one batch.
func (s *Service) fillOwnerDetails(ctx context.Context, comments []*domain.Comment) error {
	seen := make(map[int64]bool)
	var ids []int64
	collect := func(c *domain.Comment) {
		if !seen[c.OwnerID] {
			seen[c.OwnerID] = true
			ids = append(ids, c.OwnerID)
		}
	}
	for _, c := range comments {
		collect(c)
		for _, reply := range c.Replies {
			collect(reply)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	assign := func(c *domain.Comment) {
		if u, ok := byID[c.OwnerID]; ok {
			owner := u
			c.Owner = &owner
		}
	}
	for _, c := range comments {
		assign(c)
		for _, reply := range c.Replies {
			assign(reply)
		}
	}
	return nil
}

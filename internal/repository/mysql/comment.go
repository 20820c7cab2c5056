package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/filter"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

// Create inserts the comment row and its zeroed stat row in one transaction.
// Either both land or neither does.
func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentModel := model.NewCommentFromDomain(c)
		if err := tx.Create(commentModel).Error; err != nil {
			return err
		}

		stat := &model.CommentStat{
			CommentID:    commentModel.ID,
			LastActivity: time.Now(),
		}
		if err := tx.Create(stat).Error; err != nil {
			return err
		}

		c.ID = commentModel.ID
		c.CreatedAt = commentModel.CreatedAt
		c.UpdatedAt = commentModel.UpdatedAt
		statDomain := stat.ToDomain()
		c.Stat = &statDomain
		return nil
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var commentModel model.Comment
	err := r.DB.WithContext(ctx).First(&commentModel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	comment := commentModel.ToDomain()
	return &comment, nil
}

// ListForMark loads one page of root comments, then all their non-deleted
// replies in a single batch, and keeps only the oldest reply per root as the
// thread preview. The total comes from the counting primitive, not from the
// trimmed items.
func (r *commentRepository) ListForMark(ctx context.Context, markID int64, params domain.PaginationParams) ([]*domain.Comment, int64, error) {
	var roots []model.Comment
	err := r.DB.WithContext(ctx).
		Where("mark_id = ? AND parent_id IS NULL AND is_deleted = ?", markID, false).
		Order("created_at DESC").
		Limit(params.Limit()).
		Offset(params.Offset()).
		Find(&roots).Error
	if err != nil {
		return nil, 0, err
	}

	previews := make(map[int64]model.Comment)
	if len(roots) > 0 {
		rootIDs := make([]int64, len(roots))
		for i := range roots {
			rootIDs[i] = roots[i].ID
		}

		var replies []model.Comment
		err = r.DB.WithContext(ctx).
			Where("parent_id IN ? AND is_deleted = ?", rootIDs, false).
			Find(&replies).Error
		if err != nil {
			return nil, 0, err
		}

		for i := range replies {
			parentID := *replies[i].ParentID
			current, ok := previews[parentID]
			if !ok || replies[i].CreatedAt.Before(current.CreatedAt) {
				previews[parentID] = replies[i]
			}
		}
	}

	total, err := filter.Count(ctx, r.DB, &model.Comment{}, filter.Map{
		{Field: "mark_id", Value: markID},
		{Field: "is_deleted", Value: false},
	})
	if err != nil {
		return nil, 0, err
	}

	res := make([]*domain.Comment, len(roots))
	for i := range roots {
		comment := roots[i].ToDomain()
		if preview, ok := previews[comment.ID]; ok {
			reply := preview.ToDomain()
			comment.Replies = []*domain.Comment{&reply}
		}
		res[i] = &comment
	}
	return res, total, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID int64, params domain.PaginationParams) ([]*domain.Comment, int64, error) {
	var replies []model.Comment
	err := r.DB.WithContext(ctx).
		Where("parent_id = ? AND is_deleted = ?", parentID, false).
		Order("created_at DESC").
		Limit(params.Limit()).
		Offset(params.Offset()).
		Find(&replies).Error
	if err != nil {
		return nil, 0, err
	}

	total, err := filter.Count(ctx, r.DB, &model.Comment{}, filter.Map{
		{Field: "parent_id", Value: parentID},
		{Field: "is_deleted", Value: false},
	})
	if err != nil {
		return nil, 0, err
	}

	res := make([]*domain.Comment, len(replies))
	for i := range replies {
		reply := replies[i].ToDomain()
		res[i] = &reply
	}
	return res, total, nil
}

func (r *commentRepository) GetReaction(ctx context.Context, userID, commentID int64) (*domain.CommentReaction, error) {
	var reactionModel model.CommentReaction
	err := r.DB.WithContext(ctx).
		First(&reactionModel, "user_id = ? AND comment_id = ?", userID, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	reaction := reactionModel.ToDomain()
	return &reaction, nil
}

// ToggleReaction runs the three-way branch inside one transaction, holding a
// row lock on the existing reaction so two concurrent toggles from the same
// user serialize instead of both deleting or both inserting. The unique
// (user_id, comment_id) constraint backstops the insert window.
func (r *commentRepository) ToggleReaction(ctx context.Context, userID, commentID int64, t domain.ReactionType) (domain.ToggleResult, error) {
	var res domain.ToggleResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reactionModel model.CommentReaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND comment_id = ?", userID, commentID).
			First(&reactionModel).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			reactionModel = model.CommentReaction{
				UserID:    userID,
				CommentID: commentID,
				Type:      string(t),
			}
			if err := tx.Create(&reactionModel).Error; err != nil {
				return err
			}
			reaction := reactionModel.ToDomain()
			res.Reaction = &reaction
			return nil
		} else if err != nil {
			return err
		}

		if reactionModel.Type == string(t) {
			if err := tx.Delete(&model.CommentReaction{}, reactionModel.ID).Error; err != nil {
				return err
			}
			res.Removed = true
			return nil
		}

		if err := tx.Model(&reactionModel).Update("reaction_type", string(t)).Error; err != nil {
			return err
		}
		reactionModel.Type = string(t)
		reaction := reactionModel.ToDomain()
		res.Reaction = &reaction
		return nil
	})
	if err != nil {
		return domain.ToggleResult{}, err
	}
	return res, nil
}

// RecomputeStats rebuilds likes/dislikes/replies counters for the given
// comments from the source tables and bumps last_activity.
func (r *commentRepository) RecomputeStats(ctx context.Context, commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range commentIDs {
			likes, err := filter.Count(ctx, tx, &model.CommentReaction{}, filter.Map{
				{Field: "comment_id", Value: id},
				{Field: "reaction_type", Value: string(domain.ReactionLike)},
			})
			if err != nil {
				return err
			}
			dislikes, err := filter.Count(ctx, tx, &model.CommentReaction{}, filter.Map{
				{Field: "comment_id", Value: id},
				{Field: "reaction_type", Value: string(domain.ReactionDislike)},
			})
			if err != nil {
				return err
			}
			replies, err := filter.Count(ctx, tx, &model.Comment{}, filter.Map{
				{Field: "parent_id", Value: id},
				{Field: "is_deleted", Value: false},
			})
			if err != nil {
				return err
			}

			err = tx.Model(&model.CommentStat{}).
				Where("comment_id = ?", id).
				Updates(map[string]any{
					"likes_count":    likes,
					"dislikes_count": dislikes,
					"total_replies":  replies,
					"last_activity":  time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

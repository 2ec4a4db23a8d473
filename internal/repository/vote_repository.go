package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitsync/internal/model"
)

// VoteRepository defines forum vote persistence operations.
type VoteRepository interface {
	AddVoter(ctx context.Context, forumID uuid.UUID, userID string, voteType model.VoteType) (bool, error)
	Increment(ctx context.Context, forumID uuid.UUID, voteType model.VoteType) error
	Find(ctx context.Context, forumID uuid.UUID) (*model.VoteRecord, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// AddVoter adds userID to the voter set of a post. It reports false when the user was already a member.
func (r *voteRepository) AddVoter(ctx context.Context, forumID uuid.UUID, userID string, voteType model.VoteType) (bool, error) {
	voter := model.Voter{ForumID: forumID, UserID: userID, Type: voteType}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&voter)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Increment upserts the vote record of a post, adding one to the counter of voteType.
func (r *voteRepository) Increment(ctx context.Context, forumID uuid.UUID, voteType model.VoteType) error {
	record := model.VoteRecord{ForumID: forumID}
	column := "upvote_count"
	if voteType == model.VoteDown {
		column = "downvote_count"
		record.DownvoteCount = 1
	} else {
		record.UpvoteCount = 1
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "forum_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr("vote_records."+column+" + ?", 1),
		}),
	}).Create(&record).Error
}

// Find returns the vote record of a post with its voter set, or gorm.ErrRecordNotFound.
func (r *voteRepository) Find(ctx context.Context, forumID uuid.UUID) (*model.VoteRecord, error) {
	var record model.VoteRecord
	if err := r.db.WithContext(ctx).Where("forum_id = ?", forumID).First(&record).Error; err != nil {
		return nil, err
	}

	var voters []string
	if err := r.db.WithContext(ctx).Model(&model.Voter{}).
		Where("forum_id = ?", forumID).
		Order("id ASC").
		Pluck("user_id", &voters).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	record.VotedUsers = voters
	if record.VotedUsers == nil {
		record.VotedUsers = []string{}
	}
	return &record, nil
}

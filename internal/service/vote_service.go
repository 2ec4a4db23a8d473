package service

import (
	"context"
	stderrors "errors"
	"strings"

	"gorm.io/gorm"

	"fitsync/internal/errors"
	"fitsync/internal/model"
	"fitsync/internal/repository"
)

// VoteResult is the outcome of a vote. Counted is false when the user had already voted on the post.
type VoteResult struct {
	Counted bool              `json:"counted"`
	Votes   *model.VoteRecord `json:"votes"`
}

// VoteService aggregates forum votes. Each user counts once per post.
type VoteService interface {
	CastVote(ctx context.Context, forumID string, voteType model.VoteType, userID string) (*VoteResult, error)
	GetVotes(ctx context.Context, forumID string) (*model.VoteRecord, error)
}

type voteService struct {
	repo repository.VoteRepository
	tx   repository.Transactor
}

// NewVoteService creates a new vote service.
func NewVoteService(repo repository.VoteRepository, tx repository.Transactor) VoteService {
	return &voteService{repo: repo, tx: tx}
}

func (s *voteService) CastVote(ctx context.Context, forumID string, voteType model.VoteType, userID string) (*VoteResult, error) {
	if !voteType.Valid() {
		return nil, errors.ErrInvalidVote
	}
	id, err := parseID(forumID)
	if err != nil {
		return nil, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.ErrInvalidInput
	}

	var counted bool
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx *repository.Repositories) error {
		if _, err := tx.Forums.FindByID(ctx, id); err != nil {
			return storeError("find forum post", err)
		}
		added, err := tx.Votes.AddVoter(ctx, id, userID, voteType)
		if err != nil {
			return storeError("add voter", err)
		}
		if !added {
			return nil
		}
		counted = true
		return storeError("count vote", tx.Votes.Increment(ctx, id, voteType))
	})
	if err != nil {
		return nil, err
	}

	votes, err := s.GetVotes(ctx, forumID)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Counted: counted, Votes: votes}, nil
}

// GetVotes returns the votes of a post, or a zero record when nobody voted yet.
func (s *voteService) GetVotes(ctx context.Context, forumID string) (*model.VoteRecord, error) {
	id, err := parseID(forumID)
	if err != nil {
		return nil, err
	}
	record, err := s.repo.Find(ctx, id)
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return &model.VoteRecord{ForumID: id, VotedUsers: []string{}}, nil
	}
	if err != nil {
		return nil, storeError("find votes", err)
	}
	return record, nil
}

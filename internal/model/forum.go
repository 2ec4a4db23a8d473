package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForumPost is a discussion post written by a trainer or admin.
type ForumPost struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Image       string    `json:"image,omitempty" gorm:"size:1024"`
	AuthorName  string    `json:"author_name" gorm:"size:255"`
	AuthorEmail string    `json:"author_email" gorm:"size:255;index"`
	AuthorRole  Role      `json:"author_role" gorm:"type:varchar(20)"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (f *ForumPost) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// VoteType is the direction of a forum vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether v is up or down.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// VoteRecord aggregates the votes on one forum post. Created lazily on the first vote.
type VoteRecord struct {
	ForumID       uuid.UUID `json:"forum_id" gorm:"type:char(36);primaryKey"`
	UpvoteCount   int64     `json:"upvote_count" gorm:"not null;default:0"`
	DownvoteCount int64     `json:"downvote_count" gorm:"not null;default:0"`
	VotedUsers    []string  `json:"voted_users" gorm:"-"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Voter is one member of a post's voter set.
type Voter struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	ForumID   uuid.UUID `json:"forum_id" gorm:"type:char(36);not null;uniqueIndex:idx_vote_voters_forum_user,priority:1"`
	UserID    string    `json:"user_id" gorm:"size:255;not null;uniqueIndex:idx_vote_voters_forum_user,priority:2"`
	Type      VoteType  `json:"type" gorm:"type:varchar(8);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps voters next to vote_records.
func (Voter) TableName() string {
	return "vote_voters"
}

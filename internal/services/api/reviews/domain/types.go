// Package domain holds the review entity, DTOs and ports
package domain

import (
	"context"
	"time"

	"criticode/internal/core/analysis"
)

// MaxCodeBytes caps the stored code size
const MaxCodeBytes = 500 * 1024

// Review is one persisted analysis, owned exclusively by OwnerID
type Review struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Code      string          `json:"code"`
	Language  string          `json:"language"`
	FileName  string          `json:"file_name,omitempty"`
	Analysis  analysis.Result `json:"analysis"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Summary is the listing shape: everything but the code body
type Summary struct {
	ID         string    `json:"id"`
	Language   string    `json:"language"`
	FileName   string    `json:"file_name,omitempty"`
	IssueCount int       `json:"issue_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateInput carries a new review into the store
type CreateInput struct {
	OwnerID  string
	Code     string
	Language string
	FileName string
	Analysis analysis.Result
}

// ListInput selects a page of an owner's reviews
type ListInput struct {
	Page     int    `json:"page" validate:"omitempty,min=1"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Language string `json:"language" validate:"omitempty,max=50"`
	SortBy   string `json:"sort_by" validate:"omitempty,max=50"`
}

// SearchInput selects reviews matching a substring of file name or code
type SearchInput struct {
	Query string `json:"q" validate:"required,min=1,max=200"`
	Page  int    `json:"page" validate:"omitempty,min=1"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ListPage is a page of summaries with totals
type ListPage struct {
	Items      []Summary
	Total      int
	TotalPages int
	Page       int
	Limit      int
}

// Stats aggregates an owner's review activity
type Stats struct {
	Total     int       `json:"total"`
	Languages []string  `json:"languages"`
	Recent    []Summary `json:"recent"`
}

// SortFields is the whitelist for ListInput.SortBy; anything else falls back
// to creation time
var SortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"language":   "language",
	"file_name":  "file_name",
}

// ReaderPort is the read surface other modules may consume
type ReaderPort interface {
	GetByID(ctx context.Context, id, ownerID string) (Review, error)
	List(ctx context.Context, ownerID string, in ListInput) (ListPage, error)
	Search(ctx context.Context, ownerID string, in SearchInput) (ListPage, error)
	Stats(ctx context.Context, ownerID string) (Stats, error)
}

// WriterPort is the write surface other modules may consume
type WriterPort interface {
	Create(ctx context.Context, in CreateInput) (Review, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// Ports is the full review store surface
type Ports interface {
	ReaderPort
	WriterPort
}

// Repo is the persistence contract behind the service
type Repo interface {
	Insert(ctx context.Context, in CreateInput) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	List(ctx context.Context, ownerID string, in ListInput) ([]Summary, int, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, ownerID string, in SearchInput) ([]Summary, int, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	LanguagesByOwner(ctx context.Context, ownerID string) ([]string, error)
	Recent(ctx context.Context, ownerID string, n int) ([]Summary, error)
}

// Package domain holds DTOs for the analyze pipeline
package domain

import "criticode/internal/core/analysis"

// AnalyzeInput is the JSON body of an analyze request
type AnalyzeInput struct {
	Code     string `json:"code" validate:"required" example:"SELECT * FROM users"`
	Language string `json:"language" validate:"required,max=50" example:"sql"`
	FileName string `json:"fileName,omitempty" validate:"omitempty,max=255" example:"query.sql"`
}

// AnalyzeOutput is the pipeline response. ReviewID is set only when the
// analysis was persisted for an identified caller
type AnalyzeOutput struct {
	Analysis analysis.Result `json:"analysis"`
	ReviewID string          `json:"reviewId,omitempty"`
	Saved    bool            `json:"saved"`
}

// Package service orchestrates the analyze pipeline: invoke the model, then
// persist best-effort for identified callers
package service

import (
	"context"

	"criticode/internal/core/textclean"
	"criticode/internal/platform/logger"
	analyzerdomain "criticode/internal/services/analyzer/domain"
	"criticode/internal/services/api/analyze/domain"
	reviewsdomain "criticode/internal/services/api/reviews/domain"
)

// Svc wires the invoker to the review store
type Svc struct {
	invoker analyzerdomain.InvokerPort
	store   reviewsdomain.WriterPort
}

// New constructs the analyze service. store may be nil when persistence is
// disabled; results are then returned unsaved
func New(invoker analyzerdomain.InvokerPort, store reviewsdomain.WriterPort) *Svc {
	if invoker == nil {
		panic("analyze.Service requires a non-nil invoker")
	}
	return &Svc{invoker: invoker, store: store}
}

// Analyze runs the pipeline for one request. Invocation failures propagate
// unchanged; persistence failures are logged and reported through Saved=false
// while the analysis is still returned in full. ownerID is empty for
// anonymous callers, whose results are never persisted
func (s *Svc) Analyze(ctx context.Context, ownerID string, in domain.AnalyzeInput) (domain.AnalyzeOutput, error) {
	in.Code = textclean.Code(in.Code)

	result, err := s.invoker.Analyze(ctx, in.Code, in.Language)
	if err != nil {
		return domain.AnalyzeOutput{}, err
	}

	out := domain.AnalyzeOutput{Analysis: result}
	if ownerID == "" || s.store == nil {
		return out, nil
	}

	// the save must survive a client disconnect; the analysis is already paid for
	rev, err := s.store.Create(context.WithoutCancel(ctx), reviewsdomain.CreateInput{
		OwnerID:  ownerID,
		Code:     in.Code,
		Language: in.Language,
		FileName: in.FileName,
		Analysis: result,
	})
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("owner_id", ownerID).Msg("review save failed")
		return out, nil
	}
	out.ReviewID = rev.ID
	out.Saved = true
	return out, nil
}

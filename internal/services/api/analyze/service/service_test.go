package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"criticode/internal/core/analysis"
	perr "criticode/internal/platform/errors"
	"criticode/internal/services/api/analyze/domain"
	reviewsdomain "criticode/internal/services/api/reviews/domain"
)

type fakeInvoker struct {
	result analysis.Result
	err    error
	calls  int
}

func (f *fakeInvoker) Analyze(context.Context, string, string) (analysis.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeWriter struct {
	created   []reviewsdomain.CreateInput
	createErr error
}

func (f *fakeWriter) Create(_ context.Context, in reviewsdomain.CreateInput) (reviewsdomain.Review, error) {
	if f.createErr != nil {
		return reviewsdomain.Review{}, f.createErr
	}
	f.created = append(f.created, in)
	return reviewsdomain.Review{ID: "saved-1", OwnerID: in.OwnerID}, nil
}

func (f *fakeWriter) Delete(context.Context, string, string) error { return nil }

func input() domain.AnalyzeInput {
	return domain.AnalyzeInput{Code: "print(1)", Language: "python", FileName: "main.py"}
}

func TestAnalyzeIdentifiedCallerPersists(t *testing.T) {
	writer := &fakeWriter{}
	svc := New(&fakeInvoker{result: analysis.Empty()}, writer)

	out, err := svc.Analyze(context.Background(), "alice", input())
	require.NoError(t, err)
	assert.True(t, out.Saved)
	assert.Equal(t, "saved-1", out.ReviewID)
	require.Len(t, writer.created, 1)
	assert.Equal(t, "alice", writer.created[0].OwnerID)
	assert.Equal(t, "main.py", writer.created[0].FileName)
}

func TestAnalyzeAnonymousCallerSkipsPersistence(t *testing.T) {
	writer := &fakeWriter{}
	svc := New(&fakeInvoker{result: analysis.Empty()}, writer)

	out, err := svc.Analyze(context.Background(), "", input())
	require.NoError(t, err)
	assert.False(t, out.Saved)
	assert.Empty(t, out.ReviewID)
	assert.Empty(t, writer.created, "anonymous results are never stored")
}

func TestAnalyzePersistenceFailureDoesNotFailRequest(t *testing.T) {
	res := analysis.Empty()
	res.Security = append(res.Security, analysis.SecurityIssue{
		Severity: analysis.SeverityHigh, Issue: "injection", Line: 1,
	})
	writer := &fakeWriter{createErr: perr.Unavailablef("db down")}
	svc := New(&fakeInvoker{result: res}, writer)

	out, err := svc.Analyze(context.Background(), "alice", input())
	require.NoError(t, err, "a storage hiccup must not discard the analysis")
	assert.False(t, out.Saved)
	assert.Empty(t, out.ReviewID)
	require.Len(t, out.Analysis.Security, 1, "analysis returned in full")
}

func TestAnalyzeInvokerFailurePropagates(t *testing.T) {
	writer := &fakeWriter{}
	svc := New(&fakeInvoker{err: perr.Timeoutf("model timed out")}, writer)

	_, err := svc.Analyze(context.Background(), "alice", input())
	require.Error(t, err)
	assert.Equal(t, perr.ErrorCodeTimeout, perr.CodeOf(err))
	assert.Empty(t, writer.created, "no persistence after a failed invocation")
}

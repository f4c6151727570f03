// Package http provides http transport for the analyze pipeline
package http

import (
	"io"
	stdhttp "net/http"
	"strings"

	"criticode/internal/core/langdetect"
	"criticode/internal/modkit/httpkit"
	perr "criticode/internal/platform/errors"
	"criticode/internal/platform/net/http/bind"
	"criticode/internal/services/api/analyze/domain"
	svc "criticode/internal/services/api/analyze/service"
)

// Register mounts analyze endpoints on the given router
func Register(r httpkit.Router, s *svc.Svc) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AnalyzeInput](r, "/", h.analyze)
	r.Post("/upload", httpkit.Handle(h.upload))
}

type handlers struct{ svc *svc.Svc }

func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), httpkit.UserOptional(r), in)
}

// upload feeds a single source file through the same pipeline, inferring the
// language from the file extension
func (h *handlers) upload(r *stdhttp.Request) httpkit.Response {
	if err := r.ParseMultipartForm(langdetect.MaxUploadBytes); err != nil {
		return httpkit.Error(perr.InvalidArgf("malformed multipart body: %v", err))
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return httpkit.Error(perr.InvalidArgf("a file field is required"))
	}
	defer file.Close()

	if header.Size > langdetect.MaxUploadBytes {
		return httpkit.Error(perr.InvalidArgf("file exceeds the %d byte limit", langdetect.MaxUploadBytes))
	}
	lang, ok := langdetect.Detect(header.Filename)
	if !ok {
		return httpkit.Error(perr.InvalidArgf(
			"unsupported file type, accepted extensions: %s",
			strings.Join(langdetect.Extensions(), ", ")))
	}

	code, err := io.ReadAll(io.LimitReader(file, langdetect.MaxUploadBytes+1))
	if err != nil {
		return httpkit.Error(perr.InvalidArgf("reading upload failed: %v", err))
	}
	if len(code) > langdetect.MaxUploadBytes {
		return httpkit.Error(perr.InvalidArgf("file exceeds the %d byte limit", langdetect.MaxUploadBytes))
	}

	in := domain.AnalyzeInput{Code: string(code), Language: lang, FileName: header.Filename}
	if err := bind.Validate(&in); err != nil {
		return httpkit.Error(err)
	}

	out, err := h.svc.Analyze(r.Context(), httpkit.UserOptional(r), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(out)
}

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/joseph-ayodele/ecoscan/internal/common"
	"github.com/joseph-ayodele/ecoscan/internal/pipeline"
)

const fileField = "file"

func (s *HTTPServer) handleOCR(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/ocr/" && r.URL.Path != "/ocr" {
		respondJSON(w, http.StatusNotFound, ErrorEnvelope{Error: "not found"})
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondJSON(w, http.StatusMethodNotAllowed, ErrorEnvelope{Error: "method not allowed"})
		return
	}
	log := common.LoggerFromContext(r.Context(), s.logger)

	credential := strings.TrimSpace(r.Header.Get(s.cfg.CredentialHeader))
	v := common.NewValidator().Field(s.cfg.CredentialHeader+" header", credential, common.Required)
	if err := v.AsAppError(common.KindInvalidRequest); err != nil {
		log.Warn("ocr.request.rejected", "reason", "missing credential")
		respondError(w, err)
		return
	}

	image, err := s.readUpload(w, r)
	if err != nil {
		log.Warn("ocr.request.rejected", "reason", err.Error())
		respondError(w, err)
		return
	}

	// External calls outlive a client disconnect; the result is simply dropped.
	ctx := context.WithoutCancel(r.Context())
	res, err := s.proc.Process(ctx, pipeline.Request{Image: image, Credential: credential})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessEnvelope{
		OCRText:        res.OCRText,
		StructuredData: res.StructuredData,
	})
}

// readUpload returns the bytes of the first "file" part of a multipart body.
func (s *HTTPServer) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, invalidRequest("expecting multipart/form-data body", err)
	}
	part, err := nextFilePart(mr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalidRequest(fmt.Sprintf("multipart field %q is required", fileField), nil)
		}
		return nil, uploadError(err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, uploadError(err)
	}
	return data, nil
}

func nextFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return nil, err
		}
		if part.FormName() == fileField {
			return part, nil
		}
		part.Close()
	}
}

func uploadError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return invalidRequest(fmt.Sprintf("upload exceeds limit (%d bytes)", tooBig.Limit), err)
	}
	return invalidRequest("read upload", err)
}

func invalidRequest(msg string, cause error) error {
	if cause == nil {
		cause = common.ErrInvalidInput
	}
	return common.NewAppError(common.KindInvalidRequest, msg, cause)
}

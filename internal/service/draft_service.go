package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/dto"
	"github.com/okulpanel/rehberlik-api/pkg/export"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

// TextGenerator produces a draft for one prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var draftTitles = map[dto.DraftKind]string{
	dto.DraftParentLetter:   "Veli Bilgilendirme Mektubu",
	dto.DraftInterviewNote:  "Öğrenci Görüşme Notu",
	dto.DraftObservationRpt: "Gözlem Raporu",
}

// DraftService produces AI-assisted guidance-document drafts. The generator
// may be nil when no API key is configured; drafting is then unavailable.
type DraftService struct {
	generator TextGenerator
	renderer  *export.PDFRenderer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDraftService constructs the service.
func NewDraftService(generator TextGenerator, renderer *export.PDFRenderer, validate *validator.Validate, logger *zap.Logger) *DraftService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = export.NewPDFRenderer()
	}
	return &DraftService{generator: generator, renderer: renderer, validator: validate, logger: logger}
}

// Draft generates a document skeleton from the counselor's bullet points.
func (s *DraftService) Draft(ctx context.Context, req dto.DraftRequest) (*dto.DraftResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft request")
	}
	if s.generator == nil {
		return nil, appErrors.Clone(appErrors.ErrChannelUnavailable, "document drafting is not configured")
	}

	text, err := s.generator.Generate(ctx, buildDraftPrompt(req))
	if err != nil {
		s.logger.Warn("draft generation failed", zap.String("kind", string(req.Kind)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrChannelFailed.Code, appErrors.ErrChannelFailed.Status, "draft generation failed")
	}

	return &dto.DraftResponse{
		Kind:  req.Kind,
		Title: draftTitles[req.Kind],
		Text:  strings.TrimSpace(text),
	}, nil
}

// DraftPDF generates a draft and renders it as a printable PDF.
func (s *DraftService) DraftPDF(ctx context.Context, req dto.DraftRequest) ([]byte, error) {
	draft, err := s.Draft(ctx, req)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(export.Document{
		Title:    draft.Title,
		Subtitle: req.StudentName,
		Body:     draft.Text,
		Footer:   "Rehberlik Servisi",
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render draft pdf")
	}
	return pdf, nil
}

func buildDraftPrompt(req dto.DraftRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bir okul rehberlik servisi için %q türünde resmi bir belge taslağı yaz.\n", draftTitles[req.Kind])
	fmt.Fprintf(&b, "Öğrenci: %s\n", req.StudentName)
	b.WriteString("Belgede şu noktalara yer ver:\n")
	for _, point := range req.Points {
		fmt.Fprintf(&b, "- %s\n", point)
	}
	b.WriteString("Resmi ve saygılı bir dil kullan; kişisel yargılardan kaçın. Yalnızca belge metnini döndür.")
	return b.String()
}

package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/validation"
)

// SourceLanguage is the language uploaded documents are assumed to be written in.
const SourceLanguage = "en"

// Languages are the summary target languages, in display order.
var Languages = []dto.Language{
	{Code: "id", Name: "Indonesia"},
	{Code: "ban", Name: "Bali"},
	{Code: "jw", Name: "Jawa"},
	{Code: "su", Name: "Sunda"},
	{Code: "btx", Name: "Batak Karo"},
	{Code: "bts", Name: "Batak Simalungun"},
	{Code: "bbc", Name: "Batak Toba"},
	{Code: "min", Name: "Minang"},
}

// SummarizerService defines the interface for the summarizer page
type SummarizerService interface {
	Languages() dto.SummarizerView
	Summarize(ctx context.Context, sess SessionStore, form dto.SummarizeForm, file backend.File) (*models.Summary, error)
}

type summarizerServiceImpl struct {
	api Backend
	log zerolog.Logger
}

// NewSummarizerService creates a new SummarizerService
func NewSummarizerService(api Backend, logger zerolog.Logger) SummarizerService {
	return &summarizerServiceImpl{
		api: api,
		log: logger.With().Str("service", "summarizer").Logger(),
	}
}

func (s *summarizerServiceImpl) Languages() dto.SummarizerView {
	languages := make([]dto.Language, len(Languages))
	copy(languages, Languages)
	return dto.SummarizerView{SourceLang: SourceLanguage, Languages: languages}
}

// Summarize checks that file is a PDF and uploads it for summarization.
func (s *summarizerServiceImpl) Summarize(ctx context.Context, sess SessionStore, form dto.SummarizeForm, file backend.File) (*models.Summary, error) {
	if err := validation.Merge(validation.Struct(form), validation.CheckPDF("file", file.Content)); err != nil {
		return nil, err
	}
	file.ContentType = "application/pdf"

	summary, err := s.api.SummarizeUpload(ctx, sess.Token(ctx), backend.SummarizeRequest{
		File:       file,
		SourceLang: SourceLanguage,
		TargetLang: form.TargetLang,
	})
	if err != nil {
		s.log.Error().Err(err).Str("file", file.Name).Str("targetLang", form.TargetLang).Msg("Summarization failed")
		return nil, err
	}
	return summary, nil
}

package dto

import "github.com/yigit/edureach/internal/app/models"

// SummarizeForm is submitted to POST /summarizer as multipart with a "file" part.
type SummarizeForm struct {
	TargetLang string `json:"targetLang" form:"targetLang" validate:"required,oneof=id ban jw su btx bts bbc min" label:"Bahasa tujuan"`
}

// Language is a summarizer target language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SummarizerView is the summarizer page.
type SummarizerView struct {
	SourceLang string     `json:"sourceLang"`
	Languages  []Language `json:"languages"`
}

// SummaryResultView is returned after a successful summarization.
type SummaryResultView struct {
	Summary models.Summary `json:"summary"`
}

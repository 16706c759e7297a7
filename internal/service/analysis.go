package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aiot_brain/internal/models"
	"aiot_brain/internal/repository"
	"aiot_brain/internal/stats"
	"aiot_brain/internal/thingsboard"

	"github.com/google/uuid"
)

const analysisWindow = 30 * 24 * time.Hour

type AnalysisService struct {
	p         *platform
	completer Completer
	journal   repository.AnalysisRepo
	model     string
	language  string
}

func NewAnalysisService(p *platform, completer Completer, journal repository.AnalysisRepo, model, language string) *AnalysisService {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return &AnalysisService{p: p, completer: completer, journal: journal, model: model, language: language}
}

// Ask summarises the last 30 days of a device into a per-day digest and asks
// the text-generation service to answer the question from that digest alone.
func (s *AnalysisService) Ask(ctx context.Context, req AskRequest) (AskResult, error) {
	deviceID, err := requireDeviceID(req.DeviceID)
	if err != nil {
		return AskResult{}, err
	}
	if s.completer == nil {
		return AskResult{}, ErrServiceUnavailable
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		question = DefaultQuestion
	}

	token, err := s.p.login(ctx)
	if err != nil {
		return AskResult{}, err
	}
	now := s.p.now()
	series, err := s.p.fetch(ctx, token, thingsboard.RawQuery(deviceID, DefaultKey, now.Add(-analysisWindow), now))
	if err != nil {
		return AskResult{}, err
	}

	digest := stats.Digest(series[DefaultKey], s.p.loc)
	if len(digest) == 0 {
		return AskResult{}, fmt.Errorf("%w: no temperature readings for device %s in the last 30 days", ErrNoData, deviceID)
	}

	prompt, err := BuildPrompt(digest, question, s.language)
	if err != nil {
		return AskResult{}, err
	}

	answer, genErr := s.completer.Complete(ctx, s.model, prompt)
	s.record(ctx, deviceID, question, answer, genErr, now)
	if genErr != nil {
		return AskResult{}, fmt.Errorf("%w: %w", ErrUpstreamGeneration, genErr)
	}
	return AskResult{Analysis: answer}, nil
}

// record journals the attempt. A journal failure never changes the answer.
func (s *AnalysisService) record(ctx context.Context, deviceID, question, answer string, genErr error, at time.Time) {
	if s.journal == nil {
		return
	}
	rec := models.AnalysisRecord{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		Question:  question,
		Model:     s.model,
		CreatedAt: at.UTC(),
	}
	if genErr != nil {
		rec.Error = genErr.Error()
	} else {
		rec.Answer = answer
	}
	if err := s.journal.Append(ctx, rec); err != nil && s.p.log != nil {
		s.p.log.Warnw("analysis_journal_append_failed", "device_id", deviceID, "err", err)
	}
}

// BuildPrompt renders the instruction sent to the model: analyst persona,
// the digest as indented JSON, the question verbatim, and the constraints to
// answer only from the digest and only in language.
func BuildPrompt(digest []models.DigestEntry, question, language string) (string, error) {
	summary, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode digest: %w", err)
	}

	var b strings.Builder
	b.WriteString("Act as a senior AIoT data analyst.\n\n")
	b.WriteString("Background: the sensor readings of this device over the past 30 days have been ")
	b.WriteString("pre-processed into a daily summary report:\n---\n")
	b.Write(summary)
	b.WriteString("\n---\n\n")
	b.WriteString("Your task: using only the summary report above, analyse and answer the user's specific question. ")
	b.WriteString("If the question is about yesterday, focus on yesterday's entry; if it is about this week's trend, ")
	b.WriteString("look at how the last seven days change.\n\n")
	fmt.Fprintf(&b, "Answer in a friendly, professional, conversational tone in %s.\n\n", language)
	fmt.Fprintf(&b, "The user's question:\nQuestion: \"%s\"\n\n", question)
	fmt.Fprintf(&b, "---\nFinal instruction: your answer must be based entirely on the daily summary report above and must be written only in %s.\n", language)
	return b.String(), nil
}

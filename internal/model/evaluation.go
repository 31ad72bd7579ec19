package model

import "time"

type ScoreMethod string

const (
	ScoreMethodEmbedding ScoreMethod = "embedding"
	ScoreMethodLexical   ScoreMethod = "lexical"
)

// FallbackHint is returned whenever hint generation cannot produce a usable clue
const FallbackHint = "Rethink your strategy."

// EvaluationResult is derived per attempt and never stored on its own.
// A zero SimilarityScore with ScoreUnavailable set means scoring failed, not dissimilarity.
type EvaluationResult struct {
	SimilarityScore  float64     `json:"similarityScore" bson:"similarityScore"`
	AIResponse       string      `json:"aiResponse" bson:"aiResponse"`
	Hint             string      `json:"hint" bson:"hint"`
	Passed           bool        `json:"passed" bson:"passed"`
	ScoreUnavailable bool        `json:"scoreUnavailable" bson:"scoreUnavailable"`
	HintUnavailable  bool        `json:"hintUnavailable" bson:"hintUnavailable"`
	ScoreMethod      ScoreMethod `json:"scoreMethod" bson:"scoreMethod"`
}

// SubmissionAttempt is one player submission
type SubmissionAttempt struct {
	LevelNumber   int       `json:"levelNumber" bson:"levelNumber"`
	CandidateText string    `json:"candidateText" bson:"candidateText"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

// AttemptLog is the write-only audit record of a scored submission
type AttemptLog struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty"`
	SessionID        string    `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	LevelNumber      int       `json:"levelNumber" bson:"levelNumber"`
	CandidateText    string    `json:"candidateText" bson:"candidateText"`
	ReferenceText    string    `json:"referenceText" bson:"referenceText"`
	Score            float64   `json:"score" bson:"score"`
	Passed           bool      `json:"passed" bson:"passed"`
	ScoreUnavailable bool      `json:"scoreUnavailable" bson:"scoreUnavailable"`
	Timestamp        time.Time `json:"timestamp" bson:"timestamp"`
}

// NewAttemptLog builds the audit record for a scored submission
func NewAttemptLog(sessionID string, sub SubmissionAttempt, reference string, result EvaluationResult) *AttemptLog {
	return &AttemptLog{
		SessionID:        sessionID,
		LevelNumber:      sub.LevelNumber,
		CandidateText:    sub.CandidateText,
		ReferenceText:    reference,
		Score:            result.SimilarityScore,
		Passed:           result.Passed,
		ScoreUnavailable: result.ScoreUnavailable,
		Timestamp:        sub.Timestamp,
	}
}

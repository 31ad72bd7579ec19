package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are JWT claims for an anonymous play session token
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// SessionStartResponse is returned when a play session is created
type SessionStartResponse struct {
	Session SessionView `json:"session"`
	Token   string      `json:"token"`
}

// SubmitRequest is the body of a session submission
type SubmitRequest struct {
	Candidate string `json:"candidate"`
}

// EvaluateRequest is the body of a stateless evaluation
type EvaluateRequest struct {
	LevelNumber int    `json:"levelNumber"`
	Candidate   string `json:"candidate"`
}

// SubmitResponse carries the evaluation and the resulting session state
type SubmitResponse struct {
	Result     EvaluationResult `json:"result"`
	Transition Transition       `json:"transition"`
	Session    SessionView      `json:"session"`
}

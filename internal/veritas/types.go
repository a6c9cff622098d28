package veritas

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type verifyRequest struct {
	Text string `json:"text"`
}

// VerifyResult is the fused verdict for a submitted claim.
type VerifyResult struct {
	Score   int    `json:"score"` // 0-100 confidence
	Verdict string `json:"verdict"`
	Sources int    `json:"sources"`
}

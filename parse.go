package readiness

import (
	"encoding/json"
	"fmt"
	"strings"
)

// assessmentRequest mirrors the wire shape of an assessment payload.
// The student name is historically sent under two spellings; both are
// accepted and normalized into AssessmentResult.StudentName.
type assessmentRequest struct {
	StudentName      string             `json:"studentName"`
	StudentNameSnake string             `json:"student_name"`
	Scores           map[string]float64 `json:"scores"`
	OverallIndex     float64            `json:"overallIndex"`
	ReadinessLevel   string             `json:"readinessLevel"`
	Strengths        string             `json:"strengths"`
	Gaps             string             `json:"gaps"`
	Recommendations  string             `json:"recommendations"`
	CountryFit       []string           `json:"countryFit"`
}

// ParseAssessmentResult decodes a JSON assessment payload into a
// normalized AssessmentResult. It returns ErrMissingStudentName when
// neither accepted name spelling carries a non-blank value. Optional
// fields stay empty here; defaults are applied at render time.
func ParseAssessmentResult(data []byte) (*AssessmentResult, error) {
	var req assessmentRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decoding assessment payload: %w", err)
	}

	name := strings.TrimSpace(req.StudentName)
	if name == "" {
		name = strings.TrimSpace(req.StudentNameSnake)
	}
	if name == "" {
		return nil, ErrMissingStudentName
	}

	return &AssessmentResult{
		StudentName:     name,
		Scores:          req.Scores,
		OverallIndex:    req.OverallIndex,
		ReadinessLevel:  strings.TrimSpace(req.ReadinessLevel),
		Strengths:       req.Strengths,
		Gaps:            req.Gaps,
		Recommendations: req.Recommendations,
		CountryFit:      req.CountryFit,
	}, nil
}

// withDefaults returns a copy of the result with documented fallback
// values substituted for absent optional fields.
func withDefaults(r AssessmentResult) AssessmentResult {
	if strings.TrimSpace(r.ReadinessLevel) == "" {
		r.ReadinessLevel = DefaultReadinessLevel
	}
	if strings.TrimSpace(r.Strengths) == "" {
		r.Strengths = DefaultStrengths
	}
	if strings.TrimSpace(r.Gaps) == "" {
		r.Gaps = DefaultGaps
	}
	if strings.TrimSpace(r.Recommendations) == "" {
		r.Recommendations = DefaultRecommendations
	}
	return r
}

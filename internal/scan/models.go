package scan

import "time"

// Grade is an appraisal tier, S best and F worst.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades lists every tier from best to worst.
func Grades() []Grade {
	return []Grade{GradeS, GradeA, GradeB, GradeC, GradeD, GradeF}
}

// Metrics are the per-dimension scores of an appraisal, each in [0, 100].
type Metrics struct {
	Authenticity  float64 `json:"authenticity" validate:"finite,min=0,max=100"`
	Craftsmanship float64 `json:"craftsmanship" validate:"finite,min=0,max=100"`
	Preservation  float64 `json:"preservation" validate:"finite,min=0,max=100"`
	Provenance    float64 `json:"provenance" validate:"finite,min=0,max=100"`
}

// Average returns the mean of the four metrics.
func (m Metrics) Average() float64 {
	return (m.Authenticity + m.Craftsmanship + m.Preservation + m.Provenance) / 4 //nolint:mnd // four metrics
}

// AppraisalData is the result of one completed scan.
type AppraisalData struct {
	ID           string    `json:"id" validate:"required"`
	Grade        Grade     `json:"grade" validate:"oneof=S A B C D F"`
	Value        float64   `json:"value" validate:"finite,gt=0"`
	Confidence   float64   `json:"confidence" validate:"finite,min=0,max=100"`
	Metrics      Metrics   `json:"metrics"`
	Timestamp    time.Time `json:"timestamp" validate:"required"`
	ArtifactName string    `json:"artifact_name" validate:"required"`
	ArtifactType string    `json:"artifact_type" validate:"required"`
}

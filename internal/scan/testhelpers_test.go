//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package scan

import (
	"time"
)

func sampleAppraisal() AppraisalData {
	return AppraisalData{
		ID:           "artifact-test",
		Grade:        GradeA,
		Value:        650,
		Confidence:   92,
		Metrics:      Metrics{Authenticity: 80, Craftsmanship: 70, Preservation: 85, Provenance: 60},
		Timestamp:    time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		ArtifactName: "Enigmatic Power Core",
		ArtifactType: "Power Core",
	}
}

// countingGenerator returns sampleAppraisal and counts calls.
type countingGenerator struct {
	calls int
	err   error
}

func (g *countingGenerator) Generate() (AppraisalData, error) {
	g.calls++
	if g.err != nil {
		return AppraisalData{}, g.err
	}
	return sampleAppraisal(), nil
}

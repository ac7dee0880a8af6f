package scan

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

type gradeWeight struct {
	grade Grade
	// cumulative percentage upper bound
	upTo float64
}

//nolint:gochecknoglobals // fixed distribution tables
var (
	gradeWeights = []gradeWeight{
		{GradeS, 5},
		{GradeA, 30},
		{GradeB, 70},
		{GradeC, 95},
		{GradeD, 98},
		{GradeF, 100},
	}

	valueRanges = map[Grade][2]int{
		GradeS: {800, 1500},
		GradeA: {400, 800},
		GradeB: {200, 400},
		GradeC: {100, 200},
		GradeD: {50, 100},
		GradeF: {10, 50},
	}

	gradeMultiplier = map[Grade]float64{
		GradeS: 1.0,
		GradeA: 0.9,
		GradeB: 0.75,
		GradeC: 0.6,
		GradeD: 0.45,
		GradeF: 0.3,
	}

	artifactTypes = []string{
		"Ancient Relic",
		"Cybernetic Implant",
		"Pre-War Tech",
		"Alien Artifact",
		"Quantum Device",
		"Neural Interface",
		"Power Core",
		"Data Storage",
	}

	artifactAdjectives = []string{
		"Mysterious",
		"Enigmatic",
		"Ancient",
		"Advanced",
		"Experimental",
		"Prototype",
		"Military",
		"Civilian",
	}
)

const (
	metricSpread   = 20
	minConfidence  = 85
	maxConfidence  = 99
	confidenceJolt = 10
	idPrefix       = "artifact-"
)

// MockGenerator produces randomized appraisals. Higher grades are rarer and
// carry higher values and metrics.
type MockGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewMockGenerator returns a generator seeded from seed. The same seed yields
// the same sequence of grades, values and metrics.
func NewMockGenerator(seed uint64) *MockGenerator {
	return &MockGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // mock data
		now: time.Now,
	}
}

// Generate implements Generator. It never fails.
func (g *MockGenerator) Generate() (AppraisalData, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	grade := g.grade()
	metrics := g.metrics(grade)
	confidence := min(maxConfidence, max(minConfidence, metrics.Average()+g.rng.Float64()*confidenceJolt))
	kind := artifactTypes[g.rng.IntN(len(artifactTypes))]
	adjective := artifactAdjectives[g.rng.IntN(len(artifactAdjectives))]

	return AppraisalData{
		ID:           idPrefix + uuid.NewString(),
		Grade:        grade,
		Value:        g.value(grade),
		Confidence:   math.Round(confidence),
		Metrics:      metrics,
		Timestamp:    g.now(),
		ArtifactName: adjective + " " + kind,
		ArtifactType: kind,
	}, nil
}

func (g *MockGenerator) grade() Grade {
	roll := g.rng.Float64() * 100
	for _, w := range gradeWeights {
		if roll < w.upTo {
			return w.grade
		}
	}
	return GradeF
}

func (g *MockGenerator) value(grade Grade) float64 {
	r := valueRanges[grade]
	return float64(r[0] + g.rng.IntN(r[1]-r[0]+1))
}

func (g *MockGenerator) metrics(grade Grade) Metrics {
	mult := gradeMultiplier[grade]
	around := func(mean float64) float64 {
		v := mean*mult + (g.rng.Float64()-0.5)*metricSpread
		return min(100, max(0, v))
	}
	return Metrics{
		Authenticity:  around(85),
		Craftsmanship: around(80),
		Preservation:  around(90),
		Provenance:    around(70),
	}
}

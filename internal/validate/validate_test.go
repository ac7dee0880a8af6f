package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar_Finite(t *testing.T) {
	assert.NoError(t, Var(12.5, "finite"))
	assert.NoError(t, Var(-360.0, "finite,min=-360"))
	assert.Error(t, Var(math.NaN(), "finite"))
	assert.Error(t, Var(math.Inf(1), "finite"))
	assert.Error(t, Var(math.Inf(-1), "finite"))
}

func TestStruct_FiniteWithBounds(t *testing.T) {
	type sample struct {
		Score float64 `validate:"finite,min=0,max=100"`
		Name  string  `validate:"required"`
	}
	assert.NoError(t, Struct(sample{Score: 42, Name: "x"}))
	assert.Error(t, Struct(sample{Score: 101, Name: "x"}))
	assert.Error(t, Struct(sample{Score: math.NaN(), Name: "x"}))
	assert.Error(t, Struct(sample{Score: 1}))
}

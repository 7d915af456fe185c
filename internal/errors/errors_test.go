package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := Incomplete("weight")
	assert.Equal(t, "[INCOMPLETE_INPUT] weight is required and must be a finite non-negative number", err.Error())

	wrapped := Parsing("bad worksheet", fmt.Errorf("line 3"))
	assert.Equal(t, "[PARSING_ERROR] bad worksheet: line 3", wrapped.Error())
}

func TestIsTypeFollowsChain(t *testing.T) {
	base := Infeasible("added metal purity %.1f does not exceed target %.1f", 91.6, 91.6)
	chained := fmt.Errorf("alloy %q: %w", "bar", base)

	assert.True(t, IsType(chained, TypeInfeasibleTarget))
	assert.False(t, IsType(chained, TypeInvalidRange))
	assert.Equal(t, TypeInfeasibleTarget, TypeOf(chained))
	assert.Equal(t, TypeInternal, TypeOf(fmt.Errorf("plain")))
}

func TestWithContext(t *testing.T) {
	err := InvalidRange("purity out of range").WithContext("purity", 120.0)
	assert.Equal(t, 120.0, err.Context["purity"])
	assert.True(t, err.Is(TypeInvalidRange))
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCookingRelated(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"recipe request", "I want a chicken biryani recipe", true},
		{"uppercase", "WHAT IS THE BEST PASTA SAUCE", true},
		{"how to make", "how to make sourdough at home", true},
		{"ingredient question", "can I substitute butter with oil", true},
		{"nutrition question", "how much protein is in this nutrition plan for meals", true},
		{"weather", "what's the weather today", false},
		{"politics", "who won the election", false},
		{"empty", "", false},
		{"math", "what is 2 + 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCookingRelated(tt.input))
		})
	}
}

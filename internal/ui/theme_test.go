package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[-----]", ProgressBar(0, 100, 5))
	assert.Equal(t, "[##---]", ProgressBar(50, 100, 5))
	assert.Equal(t, "[#####]", ProgressBar(500, 100, 5))
	assert.Equal(t, "[---]", ProgressBar(-3, 0, 1))
}

func TestTaskStateAndDelta(t *testing.T) {
	assert.Contains(t, TaskState(true, true), "done")
	assert.Contains(t, TaskState(false, false), "lapsed")
	assert.Contains(t, TaskState(true, false), "due")
	assert.Contains(t, Delta(10), "+10")
	assert.Contains(t, Delta(-1), "-1")
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdRequiresExactlyOneArg(t *testing.T) {
	cmd := newRootCmd()

	assert.Error(t, cmd.Args(cmd, nil))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
	assert.NoError(t, cmd.Args(cmd, []string{"image.ijvm"}))
}

func TestRunImageReturnsErrorOnMissingFile(t *testing.T) {
	err := runImage("/nonexistent/path/to/image.ijvm", false)
	assert.Error(t, err)
}

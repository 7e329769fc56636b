package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartReturnsExitCodeOnBadConfig(t *testing.T) {
	t.Setenv("CITYWEATHER_SERVER_PORT", "0")

	assert.Equal(t, 1, start())
}

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(New(NewJSONHandler(&buf, nil)))

	Info("reservation created", "reservation_id", 7)

	output := buf.String()
	assert.Contains(t, output, "reservation created")
	assert.Contains(t, output, "reservation_id")
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(New(NewJSONHandler(&buf, nil)))

	Errorf("failed to lock court %d", 5)

	output := buf.String()
	assert.Contains(t, output, "failed to lock court 5")
	assert.Contains(t, output, "ERROR")
}

package notificationservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitErr(t *testing.T) {
	assert.Error(t, exitErr(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// consumer stopping during shutdown is not a failure
	assert.NoError(t, exitErr(ctx))
}

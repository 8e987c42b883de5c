package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "manifest-match", Cmd.Use)
	assert.NotEmpty(t, Cmd.Short)
	assert.NotNil(t, Cmd.PersistentPreRun)
}

func TestConfigNilBeforePreRun(t *testing.T) {
	// Config is only populated by the persistent pre-run hook.
	assert.Nil(t, Config())
}

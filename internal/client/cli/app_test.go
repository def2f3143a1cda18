package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dogshelter/internal/client/config"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	assert.False(t, app.isLoggedIn())

	app.userName = "alice"
	assert.True(t, app.isLoggedIn())
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(&config.Config{ServerURL: "http://127.0.0.1:8000", RequestTimeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, app.api)

	_, err = NewApp(&config.Config{ServerURL: "not a url"})
	assert.Error(t, err)
}

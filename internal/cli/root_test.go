package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/config"
	"github.com/sangkips/fishledger/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "token"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestTokenCommand_RequiresValidOwner(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"token"})
	assert.Error(t, cmd.Execute())

	cmd.SetArgs([]string{"token", "--owner", "nope"})
	assert.Error(t, cmd.Execute())
}

func TestMintToken(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "s3cret", ExpiryHours: time.Hour}}
	owner := uuid.New()

	token, err := mintToken(cfg, owner, "a@b.c")
	require.NoError(t, err)

	claims, err := utils.NewJWTManager("s3cret", time.Hour).ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner, claims.UserID)

	_, err = mintToken(&config.Config{}, owner, "")
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorque/skillmatch/internal/server"
)

func TestTokenCommandIssuesValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	tokenSecret = "cli-secret"
	tokenSubject = "ops"
	t.Cleanup(func() {
		tokenSecret = ""
		tokenSubject = "api-client"
	})

	var out bytes.Buffer
	tokenCmd.SetOut(&out)

	require.NoError(t, runToken(tokenCmd, nil))

	token := strings.TrimSpace(out.String())
	require.NotEmpty(t, token)

	claims, err := server.NewJWTService("cli-secret").ValidateToken(token)
	require.NoError(t, err)
	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	tokenSecret = ""

	err := runToken(tokenCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing secret")
}

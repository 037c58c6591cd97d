package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhanceCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := enhanceCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"Write", "a", "blog", "post"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "Create a comprehensive and detailed response for the following:"))
	assert.Contains(t, out.String(), "Topic: Write a blog post\n")
}

func TestEnhanceCommandCategoryOnly(t *testing.T) {
	var out bytes.Buffer
	cmd := enhanceCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--category", "marketing app"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "marketing\n", out.String())
}

func TestEnhanceCommandRejectsBlank(t *testing.T) {
	cmd := enhanceCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"   "})

	assert.Error(t, cmd.Execute())
}

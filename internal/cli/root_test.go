package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrizia2/blogfocus/internal/blog"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd("1.2.3")
	assert.Equal(t, "blogfocus", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "browse")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "cache")
}

func TestRootCmd_Help(t *testing.T) {
	root := NewRootCmd("dev")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "search, filter, sort")
}

func TestListCmd_RejectsBadSortKey(t *testing.T) {
	root := NewRootCmd("dev")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list", "--sort", "popularity"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort key")
}

func TestPrintSlice(t *testing.T) {
	var out bytes.Buffer
	printSlice(&out, nil)
	assert.Equal(t, "No posts found.\n", out.String())

	out.Reset()
	printSlice(&out, []blog.Record{{Title: "AI in 2024", Content: "Year ahead."}})
	got := out.String()
	assert.Contains(t, got, "1. AI in 2024")
	assert.Contains(t, got, "Unknown · General · 5 min read")
	assert.Contains(t, got, "Year ahead.")
}

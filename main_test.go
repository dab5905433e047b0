package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a fresh flag state and captures
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	opts.url = ""
	opts.user = ""
	opts.token = ""
	opts.format = formatText
	opts.releaseID = ""
	opts.listIssues = false
	opts.xlsxPath = ""
	opts.mailTo = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCLIListsVersions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/project/DEMO/versions", r.URL.Path)
		fmt.Fprint(w, `[{"id": "1", "name": "1.0", "released": true, "releaseDate": "2024-01-15"}]`)
	}))
	defer srv.Close()

	out, err := execute(t, "DEMO", "--url", srv.URL, "--user", "u", "--token", "t")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 releases:")
	assert.Contains(t, out, "1.0")
}

func TestCLIListsIssuesForRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/search", r.URL.Path)
		require.Contains(t, r.URL.Query().Get("jql"), "fixVersion = V1")
		fmt.Fprint(w, `{"issues": []}`)
	}))
	defer srv.Close()

	out, err := execute(t, "DEMO",
		"--url", srv.URL, "--user", "u", "--token", "t",
		"--release-id", "V1", "--list-issues")
	require.NoError(t, err)
	assert.Equal(t, "No issues found for this release.\n", out)
}

// --release-id alone falls back to listing versions, matching the
// long-standing behavior.
func TestCLIReleaseIDWithoutListIssuesListsVersions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/2/project/DEMO/versions", r.URL.Path)
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	out, err := execute(t, "DEMO",
		"--url", srv.URL, "--user", "u", "--token", "t", "--release-id", "V1")
	require.NoError(t, err)
	assert.Equal(t, "No releases found for this project.\n", out)
}

func TestCLIProjectNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no project", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := execute(t, "GHOST", "--url", srv.URL, "--user", "u", "--token", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GHOST")
}

func TestCLIJSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": "1", "name": "1.0"}]`)
	}))
	defer srv.Close()

	out, err := execute(t, "DEMO",
		"--url", srv.URL, "--user", "u", "--token", "t", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "1"`)
	assert.Contains(t, out, `"name": "1.0"`)
}

func TestCLIRejectsBadFormat(t *testing.T) {
	_, err := execute(t, "DEMO", "--url", "http://localhost", "--user", "u", "--token", "t", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestCLIMissingURL(t *testing.T) {
	t.Setenv("JIRA_URL", "")
	_, err := execute(t, "DEMO", "--user", "u", "--token", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JIRA_URL")
}

func TestCLIMailToNeedsXlsx(t *testing.T) {
	_, err := execute(t, "DEMO",
		"--url", "http://localhost", "--user", "u", "--token", "t",
		"--mail-to", "team@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--xlsx")
}

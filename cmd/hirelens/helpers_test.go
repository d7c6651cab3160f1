package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mutlukurt/hirelens/internal/config"
)

// getBinaryPath returns the path to the hirelens binary for testing
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", app)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// useConfig installs cfg as the loaded configuration for the duration of the test
func useConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	prevConfig, prevErr := appConfig, configErr
	appConfig, configErr = &cfg, nil
	t.Cleanup(func() { appConfig, configErr = prevConfig, prevErr })
}

// testCommand returns a command whose output is captured in the returned buffer
func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const backendJob = `{
  "title": "Backend Engineer",
  "description": "Build Go services on Kubernetes",
  "mustHaveSkills": ["Go", "Kubernetes"],
  "niceToHaveSkills": ["PostgreSQL"],
  "minYears": 3
}`

const gopherCandidate = `{
  "name": "Grace Hopper",
  "email": "grace@example.com",
  "skills": ["golang", "k8s", "Postgres"],
  "yearsExperience": 5,
  "rawText": "Go engineer running Kubernetes clusters and PostgreSQL databases"
}`

const frontendCandidate = `{
  "name": "Alan Turing",
  "skills": ["React"],
  "yearsExperience": 1,
  "rawText": "Frontend developer building React applications"
}`

const textResume = `Ada Lovelace
ada@example.com
Remote

Skills: Go, Docker, Kubernetes
Software engineer with 6 years of experience building Go services.
`

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

func TestWriteScore_CorrectJobTitle(t *testing.T) {
	report := model.NewScoreReport(70, nil, "Duties describe support work.").
		WithStrategy(valueobject.StrategyRemote).
		WithCorrectJobTitle("Support Specialist")

	var text bytes.Buffer
	require.NoError(t, writeScore(&text, formatText, report))
	assert.Contains(t, text.String(), "Likely title: Support Specialist")

	var raw bytes.Buffer
	require.NoError(t, writeScore(&raw, formatJSON, report))
	var out scoreOutput
	require.NoError(t, json.Unmarshal(raw.Bytes(), &out))
	assert.Equal(t, "Support Specialist", out.CorrectJobTitle)

	var plain bytes.Buffer
	require.NoError(t, writeScore(&plain, formatText, model.NewScoreReport(90, nil, "")))
	assert.NotContains(t, plain.String(), "Likely title")
}

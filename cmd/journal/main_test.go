package main

import (
	"strings"
	"testing"

	"rokufun-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTranscript(t *testing.T) {
	messages, err := readTranscript(strings.NewReader(`[
		{"role": "model", "text": "今日はどうだった？"},
		{"role": "user", "text": "散歩してきた"}
	]`))
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "散歩してきた", messages[1].Text)
}

func TestReadTranscript_RejectsBadInput(t *testing.T) {
	_, err := readTranscript(strings.NewReader("not json"))
	assert.Error(t, err)

	_, err = readTranscript(strings.NewReader("[]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestApplyExtraction_CreatesEveningRecord(t *testing.T) {
	day := entity.DailyLog{Date: "2026-09-01"}
	entry := &entity.EveningEntry{
		GoodThings: []string{"散歩", "夕焼け"},
		Insights:   "歩くと頭が整理される",
	}

	got := applyExtraction(day, entry)
	require.NotNil(t, got.Evening)
	assert.Equal(t, entry.GoodThings, got.Evening.GoodThings)
	assert.Equal(t, "歩くと頭が整理される", got.Evening.Insights)
}

func TestApplyExtraction_KeepsHandwrittenFields(t *testing.T) {
	day := entity.DailyLog{
		Date: "2026-09-01",
		Evening: &entity.EveningEntry{
			GoodThings: []string{"手で書いたこと"},
			Kindness:   "席を譲った",
		},
	}
	entry := &entity.EveningEntry{
		GoodThings:       []string{"散歩"},
		FollowUpQuestion: "明日はどの道を歩く？",
	}

	got := applyExtraction(day, entry)
	assert.Equal(t, []string{"散歩"}, got.Evening.GoodThings)
	assert.Equal(t, "席を譲った", got.Evening.Kindness)
	assert.Equal(t, "明日はどの道を歩く？", got.Evening.FollowUpQuestion)
}

package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/profile"
)

func loadProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p, err := profile.LoadBuiltin(profile.DefaultName)
	require.NoError(t, err)
	return p
}

func demoScores() diagnosis.ScoreSet {
	return diagnosis.ScoreSet{
		{Key: "lgpd", Score: 2},
		{Key: "digitalizacao", Score: 4},
		{Key: "arrecadacao", Score: 3},
		{Key: "transparencia", Score: 4},
		{Key: "participacao", Score: 2},
	}
}

func TestBuild(t *testing.T) {
	fixed := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	r, err := Build(Options{
		Scores:  demoScores(),
		Profile: loadProfile(t),
		Version: "test",
		Now:     func() time.Time { return fixed },
		NewID:   func() string { return "report-1" },
	})
	require.NoError(t, err)

	assert.Equal(t, Tool, r.Tool)
	assert.Equal(t, "report-1", r.ID)
	assert.Equal(t, fixed, r.GeneratedAt)
	assert.Equal(t, "municipal", r.Input.Profile)

	assert.Equal(t, 60, r.Summary.OverallPercentage)
	assert.Equal(t, "Nível Intermediário", r.Summary.Level)
	assert.Equal(t, "Boa base com oportunidades de crescimento", r.Summary.LevelDescription)

	require.Len(t, r.Positive, 2)
	assert.Equal(t, "Digitalização de Processos", r.Positive[0].FullName)
	assert.Contains(t, r.Positive[0].Highlight, "forte desempenho em Digitalização de Processos")
	assert.Empty(t, r.Positive[0].ScheduleURL)

	require.Len(t, r.Improvement, 3)
	keys := []string{r.Improvement[0].Key, r.Improvement[1].Key, r.Improvement[2].Key}
	assert.Equal(t, []string{"lgpd", "arrecadacao", "participacao"}, keys)
	assert.Equal(t, "Consultoria LGPD + capacitação dos servidores", r.Improvement[0].Solution)
	assert.Contains(t, r.Improvement[1].ScheduleURL, "https://calendly.com/inovally/diagnostico?prefill_message=")
	assert.Contains(t, r.Improvement[1].ScheduleURL, "Gest%C3%A3o%20de%20Arrecada%C3%A7%C3%A3o")

	require.Len(t, r.Radar, 5)
	assert.Equal(t, RadarAxis{Key: "lgpd", Label: "LGPD", Score: 2}, r.Radar[0])

	require.Len(t, r.Actions, 2)
	assert.Equal(t, "solutions", r.Actions[0].ID)
	assert.Len(t, r.Legend, 3)
}

func TestBuildDefaultsIDAndUnknownKeys(t *testing.T) {
	r, err := Build(Options{
		Scores:  diagnosis.ScoreSet{{Key: "saude", Score: 5}},
		Profile: loadProfile(t),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.False(t, r.GeneratedAt.IsZero())

	require.Len(t, r.Positive, 1)
	assert.Equal(t, "saude", r.Positive[0].FullName)
	assert.False(t, r.Positive[0].Known)
	assert.Empty(t, r.Improvement)
}

func TestBuildEmptyScores(t *testing.T) {
	_, err := Build(Options{Profile: loadProfile(t)})
	assert.ErrorIs(t, err, diagnosis.ErrInvalidInput)
}

func TestBuildRequiresProfile(t *testing.T) {
	_, err := Build(Options{Scores: demoScores()})
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "09/03/2026", FormatDate(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
}

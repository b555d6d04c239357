package lib

import (
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDailyJob(t *testing.T) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	require.NoError(t, err)
	NewScheduler(s)
	defer StopScheduler()

	id, err := CreateDailyJob("agenda-digest", 8, 0, func() {})
	require.NoError(t, err)
	assert.NotEmpty(t, *id)

	id2, err := CreateCronJob("heartbeat", func(n int) {}, time.Hour, 1)
	require.NoError(t, err)
	assert.NotEqual(t, *id, *id2)

	names := make([]string, 0)
	for _, j := range s.Jobs() {
		names = append(names, j.Name())
	}
	assert.ElementsMatch(t, []string{"agenda-digest", "heartbeat"}, names)

	_, err = CreateDailyJob("bad", 25, 0, func() {})
	assert.Error(t, err)
}

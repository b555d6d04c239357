package boot

import (
	"acelera/src/controllers"
	"acelera/src/db"
	"acelera/src/lib"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStoreMemory(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SEED_FILE", "")
	store := InitStore(time.Now())
	_, ok := store.(*db.MemoryStore)
	require.True(t, ok)
	services, err := store.ListServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 4)
}

func TestInitStoreSeedFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(f, []byte("services:\n  - id: s1\n    name: Blackwork\n    duration: 120\n    price: 600\n"), 0o600))
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SEED_FILE", f)

	store := InitStore(time.Now())
	services, err := store.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Blackwork", services[0].Name)
	clients, _ := store.ListClients(context.Background())
	assert.Len(t, clients, 4)
}

func TestRegisterJobs(t *testing.T) {
	sched, err := gocron.NewScheduler()
	require.NoError(t, err)
	lib.NewScheduler(sched)
	defer lib.StopScheduler()

	studio := controllers.NewStudio(db.NewMemoryStore(nil))
	require.NoError(t, RegisterJobs(studio))
	names := make([]string, 0)
	for _, j := range sched.Jobs() {
		names = append(names, j.Name())
	}
	assert.ElementsMatch(t, []string{"agenda-digest", "ledger-archive"}, names)
}

func TestInitStudioDefaults(t *testing.T) {
	for _, k := range []string{"REDIS_HOST", "EVENTS_QUEUE_URL", "GOOGLE_CALENDAR_ID", "S3_EXPORTS_BUCKET", "EMAIL_QUEUE", "SMTP_HOST"} {
		t.Setenv(k, "")
	}
	studio := InitStudio(context.Background(), db.NewMemoryStore(nil))
	require.NotNil(t, studio)
	uri, err := studio.ArchiveLedger(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, uri)
}

package boot

import (
	"acelera/src/config"
	"acelera/src/controllers"
	"acelera/src/db"
	"acelera/src/lib"
	awslib "acelera/src/lib/aws"
	"acelera/src/lib/mailer"
	"acelera/src/models"
	"context"
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Booking{},
		&models.TattooRequest{},
		&models.Transaction{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitStore opens the store named by STORE_DRIVER. The memory store starts
// from the demo seed, with the catalog of SEED_FILE when one is given.
func InitStore(now time.Time) db.Store {
	if config.StoreDriver() == config.STORE_POSTGRES {
		return db.NewGormStore(InitDb())
	}
	seed := db.DefaultSeed(now)
	if f := os.Getenv("SEED_FILE"); f != "" {
		custom, err := db.LoadSeedFile(f)
		if err != nil {
			log.Printf("Could not load seed file %s: %s\n", f, err.Error())
		} else {
			seed.Merge(custom)
		}
	}
	return db.NewMemoryStore(seed)
}

// InitStudio wires the optional integrations configured in the environment.
func InitStudio(ctx context.Context, store db.Store) *controllers.Studio {
	loc := config.StudioLocation()
	opts := []controllers.Option{
		controllers.WithLocation(loc),
		controllers.WithGuard(lib.NewGuard()),
		controllers.WithMailer(mailer.New(ctx)),
	}
	if pub := awslib.NewSQSPublisherFromEnv(ctx); pub != nil {
		opts = append(opts, controllers.WithEvents(pub))
	}
	if cal := lib.NewCalendarSyncFromEnv(ctx, loc); cal != nil {
		opts = append(opts, controllers.WithCalendar(cal))
	}
	if archive := awslib.NewS3ArchiveFromEnv(ctx); archive != nil {
		opts = append(opts, controllers.WithArchive(archive))
	}
	return controllers.NewStudio(store, opts...)
}

// InitScheduler registers the daily jobs. It is a no-op unless
// SCHEDULER_ENABLED is set.
func InitScheduler(studio *controllers.Studio) {
	if os.Getenv("SCHEDULER_ENABLED") != "true" {
		return
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(studio.Location()))
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return
	}
	lib.NewScheduler(sched)
	if err := RegisterJobs(studio); err != nil {
		log.Printf("Error registering jobs: %s\n", err.Error())
		return
	}
	sched.Start()
	log.Println("Jobs in queue:", len(sched.Jobs()))
}

func RegisterJobs(studio *controllers.Studio) error {
	if _, err := lib.CreateDailyJob("agenda-digest", 8, 0, func() {
		if err := studio.SendAgendaDigest(context.Background()); err != nil {
			log.Printf("Error running agenda-digest: %s\n", err.Error())
		}
	}); err != nil {
		return err
	}
	_, err := lib.CreateDailyJob("ledger-archive", 23, 30, func() {
		uri, err := studio.ArchiveLedger(context.Background())
		if err != nil {
			log.Printf("Error running ledger-archive: %s\n", err.Error())
			return
		}
		if uri != "" {
			log.Printf("Ledger archived at %s\n", uri)
		}
	})
	return err
}

// InitEmailWorker consumes EMAIL_QUEUE and delivers each message over SMTP.
func InitEmailWorker(ctx context.Context) {
	qurl := os.Getenv("EMAIL_QUEUE")
	if qurl == "" || os.Getenv("SMTP_HOST") == "" {
		return
	}
	client, err := awslib.GetSQSClient(ctx)
	if err != nil {
		return
	}
	awslib.NewSQSConsumer(client, qurl, mailer.DeliverQueued).Listen(ctx)
}

func StopScheduler() {
	lib.StopScheduler()
}

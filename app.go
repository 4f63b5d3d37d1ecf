package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"checkin-guide/auth"
	"checkin-guide/cache"
	"checkin-guide/config"
	"checkin-guide/controllers"
	"checkin-guide/logger"
	"checkin-guide/mapper"
	"checkin-guide/media"
	"checkin-guide/routes"
	"checkin-guide/services"
	"checkin-guide/store"
)

// application holds every long-lived dependency of the server.
type application struct {
	cfg  *config.Config
	log  *logger.Logger
	gate auth.Options

	uploadDir string

	apartments *services.ApartmentService
	bookings   *services.BookingService
	guests     *services.GuestService
	media      *services.MediaService
	links      *services.LinkService
	bulk       *services.BulkService
}

func openStore(cfg *config.Config, lg *logger.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case "rest":
		return store.NewRESTStore(cfg.Store.BaseURL, cfg.Store.Token, cfg.Store.PerPage, cfg.Store.Timeout), nil
	case "memory":
		return store.NewMemoryStore(), nil
	case "sql":
		db, err := config.ConnectDatabase(cfg.Database, lg.Logger)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		return store.NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func openMedia(ctx context.Context, cfg config.MediaConfig) (media.Storage, string, error) {
	if cfg.Driver == "s3" {
		s3, err := media.NewS3Storage(ctx, media.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
			PathStyle: cfg.S3.PathStyle,
		})
		return s3, "", err
	}
	local, err := media.NewLocalStorage(cfg.UploadDir, cfg.PublicPath)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}

func newApplication(ctx context.Context, cfg *config.Config, lg *logger.Logger) (*application, error) {
	st, err := openStore(cfg, lg)
	if err != nil {
		return nil, err
	}
	files, uploadDir, err := openMedia(ctx, cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("media storage: %w", err)
	}

	c := cache.New(cache.Options{
		StaleTime:          cfg.Cache.StaleTime,
		QueryRetries:       cfg.Cache.QueryRetries,
		QueryRetryBase:     cfg.Cache.QueryRetryBase,
		QueryRetryMax:      cfg.Cache.QueryRetryMax,
		MutationRetries:    cfg.Cache.MutationRetries,
		MutationRetryDelay: cfg.Cache.MutationRetryDelay,
		GCTime:             cfg.Cache.GCTime,
	}, lg.Logger)

	d := services.Deps{
		Store:  st,
		Schema: mapper.SchemaFor(cfg.Store.Driver),
		Cache:  c,
		Files:  files,
		Log:    lg,
	}
	app := &application{
		cfg: cfg,
		log: lg,
		gate: auth.Options{
			Secret:     cfg.Auth.ManagerPassword,
			SigningKey: []byte(cfg.Auth.SessionSecret),
			TTL:        cfg.Auth.SessionTTL,
		},
		uploadDir: uploadDir,
	}
	app.apartments = services.NewApartmentService(d)
	app.bookings = services.NewBookingService(d, app.apartments)
	app.guests = services.NewGuestService(d, app.apartments)
	app.media = services.NewMediaService(d, app.apartments, cfg.Media.MaxFileSize)
	app.links = services.NewLinkService(app.apartments, app.bookings, app.media, cfg.Links.PublicBaseURL)
	app.bulk = services.NewBulkService(d, app.apartments)

	lg.LogSystem("bootstrap", "ready", true, map[string]interface{}{
		"store":  cfg.Store.Driver,
		"schema": d.Schema.Name,
		"media":  cfg.Media.Driver,
	})
	return app, nil
}

func (a *application) router() *gin.Engine {
	h := routes.Handlers{
		Apartments: controllers.NewApartmentController(a.apartments, a.bulk, a.log),
		Bookings:   controllers.NewBookingController(a.bookings, a.log),
		Guests:     controllers.NewGuestController(a.guests, a.log),
		Media:      controllers.NewMediaController(a.media, a.log),
		Links:      controllers.NewLinkController(a.links, a.log),
		Bulk:       controllers.NewBulkController(a.bulk, a.log),
		Auth:       controllers.NewAuthController(a.gate, a.log),
		Validation: controllers.NewValidationController(),
	}
	return routes.SetupRouter(h, routes.Options{
		Security:   a.cfg.Security,
		Auth:       a.cfg.Auth,
		Gate:       a.gate,
		UploadDir:  a.uploadDir,
		PublicPath: a.cfg.Media.PublicPath,
	}, a.log)
}

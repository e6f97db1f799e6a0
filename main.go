// Package main vinyl rental API.
//
// @title           Viniloteca API
// @version         1.0
// @description     Vinyl record rental service with Discogs catalog enrichment.
// @contact.name    David Oviedo
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/DavidOvMu23/Viniloteca/app/echoServer"
	authctrl "github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/auth"
	catalogctrl "github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/catalog"
	clientctrl "github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/client"
	rentalctrl "github.com/DavidOvMu23/Viniloteca/app/echoServer/controller/rental"
	"github.com/DavidOvMu23/Viniloteca/app/echoServer/validation"
	"github.com/DavidOvMu23/Viniloteca/config"
	authrepo "github.com/DavidOvMu23/Viniloteca/repository/auth"
	clientrepo "github.com/DavidOvMu23/Viniloteca/repository/client"
	discogsrepo "github.com/DavidOvMu23/Viniloteca/repository/discogs"
	rentalrepo "github.com/DavidOvMu23/Viniloteca/repository/rental"
	authsvc "github.com/DavidOvMu23/Viniloteca/service/auth"
	catalogsvc "github.com/DavidOvMu23/Viniloteca/service/catalog"
	clientsvc "github.com/DavidOvMu23/Viniloteca/service/client"
	rentalsvc "github.com/DavidOvMu23/Viniloteca/service/rental"
	"github.com/DavidOvMu23/Viniloteca/util/database"
)

// enrichConcurrency bounds in-flight Discogs fetches per history listing.
const enrichConcurrency = 4

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if cfg.DiscogsToken == "" {
		log.Warn("DISCOGS_TOKEN not set, catalog requests will be unauthenticated and heavily rate limited")
	}

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authrepo.New(db)
	cr := clientrepo.New(db)
	rr := rentalrepo.New(db)
	dr := discogsrepo.NewHTTP(cfg.DiscogsToken)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	cats := catalogsvc.New(dr, log)
	cs := clientsvc.New(cr)
	rs := rentalsvc.New(db, rr, cats, enrichConcurrency)

	// cache janitor
	go func() {
		t := time.NewTicker(10 * time.Minute)
		defer t.Stop()
		for range t.C {
			if n := cats.PurgeExpired(); n > 0 {
				log.Debug("catalog cache purge", "removed", n)
			}
		}
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	catalogC := &catalogctrl.Controller{Svc: cats, Log: log}
	clientC := &clientctrl.Controller{Svc: cs, RentalSvc: rs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.NewWith(v)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Catalog: catalogC,
		Client:  clientC,
		Rental:  rentalC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}

package app

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/raffleworks/guestlist/internal/auth"
	"github.com/raffleworks/guestlist/internal/config"
	"github.com/raffleworks/guestlist/internal/db"
	"github.com/raffleworks/guestlist/internal/logger"
	"github.com/raffleworks/guestlist/internal/raffle"
	"github.com/raffleworks/guestlist/internal/repository"
	"github.com/raffleworks/guestlist/internal/repository/dao"
	"github.com/raffleworks/guestlist/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.App.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	raffleSvc, guestlistSvc, err := initServices(conf, postgresDB)
	if err != nil {
		return fmt.Errorf("failed to initialize services -> %w", err)
	}

	zap.L().Info("starting guestlist raffle",
		zap.String("group", conf.Meetup.GroupID),
		zap.String("event", conf.Meetup.EventID),
	)

	ctx := context.Background()

	result, err := raffleSvc.Run(ctx)
	if err != nil {
		return fmt.Errorf("raffle run failed -> %w", err)
	}

	if err = guestlistSvc.PromoteWinners(ctx, result.Winners); err != nil {
		return fmt.Errorf("guestlist promotion failed -> %w", err)
	}

	return nil
}

func initServices(conf *config.AppConfig, postgresDB *gorm.DB) (*service.RaffleService, *service.GuestlistService, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	tokenRepo := repository.NewTokenRepository(dao.NewTokenDAO(postgresDB), conf.Meetup.TokenKey)
	tokens := auth.NewTokenManager(&oauth2.Config{
		ClientID:     conf.Meetup.ClientID,
		ClientSecret: conf.Meetup.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: conf.Meetup.TokenURL},
	}, tokenRepo)

	meetupDAO := dao.NewMeetupDAO(conf.Meetup.BaseURL, tokens, httpClient)
	rsvpRepo := repository.NewRsvpRepository(meetupDAO, conf.Meetup.GroupID, conf.Meetup.EventID)
	attendanceRepo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(postgresDB, conf.Warehouse.Schema))
	guestlistRepo := repository.NewGuestlistRepository(meetupDAO, conf.Meetup.EventID)

	seed := conf.Raffle.Seed
	if seed == 0 {
		var err error
		seed, err = raffle.NewSeed()
		if err != nil {
			return nil, nil, fmt.Errorf("raffle.NewSeed -> %w", err)
		}
	}
	rng := rand.New(rand.NewSource(seed))

	raffleSvc := service.NewRaffleService(rsvpRepo, attendanceRepo, raffle.WeightedSampler{}, rng, conf.Meetup.TicketsMax)
	guestlistSvc := service.NewGuestlistService(guestlistRepo, conf.Meetup.AddToGuestlist, conf.Meetup.PromotionDelay)

	return raffleSvc, guestlistSvc, nil
}

package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Girish14j/Iskcon-bhakti-booking/internal/assistant"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/availability"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/config"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/database"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/handler"
	appmw "github.com/Girish14j/Iskcon-bhakti-booking/internal/middleware"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/model"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/queue"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/repository"
	"github.com/Girish14j/Iskcon-bhakti-booking/internal/router"
	queue_publisher "github.com/Girish14j/Iskcon-bhakti-booking/internal/service"
)

func main() {
	// .env is optional; a real environment takes precedence.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: cache and rate limiting quietly disable when the
	// client is nil.
	rdb := config.NewRedisClient()

	window := operatingWindow(cfg)

	hallRepo := repository.NewHallRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// The interactive booking page accepts any time of day (only the
	// duration cap applies); the daily window scopes its free-slot
	// suggestions. The assistant builds its own validator with the
	// window enforced.
	validator := &availability.Validator{
		Halls:      hallRepo,
		Bookings:   bookingRepo,
		SlotWindow: window,
	}

	extractor := assistant.NewOpenAIExtractor(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.AssistantModel)
	responder := &assistant.Responder{
		Extractor: extractor,
		Halls:     hallRepo,
		Bookings:  bookingRepo,
		Window:    window,
		Horizon:   cfg.SearchHorizonDays,
		Created: func(ctx context.Context, b model.Booking, hall model.Hall) {
			publishRequested(bookingRepo, b.ID)
		},
	}

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := &handler.PublicHandler{HallRepo: hallRepo, BookingRepo: bookingRepo, Window: window}
	bookingHandler := handler.NewBookingHandler(validator, bookingRepo, hallRepo, window, int(cfg.MaxBookingHours))
	adminHandler := handler.NewAdminBookingHandler(bookingRepo)
	assistantHandler := handler.NewAssistantHandler(responder)

	e := echo.New()
	e.Use(appmw.RequestID())
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, cache)
	router.RegisterBookings(e, bookingHandler, assistantHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Notification consumer runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notify-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// operatingWindow parses the configured daily window, falling back to
// 08:00-22:00 when the values are malformed.
func operatingWindow(cfg config.Config) availability.Interval {
	iv, err := availability.ParseInterval(cfg.DayStart, cfg.DayEnd)
	if err != nil {
		log.Printf("config: invalid operating window %q-%q, using 08:00-22:00", cfg.DayStart, cfg.DayEnd)
		return availability.Interval{Start: 8 * 60, End: 22 * 60}
	}
	return iv
}

// publishRequested mirrors the booking handler's notification path for
// bookings created through the assistant.
func publishRequested(repo *repository.BookingRepo, bookingID uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		d, err := repo.GetDetail(ctx, bookingID)
		if err != nil {
			log.Printf("assistant: load detail for event failed: %v", err)
			return
		}
		_ = queue_publisher.PublishBookingRequested(ctx, queue.BookingRequestedEvent{
			BookingID:   d.ID,
			UserID:      d.UserID,
			UserEmail:   d.UserEmail,
			UserName:    d.UserName,
			HallID:      d.HallID,
			HallName:    d.HallName,
			Date:        d.Date,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			Attendees:   d.Attendees,
			Purpose:     d.Purpose,
			RequestedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

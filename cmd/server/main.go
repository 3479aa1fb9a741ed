package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/arayajs/cinema-booking/internal/config"
	"github.com/arayajs/cinema-booking/internal/database"
	"github.com/arayajs/cinema-booking/internal/handler"
	"github.com/arayajs/cinema-booking/internal/payment"
	"github.com/arayajs/cinema-booking/internal/queue"
	"github.com/arayajs/cinema-booking/internal/repository"
	"github.com/arayajs/cinema-booking/internal/router"
	"github.com/arayajs/cinema-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	screeningRepo := repository.NewScreeningRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	hallRepo := repository.NewHallRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	orderRepo := repository.NewOrderRepository(db, reservationRepo)
	ticketRepo := repository.NewTicketRepository(db)

	publisher := queue.NewPublisher("")

	calendar := service.NewCalendar(screeningRepo, movieRepo, hallRepo, nil)
	inventory := service.NewInventory(screeningRepo, seatRepo, reservationRepo)
	ledger := service.NewLedger(ticketRepo, nil)
	orchestrator := service.NewOrchestrator(orderRepo, screeningRepo, seatRepo, ledger, nil)
	settlement := service.NewSettlement(orderRepo, screeningRepo, publisher, nil)

	handlers := router.Handlers{
		Screenings: handler.NewScreeningHandler(calendar, inventory),
		Orders:     handler.NewOrderHandler(orchestrator, settlement, payment.NewSandbox()),
		Tickets:    handler.NewTicketHandler(ledger),
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, handlers, cfg.JWTSecret, rdb)

	// Background consumer mirrors settled orders into logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/config"
	appHTTP "github.com/PBJT-Finger/Backend-Finger-sub000/internal/handler/http"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/cron"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/database"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/jwt"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/terminal"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/repository/postgresql"
	calendarService "github.com/PBJT-Finger/Backend-Finger-sub000/internal/service/calendar"
	ingestService "github.com/PBJT-Finger/Backend-Finger-sub000/internal/service/ingest"
	reportService "github.com/PBJT-Finger/Backend-Finger-sub000/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	dayRecordRepo := postgresql.NewDayRecordRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRuleRepo := postgresql.NewHolidayRuleRepository(db)
	lunarRepo := postgresql.NewLunarDateRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calendarSvc := calendarService.NewCalendarService(holidayRuleRepo, lunarRepo)
	ingestSvc := ingestService.NewIngestService(db, dayRecordRepo, employeeRepo, shiftRepo, ingestService.Config{
		ChunkSize:           cfg.Ingest.ChunkSize,
		MaxRejectReasons:    cfg.Ingest.MaxRejectReasons,
		DirectionCutoffHour: cfg.Ingest.DirectionCutoffHour,
	})
	reportSvc := reportService.NewReportService(dayRecordRepo, employeeRepo, calendarSvc)

	ingestHandler := appHTTP.NewIngestHandler(ingestSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.Env,
		ingestHandler,
		reportHandler,
		calendarHandler,
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("holiday-cache-warm", 24*time.Hour, cron.HolidayCacheJob(calendarSvc))
	if cfg.Terminal.GatewayURL != "" && cfg.Terminal.DeviceID != "" {
		source := terminal.NewGatewaySource(cfg.Terminal.GatewayURL, cfg.Terminal.DeviceID)
		scheduler.AddJob("terminal-poll", cfg.Terminal.PollInterval, cron.TerminalPollJob(source, ingestSvc))
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}

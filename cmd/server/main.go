package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	envauth "github.com/eballot/api/internal/adapters/auth/env"
	"github.com/eballot/api/internal/adapters/handler/http"
	repo "github.com/eballot/api/internal/adapters/repository/postgres"
	"github.com/eballot/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	candidateRepo := repo.NewCandidateRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	resultRepo := repo.NewResultRepository(db)
	settingsRepo := repo.NewSettingsRepository(db)

	candidateSvc := services.NewCandidateService(candidateRepo)
	voteSvc := services.NewVoteService(candidateRepo, voteRepo)
	resultSvc := services.NewResultService(resultRepo)
	settingsSvc := services.NewSettingsService(settingsRepo)
	authSvc := services.NewAuthService(envauth.NewAuthenticator())

	handler := http.NewHandler(http.RouterConfig{
		CandidateHandler: http.NewCandidateHandler(candidateSvc),
		VoteHandler:      http.NewVoteHandler(voteSvc),
		ResultHandler:    http.NewResultHandler(resultSvc, settingsSvc),
		AuthHandler:      http.NewAuthHandler(authSvc),
		AdminVerifier:    authSvc,
		StaticDir:        staticDir(),
		DB:               db,
	})

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func staticDir() string {
	dir := os.Getenv("STATIC_DIR")
	if dir == "" {
		dir = "./web"
	}
	if _, err := os.Stat(dir); err != nil {
		return ""
	}
	return dir
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/quickqueue/member-auth/auth"
	"github.com/quickqueue/member-auth/internal/config"
	"github.com/quickqueue/member-auth/members"
	memberrepofake "github.com/quickqueue/member-auth/members/repofake"
	"github.com/quickqueue/member-auth/server"
	"github.com/quickqueue/member-auth/session"
	"github.com/quickqueue/member-auth/token"
	"github.com/redis/go-redis/v9"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	authService, err := buildAuthService(c)
	if err != nil {
		return fmt.Errorf("buildAuthService: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, authService)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildAuthService(c config.Config) (*auth.Service, error) {
	issuer := token.NewIssuer(
		token.NewHMACSigner(c.GetSigningSecret()),
		c.GetAccessTokenExpiry(),
		c.GetRefreshTokenExpiry(),
	)

	var sessions session.Store
	if addr := c.GetRedisAddr(); addr != "" {
		sessions = session.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		}))
	} else {
		sessions = session.NewMemoryStore()
	}

	// TODO: replace the in-memory member repo with a durable store
	memberRepo := memberrepofake.NewFakeMemberRepo()

	return auth.NewService(
		memberRepo,
		sessions,
		issuer,
		members.NewBcryptHasher(0),
		auth.WithPasswordPolicy(members.ValidatePasswordStrength),
	)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

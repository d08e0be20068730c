package main

import (
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/modiphy/movie-chain-go/internal/config"
	"github.com/modiphy/movie-chain-go/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) > 1 {
		rootPath := os.Args[1]
		if rootPath == "" {
			log.Fatal("root directory path is empty")
		}

		if err := godotenv.Load(path.Join(rootPath, "config.env")); err != nil {
			log.Fatal(err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	srv, err := server.NewHTTPServer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Start()
	}()

	select {
	case err := <-errs:
		if err != nil {
			log.Fatal(err)
		}
	case <-stop:
		if err := srv.Stop(); err != nil {
			log.Fatal(err)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	exitOK    = 0
	exitError = 1
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(exitOK)
}

package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/robinvdvleuten/sie/cli"
)

func main() {
	// SIE_* settings may come from a .env file next to the books.
	_ = godotenv.Load()

	result := cli.Execute(os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(result.ExitCode)
}

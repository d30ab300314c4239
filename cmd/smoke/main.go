package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	fs := flag.NewFlagSet("smoke", flag.ExitOnError)
	mood := fs.String("mood", "happy", "Mood to select")
	password := fs.String("password", "secret1", "Password for the generated account")
	fs.Usage = printUsage
	fs.Parse(os.Args[1:])

	if err := run(NewAPIClient(apiURL), *mood, *password); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Smoke test - walks the signup, login and mood flow against a running server

USAGE:
  smoke [--mood=happy] [--password=secret1]

ENVIRONMENT:
  API_URL   Backend URL (default: http://localhost:8080)`)
}

func run(client *APIClient, mood, password string) error {
	email := fmt.Sprintf("smoke_%d@example.com", time.Now().UnixNano())

	fmt.Println("=== moodbite smoke test ===")

	fmt.Print("Signing up... ")
	signup, err := client.Signup("Smoke Tester", email, password)
	if err != nil {
		return err
	}
	fmt.Printf("OK (user: %s)\n", signup.User.ID)

	fmt.Print("Logging in... ")
	login, err := client.Login(email, password)
	if err != nil {
		return err
	}
	if login.User.ID != signup.User.ID {
		return fmt.Errorf("login returned user %s, signup returned %s", login.User.ID, signup.User.ID)
	}
	fmt.Println("OK")

	fmt.Print("Logging in with a wrong password... ")
	_, err = client.Login(email, password+"-wrong")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusBadRequest {
		return fmt.Errorf("expected 400 for wrong password, got %v", err)
	}
	fmt.Println("OK (rejected)")

	fmt.Printf("Selecting mood %q... ", mood)
	selected, err := client.SelectMood(login.Token, mood)
	if err != nil {
		return err
	}
	fmt.Printf("OK (%d suggestions)\n", len(selected.Suggestions))
	for _, s := range selected.Suggestions {
		fmt.Printf("  - %s: %s\n", s.Name, s.Description)
	}

	fmt.Print("Fetching history... ")
	history, err := client.History(login.Token)
	if err != nil {
		return err
	}
	if len(history) != 1 || history[0].Mood != mood {
		return fmt.Errorf("expected one %q entry, got %+v", mood, history)
	}
	fmt.Println("OK")

	fmt.Print("Fetching analytics... ")
	analytics, err := client.Analytics(login.Token)
	if err != nil {
		return err
	}
	fmt.Printf("OK (users=%d moods=%d contacts=%d)\n",
		analytics.TotalUsers, analytics.TotalMoodSelections, analytics.TotalContacts)

	fmt.Println()
	fmt.Println("All checks passed")
	return nil
}

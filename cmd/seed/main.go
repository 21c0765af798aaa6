// Package main provides a tool to seed the database with a demo account.
//
// This creates an account with preferences plus a few watchlist and
// read-later entries so the SPA has data to render on first run.
//
// Usage:
//
//	DATA_PATH=~/Cinematic/data go run ./cmd/seed
//	DATA_PATH=~/Cinematic/data go run ./cmd/seed --activate  # Also sign the account in
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cinematicapp/cinematic-server/internal/domain"
	"github.com/cinematicapp/cinematic-server/internal/id"
	"github.com/cinematicapp/cinematic-server/internal/store"
)

var (
	username = flag.String("username", "demo", "Username for the seeded account")
	secret   = flag.String("secret", "demo1234", "Secret for the seeded account")
	activate = flag.Bool("activate", false, "Persist the seeded account as the active session")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dataPath = filepath.Join(home, "Cinematic", "data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	account, err := seedAccount(ctx, s)
	if err != nil {
		log.Fatalf("Failed to seed account: %v", err)
	}

	if err := seedSavedItems(ctx, s, account.ID); err != nil {
		log.Fatalf("Failed to seed saved items: %v", err)
	}

	if *activate {
		if err := s.SaveActiveSession(ctx, account.ID); err != nil {
			log.Fatalf("Failed to activate session: %v", err)
		}
		fmt.Printf("Session activated for %s\n", account.Username)
	}

	fmt.Println("Done.")
}

// seedAccount creates the demo account, or reuses it when it already exists.
func seedAccount(ctx context.Context, s *store.Store) (*domain.Account, error) {
	now := time.Now()
	account := &domain.Account{
		ID:       id.MustGenerate("acct"),
		Username: *username,
		Secret:   *secret,
		Preferences: &domain.Preferences{
			MovieLanguage: "ta",
			MovieGenre:    "878",
			BookLanguage:  "en",
			BookGenre:     "Fiction",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Accounts.Create(ctx, account.ID, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			existing, getErr := s.Accounts.GetByIndex(ctx, "username", *username)
			if getErr != nil {
				return nil, getErr
			}
			fmt.Printf("Account %q already exists (%s), reusing\n", *username, existing.ID)
			return existing, nil
		}
		return nil, err
	}

	fmt.Printf("Created account %q (%s)\n", account.Username, account.ID)
	return account, nil
}

// seedSavedItems fills both collections with a handful of well-known titles.
func seedSavedItems(ctx context.Context, s *store.Store, accountID string) error {
	movies := []domain.SavedItem{
		{ID: "157336", Title: "Interstellar", ReleaseDate: "2014-11-05", VoteAverage: 8.4},
		{ID: "27205", Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4},
		{ID: "603", Title: "The Matrix", ReleaseDate: "1999-03-31", VoteAverage: 8.2},
	}
	books := []domain.SavedItem{
		{ID: "yl4dILkcqm4C", Title: "The Hobbit", Authors: []string{"J.R.R. Tolkien"}},
		{ID: "PGR2AwAAQBAJ", Title: "The Martian", Authors: []string{"Andy Weir"}},
	}

	for _, item := range movies {
		item.AddedAt = time.Now()
		if err := s.AddSaved(ctx, domain.SavedDomainWatchlist, accountID, item); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return err
		}
		fmt.Printf("Watchlist: %s\n", item.Title)
	}

	for _, item := range books {
		item.AddedAt = time.Now()
		if err := s.AddSaved(ctx, domain.SavedDomainReadLater, accountID, item); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return err
		}
		fmt.Printf("Read later: %s\n", item.Title)
	}

	return nil
}

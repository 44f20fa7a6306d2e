// Command main runs the database seeder for Askboard.
package main

import (
	"flag"
	"log"

	"askboard/internal/config"
	"askboard/internal/database"
	"askboard/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numQuestions := flag.Int("questions", 100, "Number of questions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	_ = godotenv.Load()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d questions, clean=%v", *numUsers, *numQuestions, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(*numUsers, *numQuestions, *shouldClean); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Database is populated with test data.")
	log.Printf("All generated users have the password: %s", seed.DefaultPassword)
}

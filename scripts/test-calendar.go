package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/ufc-events/internal/calendar"
	"github.com/pfrederiksen/ufc-events/internal/event"
)

func main() {
	// Create a sample event
	evt := event.NewEvent("UFC 310: Pantoja vs. Asakura", time.Date(2024, time.December, 7, 0, 0, 0, 0, time.UTC))
	evt.Venue = "T-Mobile Arena"
	evt.Location = "Las Vegas, Nevada, U.S."
	evt.DetailURL = "https://en.wikipedia.org/wiki/UFC_310"
	evt.FightCard = event.FightCard{
		{Title: "Main card", Fights: []event.Fight{
			{WeightClass: "Flyweight", FighterOne: "Alexandre Pantoja", FighterTwo: "Kai Asakura"},
		}},
	}

	// Generate .ics file
	icsContent := calendar.GenerateICS([]*event.Event{evt})

	// Write to file (owner read/write only)
	filename := "test-ufc-event.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}

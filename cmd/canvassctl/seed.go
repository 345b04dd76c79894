package main

import (
	"fmt"
	"io"

	"github.com/political-canvas/canvass-api/internal/repository"
	"github.com/political-canvas/canvass-api/internal/services"
	"gorm.io/gorm"
)

type sampleVoter struct {
	name, address, gender, party, leaning string
	age                                   int
	consent                               bool
}

var sampleVoters = []sampleVoter{
	{"Alice Thomas", "123 Main St", "Female", "UDF", "Center", 34, true},
	{"Rajesh Kumar", "456 Lake Rd", "Male", "LDF", "Left", 42, true},
	{"Priya Nair", "789 Hill Ave", "Female", "BJP", "Right", 28, false},
	{"John Mathew", "321 River St", "Male", "UDF", "Center", 51, true},
	{"Anil Menon", "654 Park Lane", "Male", "Others", "None", 37, false},
	{"Meera Varma", "987 Forest Dr", "Female", "LDF", "Left", 45, true},
	{"Suresh Babu", "159 Ocean Blvd", "Male", "BJP", "Right", 60, true},
	{"Lakshmi Pillai", "753 Valley Rd", "Female", "UDF", "Center", 29, false},
	{"Vijay Das", "852 Mountain St", "Male", "Others", "None", 39, true},
	{"Divya Suresh", "951 Garden Ave", "Female", "LDF", "Left", 33, true},
}

func runSeedVoters(db *gorm.DB, out io.Writer) error {
	voters := services.NewVoterService(repository.NewVoterRepository(db))

	for _, s := range sampleVoters {
		voter, err := voters.CreateVoter(services.VoterInput{
			Name:    s.name,
			Address: &s.address,
			Age:     &s.age,
			Gender:  &s.gender,
			Party:   &s.party,
			Leaning: &s.leaning,
			Consent: &s.consent,
		})
		if err != nil {
			return fmt.Errorf("failed to insert %s: %w", s.name, err)
		}
		fmt.Fprintf(out, "Inserted voter: %s (id %d)\n", voter.Name, voter.ID)
	}

	fmt.Fprintln(out, "Sample voters inserted.")
	return nil
}

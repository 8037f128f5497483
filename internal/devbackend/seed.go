package devbackend

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/edureach/internal/app/models"
	"github.com/yigit/edureach/internal/pkg/auth"
)

// Demo accounts created by Seed.
const (
	DemoVolunteerEmail = "relawan@edureach.com"
	DemoMemberEmail    = "anggota@edureach.com"
	DemoPassword       = "edureach123"
)

var seedLocations = []struct{ city, province string }{
	{"Medan", "Sumatera Utara"},
	{"Padang", "Sumatera Barat"},
	{"Bandung", "Jawa Barat"},
	{"Yogyakarta", "DI Yogyakarta"},
	{"Denpasar", "Bali"},
}

// Seed creates demo locations, two accounts, two communities and an upcoming schedule.
// Failures are collected; seeding continues past them.
func Seed(store *Store, lgr zerolog.Logger) error {
	lgr.Info().Msg("Seeding dev backend demo data...")
	var finalErr error

	locations := make([]models.Location, 0, len(seedLocations))
	for _, l := range seedLocations {
		locations = append(locations, store.AddLocation(l.city, l.province))
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	volunteer, err := store.CreateAccount(models.User{
		FirstName:   "Sari",
		LastName:    "Dewi",
		Email:       DemoVolunteerEmail,
		DateOfBirth: "1995-03-12",
		IsVolunteer: true,
	}, hash)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo volunteer")
		finalErr = errors.Join(finalErr, err)
	}

	member, err := store.CreateAccount(models.User{
		FirstName:   "Budi",
		LastName:    "Santoso",
		Email:       DemoMemberEmail,
		DateOfBirth: "2002-08-17",
	}, hash)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo member")
		finalErr = errors.Join(finalErr, err)
	}

	medan, err := store.CreateCommunity(volunteer.ID, "Guru Relawan Medan",
		"Komunitas guru relawan yang mengajar anak-anak di pinggiran kota Medan.", locations[0].ID, "")
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if _, err := store.CreateCommunity(volunteer.ID, "Literasi Bali",
		"Kelas membaca dan menulis dalam bahasa Bali.", locations[4].ID, ""); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if medan.ID != "" {
		if err := store.AddMember(medan.ID, member.ID); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
		next := store.now().AddDate(0, 0, 3)
		at := time.Date(next.Year(), next.Month(), next.Day(), 9, 0, 0, 0, time.UTC)
		if _, err := store.CreateSchedule(volunteer.ID, medan.ID, at); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Str("volunteer", DemoVolunteerEmail).Str("member", DemoMemberEmail).Msg("Demo accounts ready")
	return finalErr
}

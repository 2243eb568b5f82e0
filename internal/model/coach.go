package model

import "time"

// Coach holds the public profile of a coaching provider.  A coach row
// is created at registration time and references the owning user
// account.  Coaches publish availability slots and respond to
// reservation requests from sportifs.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – owning user account.
//  FirstName       – given name shown on public listings.
//  LastName        – family name shown on public listings.
//  Phone           – contact phone number (nullable).
//  Bio             – free-form presentation text (nullable).
//  ProfilePhoto    – path of the uploaded profile photo (nullable).
//  YearsExperience – number of years of coaching experience.
//  City            – city used for discovery filters (nullable).
//  HourlyRate      – default price per one-hour session.
//  IsAvailable     – whether the coach currently accepts bookings.
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type Coach struct {
	ID              uint64    // coaches.id
	UserID          uint64    // coaches.user_id
	FirstName       string    // coaches.first_name
	LastName        string    // coaches.last_name
	Phone           *string   // coaches.phone (nullable)
	Bio             *string   // coaches.bio (nullable)
	ProfilePhoto    *string   // coaches.profile_photo (nullable)
	YearsExperience uint32    // coaches.years_experience
	City            *string   // coaches.city (nullable)
	HourlyRate      float64   // coaches.hourly_rate
	IsAvailable     bool      // coaches.is_available
	CreatedAt       time.Time // coaches.created_at
	UpdatedAt       time.Time // coaches.updated_at
}

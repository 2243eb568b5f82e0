package model

import "time"

// Sportif holds the profile of a client who books coaching sessions.
// Like Coach, a sportif row is created at registration and references
// the owning user account.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owning user account.
//  FirstName    – given name.
//  LastName     – family name.
//  Phone        – contact phone number (nullable).
//  City         – home city (nullable).
//  ProfilePhoto – path of the uploaded profile photo (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Sportif struct {
	ID           uint64    // sportifs.id
	UserID       uint64    // sportifs.user_id
	FirstName    string    // sportifs.first_name
	LastName     string    // sportifs.last_name
	Phone        *string   // sportifs.phone (nullable)
	City         *string   // sportifs.city (nullable)
	ProfilePhoto *string   // sportifs.profile_photo (nullable)
	CreatedAt    time.Time // sportifs.created_at
	UpdatedAt    time.Time // sportifs.updated_at
}

package model

import "time"

// Sport is an entry of the read-only sports catalog.  Coaches attach
// one or more sports to their profile and every reservation references
// the sport being taught.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique sport name.
//  Category  – grouping label (e.g. "collectif", "individuel").
//  Icon      – icon identifier used by clients (nullable).
//  CreatedAt – timestamp of creation.
type Sport struct {
	ID        uint64    // sports.id
	Name      string    // sports.name
	Category  string    // sports.category
	Icon      *string   // sports.icon (nullable)
	CreatedAt time.Time // sports.created_at
}

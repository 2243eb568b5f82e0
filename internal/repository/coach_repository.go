package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

// CoachRepo persists coach profiles and backs the public discovery
// listing with its filter set.
type CoachRepo struct {
	db *sql.DB
}

// NewCoachRepo returns a new CoachRepo bound to the given database.
func NewCoachRepo(db *sql.DB) *CoachRepo { return &CoachRepo{db: db} }

const coachCols = `id, user_id, first_name, last_name, phone, bio, profile_photo, years_experience, city, hourly_rate, is_available, created_at, updated_at`

func scanCoach(row interface{ Scan(...any) error }) (*model.Coach, error) {
	var c model.Coach
	var phone, bio, photo, city sql.NullString
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &phone, &bio, &photo,
		&c.YearsExperience, &city, &c.HourlyRate, &c.IsAvailable, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		v := phone.String
		c.Phone = &v
	}
	if bio.Valid {
		v := bio.String
		c.Bio = &v
	}
	if photo.Valid {
		v := photo.String
		c.ProfilePhoto = &v
	}
	if city.Valid {
		v := city.String
		c.City = &v
	}
	return &c, nil
}

// CreateTx inserts a coach profile for a freshly registered user
// within the registration transaction.
func (r *CoachRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID uint64, firstName, lastName string) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO coaches (user_id, first_name, last_name) VALUES (?, ?, ?)`,
		userID, firstName, lastName)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	return uint64(id), nil
}

// GetByID returns a coach profile or sql.ErrNoRows.
func (r *CoachRepo) GetByID(ctx context.Context, id uint64) (*model.Coach, error) {
	c, err := scanCoach(r.db.QueryRowContext(ctx,
		`SELECT `+coachCols+` FROM coaches WHERE id = ?`, id))
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

// GetByUserID resolves the coach profile of a user account.  The auth
// layer uses it to build the acting coach identity.
func (r *CoachRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Coach, error) {
	c, err := scanCoach(r.db.QueryRowContext(ctx,
		`SELECT `+coachCols+` FROM coaches WHERE user_id = ?`, userID))
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

// UserIDOf returns the user account owning the coach profile.  The
// notification dispatcher needs it because notifications address user
// accounts, not role profiles.
func (r *CoachRepo) UserIDOf(ctx context.Context, coachID uint64) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM coaches WHERE id = ?`, coachID).Scan(&userID)
	return userID, classify(err)
}

// CoachFilters narrows the public coach listing.  Zero values mean
// "no constraint".
type CoachFilters struct {
	City        string
	SportID     uint64
	OnlyActive  bool
	MinRate     float64
	MaxRate     float64
	Sort        string // rating | experience | price_asc | price_desc
}

// CoachListing is a coach row joined with aggregate review data and
// the names of the sports the coach teaches.
type CoachListing struct {
	model.Coach
	Sports       []string `json:"sports"`
	AvgRating    float64  `json:"avg_rating"`
	ReviewsCount uint32   `json:"reviews_count"`
}

// List returns active coaches matching the filters together with
// their sports and visible-review aggregates.
func (r *CoachRepo) List(ctx context.Context, f CoachFilters) ([]CoachListing, error) {
	q := `SELECT c.` + strings.ReplaceAll(coachCols, ", ", ", c.") + `,
                 COALESCE(GROUP_CONCAT(DISTINCT s.name ORDER BY s.name SEPARATOR ','), ''),
                 COALESCE(AVG(rv.rating), 0),
                 COUNT(DISTINCT rv.id)
          FROM coaches c
          JOIN users u ON c.user_id = u.id
          LEFT JOIN coach_sports cs ON c.id = cs.coach_id
          LEFT JOIN sports s ON cs.sport_id = s.id
          LEFT JOIN reviews rv ON c.id = rv.coach_id AND rv.is_visible = 1
          WHERE u.is_active = 1`
	args := []any{}
	if f.City != "" {
		q += ` AND c.city = ?`
		args = append(args, f.City)
	}
	if f.SportID != 0 {
		q += ` AND cs.sport_id = ?`
		args = append(args, f.SportID)
	}
	if f.OnlyActive {
		q += ` AND c.is_available = 1`
	}
	if f.MinRate > 0 {
		q += ` AND c.hourly_rate >= ?`
		args = append(args, f.MinRate)
	}
	if f.MaxRate > 0 {
		q += ` AND c.hourly_rate <= ?`
		args = append(args, f.MaxRate)
	}
	q += ` GROUP BY c.id`
	switch f.Sort {
	case "rating":
		q += ` ORDER BY AVG(rv.rating) DESC`
	case "experience":
		q += ` ORDER BY c.years_experience DESC`
	case "price_asc":
		q += ` ORDER BY c.hourly_rate ASC`
	case "price_desc":
		q += ` ORDER BY c.hourly_rate DESC`
	default:
		q += ` ORDER BY c.created_at DESC`
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]CoachListing, 0)
	for rows.Next() {
		var l CoachListing
		var phone, bio, photo, city sql.NullString
		var sports string
		if err := rows.Scan(&l.ID, &l.UserID, &l.FirstName, &l.LastName, &phone, &bio, &photo,
			&l.YearsExperience, &city, &l.HourlyRate, &l.IsAvailable, &l.CreatedAt, &l.UpdatedAt,
			&sports, &l.AvgRating, &l.ReviewsCount); err != nil {
			return nil, classify(err)
		}
		if phone.Valid {
			v := phone.String
			l.Phone = &v
		}
		if bio.Valid {
			v := bio.String
			l.Bio = &v
		}
		if photo.Valid {
			v := photo.String
			l.ProfilePhoto = &v
		}
		if city.Valid {
			v := city.String
			l.City = &v
		}
		if sports != "" {
			l.Sports = strings.Split(sports, ",")
		} else {
			l.Sports = []string{}
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Cities returns the distinct cities of active coaches for the
// discovery filter dropdown.
func (r *CoachRepo) Cities(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT c.city FROM coaches c
         JOIN users u ON c.user_id = u.id
         WHERE u.is_active = 1 AND c.city IS NOT NULL AND c.city <> ''
         ORDER BY c.city`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	cities := make([]string, 0)
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, classify(err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return cities, nil
}

// UpdateProfile writes the caller-editable profile columns.  Fields
// left nil in the input are not touched.
type CoachProfileUpdate struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	Phone           *string  `json:"phone"`
	Bio             *string  `json:"bio"`
	YearsExperience *uint32  `json:"years_experience"`
	City            *string  `json:"city"`
	HourlyRate      *float64 `json:"hourly_rate"`
	IsAvailable     *bool    `json:"is_available"`
}

func (r *CoachRepo) UpdateProfile(ctx context.Context, id uint64, u CoachProfileUpdate) error {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.FirstName != nil {
		add("first_name", *u.FirstName)
	}
	if u.LastName != nil {
		add("last_name", *u.LastName)
	}
	if u.Phone != nil {
		add("phone", *u.Phone)
	}
	if u.Bio != nil {
		add("bio", *u.Bio)
	}
	if u.YearsExperience != nil {
		add("years_experience", *u.YearsExperience)
	}
	if u.City != nil {
		add("city", *u.City)
	}
	if u.HourlyRate != nil {
		add("hourly_rate", *u.HourlyRate)
	}
	if u.IsAvailable != nil {
		add("is_available", *u.IsAvailable)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		`UPDATE coaches SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return classify(err)
}

// AddSport attaches a sport to the coach profile; duplicates are ignored.
func (r *CoachRepo) AddSport(ctx context.Context, coachID, sportID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO coach_sports (coach_id, sport_id) VALUES (?, ?)`, coachID, sportID)
	return classify(err)
}

// RemoveSport detaches a sport from the coach profile.
func (r *CoachRepo) RemoveSport(ctx context.Context, coachID, sportID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM coach_sports WHERE coach_id = ? AND sport_id = ?`, coachID, sportID)
	return classify(err)
}

// SportsOf returns the catalog sports attached to the coach.
func (r *CoachRepo) SportsOf(ctx context.Context, coachID uint64) ([]model.Sport, error) {
	const q = `SELECT s.id, s.name, s.category, s.icon, s.created_at
               FROM sports s
               JOIN coach_sports cs ON cs.sport_id = s.id
               WHERE cs.coach_id = ?
               ORDER BY s.name`
	rows, err := r.db.QueryContext(ctx, q, coachID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()
	out := make([]model.Sport, 0)
	for rows.Next() {
		s, err := scanSport(rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// TeachesSport reports whether the coach has the sport attached.
// Reservation creation validates the requested sport against it.
func (r *CoachRepo) TeachesSport(ctx context.Context, coachID, sportID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coach_sports WHERE coach_id = ? AND sport_id = ?`,
		coachID, sportID).Scan(&n)
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Social holds the optional social network links of a profile.
type Social struct {
	YouTube   string `gorm:"column:youtube" json:"youtube,omitempty"`
	Twitter   string `gorm:"column:twitter" json:"twitter,omitempty"`
	Facebook  string `gorm:"column:facebook" json:"facebook,omitempty"`
	LinkedIn  string `gorm:"column:linkedin" json:"linkedin,omitempty"`
	Instagram string `gorm:"column:instagram" json:"instagram,omitempty"`
}

// StringList is an ordered list of strings stored as a JSON array column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported skills column type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// Profile is the professional record owned by exactly one user.
type Profile struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"not null;uniqueIndex:idx_profiles_user" json:"-"`
	User           *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `gorm:"not null" json:"status"`
	Skills         StringList   `gorm:"type:text" json:"skills"`
	Bio            string       `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string       `gorm:"column:githubusername" json:"githubusername,omitempty"`
	Social         Social       `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience `gorm:"foreignKey:ProfileID" json:"experience"`
	Education      []Education  `gorm:"foreignKey:ProfileID" json:"education"`
	CreatedAt      time.Time    `json:"date"`
	UpdatedAt      time.Time    `json:"-"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// Experience is a job entry of a profile. Entries sort newest first by SortKey.
type Experience struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	ProfileID   uint       `gorm:"not null;index:idx_experience_profile_sort,priority:1" json:"-"`
	SortKey     int64      `gorm:"not null;index:idx_experience_profile_sort,priority:2" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `gorm:"column:from_date;not null" json:"from"`
	To          *time.Time `gorm:"column:to_date" json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
}

// TableName specifies the table name for GORM
func (Experience) TableName() string {
	return "experiences"
}

// BeforeCreate assigns the entry identifier and its position.
func (e *Experience) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SortKey == 0 {
		e.SortKey = NextSortKey()
	}
	return nil
}

// Education is a school entry of a profile. Entries sort newest first by SortKey.
type Education struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	ProfileID    uint       `gorm:"not null;index:idx_education_profile_sort,priority:1" json:"-"`
	SortKey      int64      `gorm:"not null;index:idx_education_profile_sort,priority:2" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"column:fieldofstudy;not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"column:from_date;not null" json:"from"`
	To           *time.Time `gorm:"column:to_date" json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
}

// TableName specifies the table name for GORM
func (Education) TableName() string {
	return "educations"
}

// BeforeCreate assigns the entry identifier and its position.
func (e *Education) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SortKey == 0 {
		e.SortKey = NextSortKey()
	}
	return nil
}

var lastSortKey atomic.Int64

// NextSortKey returns a strictly increasing key based on the wall clock, so
// entries inserted later always sort before earlier ones.
func NextSortKey() int64 {
	for {
		now := time.Now().UnixNano()
		last := lastSortKey.Load()
		if now <= last {
			now = last + 1
		}
		if lastSortKey.CompareAndSwap(last, now) {
			return now
		}
	}
}

// ProfilePatch carries the supplied fields of a profile create or update.
// Nil fields are left untouched.
type ProfilePatch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         StringList
	YouTube        *string
	Twitter        *string
	Facebook       *string
	LinkedIn       *string
	Instagram      *string
}

// Columns returns the column map of the supplied fields for a partial update.
func (p ProfilePatch) Columns() map[string]any {
	cols := make(map[string]any)
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("company", p.Company)
	set("website", p.Website)
	set("location", p.Location)
	set("bio", p.Bio)
	set("status", p.Status)
	set("githubusername", p.GithubUsername)
	set("social_youtube", p.YouTube)
	set("social_twitter", p.Twitter)
	set("social_facebook", p.Facebook)
	set("social_linkedin", p.LinkedIn)
	set("social_instagram", p.Instagram)
	if p.Skills != nil {
		cols["skills"] = p.Skills
	}
	return cols
}

// Apply writes the supplied fields onto a new profile.
func (p ProfilePatch) Apply(profile *Profile) {
	assign := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	assign(&profile.Company, p.Company)
	assign(&profile.Website, p.Website)
	assign(&profile.Location, p.Location)
	assign(&profile.Bio, p.Bio)
	assign(&profile.Status, p.Status)
	assign(&profile.GithubUsername, p.GithubUsername)
	assign(&profile.Social.YouTube, p.YouTube)
	assign(&profile.Social.Twitter, p.Twitter)
	assign(&profile.Social.Facebook, p.Facebook)
	assign(&profile.Social.LinkedIn, p.LinkedIn)
	assign(&profile.Social.Instagram, p.Instagram)
	if p.Skills != nil {
		profile.Skills = p.Skills
	}
}

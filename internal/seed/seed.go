// Package seed populates a database with fake developers, profiles and
// posts for local development and demos.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Options configures a seeding run.
type Options struct {
	Users int
	Posts int
	// Seed fixes the fake data generator. Zero picks a time based seed.
	Seed int64
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Profiles int
	Posts    int
	Likes    int
	Comments int
}

var skillPool = []string{
	"Go", "Rust", "TypeScript", "JavaScript", "Python", "React", "Vue", "Node.js",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "Terraform", "AWS", "GraphQL", "gRPC",
}

var statusPool = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern", "Other",
}

// Seeder creates fake data through GORM.
type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	opts  Options
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Seeder{db: db, faker: gofakeit.New(opts.Seed), opts: opts}
}

// Clean removes all rows, children first.
func (s *Seeder) Clean(ctx context.Context) error {
	tables := []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{}, &models.User{},
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clean %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run creates the configured number of users, each with a profile, and
// spreads posts, likes and comments across them.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return summary, fmt.Errorf("hash password: %w", err)
	}

	users := make([]models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		user, err := s.createUser(ctx, i, string(hash))
		if err != nil {
			return summary, err
		}
		users = append(users, *user)
		summary.Users++

		if err := s.createProfile(ctx, user); err != nil {
			return summary, err
		}
		summary.Profiles++
	}
	middleware.Logger.Info("seeded users", slog.Int("count", summary.Users))

	if len(users) == 0 {
		return summary, nil
	}

	for i := 0; i < s.opts.Posts; i++ {
		likes, comments, err := s.createPost(ctx, users)
		if err != nil {
			return summary, err
		}
		summary.Posts++
		summary.Likes += likes
		summary.Comments += comments
	}
	middleware.Logger.Info("seeded posts",
		slog.Int("posts", summary.Posts),
		slog.Int("likes", summary.Likes),
		slog.Int("comments", summary.Comments))

	return summary, nil
}

func (s *Seeder) createUser(ctx context.Context, n int, hash string) (*models.User, error) {
	first, last := s.faker.FirstName(), s.faker.LastName()
	// The index keeps emails unique however the generator repeats names.
	email := fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), n)
	user := &models.User{
		Name:     first + " " + last,
		Email:    email,
		Password: hash,
		Avatar:   service.GravatarURL(email),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}
	return user, nil
}

func (s *Seeder) createProfile(ctx context.Context, user *models.User) error {
	profile := &models.Profile{
		UserID:         user.ID,
		Company:        s.faker.Company(),
		Website:        s.faker.URL(),
		Location:       s.faker.City(),
		Status:         s.faker.RandomString(statusPool),
		Skills:         s.skills(),
		Bio:            s.faker.Sentence(12),
		GithubUsername: strings.ToLower(s.faker.Username()),
		Social: models.Social{
			Twitter:  "https://twitter.com/" + strings.ToLower(s.faker.Username()),
			LinkedIn: "https://linkedin.com/in/" + strings.ToLower(s.faker.Username()),
		},
	}
	if err := s.db.WithContext(ctx).Omit("User", "Experience", "Education").Create(profile).Error; err != nil {
		return fmt.Errorf("create profile for user %d: %w", user.ID, err)
	}

	for i := 0; i < s.faker.Number(1, 3); i++ {
		from := s.pastDate(10)
		exp := &models.Experience{
			ProfileID:   profile.ID,
			Title:       s.faker.JobTitle(),
			Company:     s.faker.Company(),
			Location:    s.faker.City(),
			From:        from,
			Description: s.faker.Sentence(10),
		}
		if i == 0 {
			exp.Current = true
		} else {
			to := from.AddDate(s.faker.Number(1, 3), 0, 0)
			exp.To = &to
		}
		if err := s.db.WithContext(ctx).Create(exp).Error; err != nil {
			return fmt.Errorf("create experience: %w", err)
		}
	}

	from := s.pastDate(15)
	to := from.AddDate(4, 0, 0)
	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       s.faker.Company() + " University",
		Degree:       s.faker.RandomString([]string{"BSc", "MSc", "BA", "Bootcamp Certificate"}),
		FieldOfStudy: s.faker.RandomString([]string{"Computer Science", "Mathematics", "Physics", "Design"}),
		From:         from,
		To:           &to,
	}
	if err := s.db.WithContext(ctx).Create(edu).Error; err != nil {
		return fmt.Errorf("create education: %w", err)
	}
	return nil
}

func (s *Seeder) createPost(ctx context.Context, users []models.User) (likes, comments int, err error) {
	author := users[s.faker.Number(0, len(users)-1)]
	post := &models.Post{
		UserID:    author.ID,
		Text:      s.faker.Paragraph(1, 3, 12, " "),
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: s.pastDate(1),
	}
	if err := s.db.WithContext(ctx).Omit("Likes", "Comments").Create(post).Error; err != nil {
		return 0, 0, fmt.Errorf("create post: %w", err)
	}

	// A shuffled prefix of the users keeps likes unique per post.
	order := indexes(len(users))
	s.faker.ShuffleInts(order)
	for _, idx := range order[:s.faker.Number(0, len(users)-1)] {
		like := &models.Like{PostID: post.ID, UserID: users[idx].ID}
		if err := s.db.WithContext(ctx).Create(like).Error; err != nil {
			return likes, comments, fmt.Errorf("create like: %w", err)
		}
		likes++
	}

	for i := 0; i < s.faker.Number(0, 3); i++ {
		commenter := users[s.faker.Number(0, len(users)-1)]
		comment := &models.Comment{
			PostID: post.ID,
			UserID: commenter.ID,
			Text:   s.faker.Sentence(8),
			Name:   commenter.Name,
			Avatar: commenter.Avatar,
		}
		if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
			return likes, comments, fmt.Errorf("create comment: %w", err)
		}
		comments++
	}
	return likes, comments, nil
}

func (s *Seeder) skills() models.StringList {
	shuffled := make([]string, len(skillPool))
	copy(shuffled, skillPool)
	s.faker.ShuffleStrings(shuffled)
	return models.StringList(shuffled[:s.faker.Number(2, 6)])
}

// pastDate returns a UTC day within the last years years.
func (s *Seeder) pastDate(years int) time.Time {
	now := time.Now().UTC()
	d := s.faker.DateRange(now.AddDate(-years, 0, 0), now)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

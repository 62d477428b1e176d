package seed

import (
	"fmt"
	"log"
	"os"

	"inkwell/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int  `yaml:"num_users"`
	PostsPerUser    int  `yaml:"posts_per_user"`
	CommentsPerPost int  `yaml:"comments_per_post"`
	Admins          int  `yaml:"admins"`
	ShouldClean     bool `yaml:"clean"`
}

// DefaultOptions returns a small but usable demo data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:        10,
		PostsPerUser:    3,
		CommentsPerPost: 4,
		Admins:          1,
	}
}

// LoadOptions reads a YAML preset from disk and merges it over the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read seed preset: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse seed preset: %w", err)
	}
	return opts, nil
}

// Run populates the database with demo users, posts, and comments.
func Run(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		admin := i < opts.Admins
		user, err := factory.CreateUser(func(u *models.User) {
			u.IsAdmin = admin
		})
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.NumUsers*opts.PostsPerUser)
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := factory.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			commenter := users[factory.rand.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("seed comment on post %d: %w", post.ID, err)
			}
		}
	}

	log.Printf("seeded %d users, %d posts, %d comments",
		len(users), len(posts), len(posts)*opts.CommentsPerPost)
	return nil
}

// Clean removes all seeded content. Comments go first so foreign keys
// stay satisfied on databases that enforce them.
func Clean(db *gorm.DB) error {
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

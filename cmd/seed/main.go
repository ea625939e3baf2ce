package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "blogicum-demo-1"

type seedOptions struct {
	users        int
	categories   int
	locations    int
	postsPerUser int
	maxComments  int
	randomSeed   int64
}

func main() {
	var opts seedOptions
	flag.IntVar(&opts.users, "users", 5, "生成用户数")
	flag.IntVar(&opts.categories, "categories", 4, "生成分类数")
	flag.IntVar(&opts.locations, "locations", 4, "生成地点数")
	flag.IntVar(&opts.postsPerUser, "posts", 6, "每个用户的文章数")
	flag.IntVar(&opts.maxComments, "comments", 4, "每篇文章最多评论数")
	flag.Int64Var(&opts.randomSeed, "seed", 0, "随机种子，0 表示随机")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	faker := gofakeit.New(opts.randomSeed)
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		return seed(tx, faker, opts, time.Now())
	}); err != nil {
		stdLog.Fatalf("Seed failed: %v", err)
	}
	stdLog.Printf("Seed finished, demo password for generated users: %s", seedPassword)
}

func seed(tx *gorm.DB, faker *gofakeit.Faker, opts seedOptions, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, opts.users)
	for i := 0; i < opts.users; i++ {
		user := models.User{
			Username:     fmt.Sprintf("%s%d", strings.ToLower(faker.Username()), i),
			FirstName:    faker.FirstName(),
			LastName:     faker.LastName(),
			Email:        strings.ToLower(faker.Email()),
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return errors.New("at least one user is required")
	}

	categoryIDs := make([]uint, 0, opts.categories)
	for i := 0; i < opts.categories; i++ {
		title := faker.HipsterWord()
		category := models.Category{
			Title:       strings.ToUpper(title[:1]) + title[1:],
			Description: faker.Sentence(12),
			Slug:        fmt.Sprintf("%s-%d", slugify(title), i),
			IsPublished: i != 0, // 第一个分类保持未发布，用于演示隐藏规则
		}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	locationIDs := make([]uint, 0, opts.locations)
	for i := 0; i < opts.locations; i++ {
		location := models.Location{Name: faker.City(), IsPublished: true}
		if err := tx.Create(&location).Error; err != nil {
			return fmt.Errorf("create location: %w", err)
		}
		locationIDs = append(locationIDs, location.ID)
	}

	for _, author := range users {
		for i := 0; i < opts.postsPerUser; i++ {
			post := models.Post{
				Title:       faker.Sentence(faker.Number(3, 7)),
				Text:        faker.Paragraph(faker.Number(1, 3), 4, 12, "\n\n"),
				PubDate:     faker.DateRange(now.AddDate(0, -6, 0), now.AddDate(0, 0, 7)),
				AuthorID:    author.ID,
				CategoryID:  pickID(faker, categoryIDs),
				LocationID:  pickID(faker, locationIDs),
				IsPublished: faker.Number(0, 9) > 0,
			}
			if err := tx.Create(&post).Error; err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			for j := faker.Number(0, opts.maxComments); j > 0; j-- {
				commenter := users[faker.Number(0, len(users)-1)]
				comment := models.Comment{
					Text:     faker.Sentence(faker.Number(4, 16)),
					PostID:   post.ID,
					AuthorID: commenter.ID,
				}
				if err := tx.Create(&comment).Error; err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
			}
		}
	}
	return nil
}

// pickID 随机选择一个 ID，约四分之一概率返回 nil
func pickID(faker *gofakeit.Faker, ids []uint) *uint {
	if len(ids) == 0 || faker.Number(0, 3) == 0 {
		return nil
	}
	id := ids[faker.Number(0, len(ids)-1)]
	return &id
}

func slugify(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "category"
	}
	return b.String()
}

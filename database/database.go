package database

import (
	"fmt"
	"log"
	"os"

	"verrocchio-backend/internal/domain/chat"
	"verrocchio-backend/internal/domain/notifications"
	"verrocchio-backend/internal/domain/posts"
	"verrocchio-backend/internal/domain/requests"
	"verrocchio-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}

// Migrate runs the schema migration for every domain model. Split out from
// InitDB so tests can run it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&users.Slide{},

		&chat.Conversation{},
		&chat.Message{},

		&notifications.Notification{},

		&requests.CommissionRequest{},

		&posts.Post{},
		&posts.PostLike{},
	)
}

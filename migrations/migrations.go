package migrations

import (
	"database/sql"
	"time"
)

// AutoMigrateUsers creates the users table if it does not exist.
func AutoMigrateUsers(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			age INT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	return execWithRetry(db, query, retries)
}

// AutoMigratePosts creates the posts table if it does not exist.
func AutoMigratePosts(retries int, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS posts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			content TEXT NOT NULL,
			tags TEXT NULL,
			user_id INT NOT NULL,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);
	`
	return execWithRetry(db, query, retries)
}

func execWithRetry(db *sql.DB, query string, retries int) error {
	_, err := db.Exec(query)
	for i := 0; err != nil && i < retries; i++ {
		time.Sleep(1 * time.Second)
		_, err = db.Exec(query)
	}
	return err
}

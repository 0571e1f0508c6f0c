package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the document table behind docstore.MySQL and the refresh
// token table. Each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS records (
		seq        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		collection VARCHAR(64)  NOT NULL,
		id         CHAR(15)     NOT NULL,
		data       LONGTEXT     NOT NULL CHECK (JSON_VALID(data)),
		created    VARCHAR(24)  NOT NULL,
		updated    VARCHAR(24)  NOT NULL,
		uniq_key   VARCHAR(255) NULL,
		PRIMARY KEY (collection, id),
		UNIQUE KEY records_seq (seq),
		UNIQUE KEY records_unique (collection, uniq_key),
		KEY records_created (collection, created)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id    CHAR(15)     NOT NULL,
		token_hash CHAR(64)     NOT NULL,
		expires_at DATETIME     NOT NULL,
		revoked_at DATETIME     NULL,
		created_at DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY refresh_tokens_hash (token_hash),
		KEY refresh_tokens_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables the server needs.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
)

// Username and email compare byte for byte on every dialect. MySQL's default
// collation folds case, so those columns get utf8mb4_bin there.
var schemas = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS users (
			id              BIGSERIAL PRIMARY KEY,
			username        VARCHAR(50)  NOT NULL,
			email           VARCHAR(50)  NOT NULL,
			first_name      VARCHAR(50)  NOT NULL,
			last_name       VARCHAR(50)  NOT NULL,
			hashed_password VARCHAR(255) NOT NULL,
			role            VARCHAR(50)  NOT NULL,
			is_active       BOOLEAN      NOT NULL DEFAULT TRUE,
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_email_key UNIQUE (email)
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id          BIGSERIAL PRIMARY KEY,
			title       VARCHAR(100) NOT NULL,
			description VARCHAR(100) NOT NULL,
			priority    INTEGER      NOT NULL,
			complete    BOOLEAN      NOT NULL DEFAULT FALSE,
			owner_id    BIGINT       NOT NULL REFERENCES users (id) ON DELETE CASCADE
		)`,
	},
	MySQL: {
		`CREATE TABLE IF NOT EXISTS users (
			id              BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
			username        VARCHAR(50)  CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
			email           VARCHAR(50)  CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
			first_name      VARCHAR(50)  NOT NULL,
			last_name       VARCHAR(50)  NOT NULL,
			hashed_password VARCHAR(255) NOT NULL,
			role            VARCHAR(50)  NOT NULL,
			is_active       BOOLEAN      NOT NULL DEFAULT TRUE,
			UNIQUE KEY users_username_key (username),
			UNIQUE KEY users_email_key (email)
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title       VARCHAR(100) NOT NULL,
			description VARCHAR(100) NOT NULL,
			priority    INT          NOT NULL,
			complete    BOOLEAN      NOT NULL DEFAULT FALSE,
			owner_id    BIGINT       NOT NULL,
			CONSTRAINT todos_owner_fk FOREIGN KEY (owner_id) REFERENCES users (id) ON DELETE CASCADE
		)`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			username        TEXT    NOT NULL UNIQUE,
			email           TEXT    NOT NULL UNIQUE,
			first_name      TEXT    NOT NULL,
			last_name       TEXT    NOT NULL,
			hashed_password TEXT    NOT NULL,
			role            TEXT    NOT NULL,
			is_active       BOOLEAN NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT    NOT NULL,
			description TEXT    NOT NULL,
			priority    INTEGER NOT NULL,
			complete    BOOLEAN NOT NULL DEFAULT 0,
			owner_id    INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE
		)`,
	},
}

// EnsureSchema creates the users and todos tables when they do not exist.
// Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *DB) error {
	stmts, ok := schemas[db.dialect]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDialect, db.dialect)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

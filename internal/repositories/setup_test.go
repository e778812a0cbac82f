package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE colleges (
		college_id UUID PRIMARY KEY,
		name       VARCHAR(150) NOT NULL UNIQUE
	);

	CREATE TABLE users (
		id            BIGSERIAL PRIMARY KEY,
		college_id    UUID REFERENCES colleges(college_id),
		username      VARCHAR(50)  NOT NULL UNIQUE,
		email         VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name     VARCHAR(100) NOT NULL,
		role          VARCHAR(10)  NOT NULL DEFAULT 'USER',
		is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		last_login    TIMESTAMPTZ
	);

	CREATE TABLE events (
		event_id   UUID PRIMARY KEY,
		title      VARCHAR(150) NOT NULL,
		type       VARCHAR(20)  NOT NULL,
		event_date TIMESTAMPTZ  NOT NULL,
		college_id UUID   NOT NULL REFERENCES colleges(college_id),
		created_by BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE registrations (
		registration_id UUID PRIMARY KEY,
		event_id   UUID   NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
		student_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		attended   BOOLEAN     NOT NULL DEFAULT FALSE,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (event_id, student_id)
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

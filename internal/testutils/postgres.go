package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/audit"
	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupPostgresForIntegration hands back a migrated gorm handle against a real
// postgres. TEST_DB_DSN points at an external database; without it a
// throwaway container is started.
func SetupPostgresForIntegration() (*gorm.DB, func()) {
	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		waitForPostgres(dsn)
		return openAndMigrate(dsn), func() {}
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_USER":     "test",
			"POSTGRES_DB":       "fixtrack",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatal(err)
	}

	host, err := pg.Host(ctx)
	if err != nil {
		log.Fatal(err)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatal(err)
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/fixtrack?sslmode=disable", host, port.Port())
	waitForPostgres(dsn)

	db := openAndMigrate(dsn)
	cleanup := func() {
		_ = pg.Terminate(ctx)
	}
	return db, cleanup
}

func waitForPostgres(dsn string) {
	var err error
	for i := 0; i < 10; i++ {
		var conn *sql.DB
		conn, err = sql.Open("postgres", dsn)
		if err == nil {
			err = conn.Ping()
			_ = conn.Close()
			if err == nil {
				return
			}
		}
		time.Sleep(1 * time.Second)
	}
	log.Fatal(err)
}

func openAndMigrate(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&user.Role{},
		&user.User{},
		&issue.Category{},
		&issue.Issue{},
		&issue.Image{},
		&assignment.Assignment{},
		&assignment.Image{},
		&assignment.Document{},
		&notification.Notification{},
		&notification.AssignmentNotification{},
		&feedback.Comment{},
		&feedback.Rating{},
		&feedback.Survey{},
		&admin.Note{},
		&admin.RoleRequest{},
		&admin.SystemSettings{},
		&audit.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}
	return db
}

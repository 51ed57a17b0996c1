package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/alicebob/miniredis/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestDatabase holds an in-memory SQLite database for integration tests.
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// TestRedis holds an in-memory Redis mock (miniredis).
type TestRedis struct {
	Server *miniredis.Miniredis
	URL    string
}

var dbCounter atomic.Int64

// SetupTestDatabase creates an in-memory SQLite database and runs the
// migrations. Each call gets its own named database so suites stay isolated.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", dbCounter.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.KosaKata{},
		&model.Feedback{},
		&model.Information{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDatabase{
		DB:  db,
		DSN: dsn,
	}
}

// Teardown closes the test database connection.
func (td *TestDatabase) Teardown(t *testing.T) {
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("warning: failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("warning: failed to close database: %v", err)
	}
}

// CleanDatabase deletes all records so each test starts from a blank slate.
func CleanDatabase(t *testing.T, db *gorm.DB) {
	tables := []string{"feedbacks", "kosa_kata", "information", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}
}

// SetupTestRedis starts a miniredis server.
func SetupTestRedis(t *testing.T) *TestRedis {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	return &TestRedis{
		Server: server,
		URL:    fmt.Sprintf("redis://%s", server.Addr()),
	}
}

// Teardown stops the miniredis server.
func (tr *TestRedis) Teardown(t *testing.T) {
	tr.Server.Close()
}

// CreateTestUser builds a user with a bcrypt-hashed password. The caller is
// responsible for persisting it.
func CreateTestUser(fullName, email, password, role string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &model.User{
		FullName:      fullName,
		Email:         email,
		PasswordHash:  string(hashedPassword),
		UserType:      model.UserTypeGeneral,
		Role:          role,
		ProfilePicURL: model.DefaultProfilePicURL,
	}, nil
}

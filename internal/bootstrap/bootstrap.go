// Package bootstrap assembles repositories and services for the API server and sparksctl.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sparkslearn/console/internal/config"
	"github.com/sparkslearn/console/internal/db"
	"github.com/sparkslearn/console/internal/firebaseapp"
	"github.com/sparkslearn/console/internal/identity"
	"github.com/sparkslearn/console/internal/repository"
	"github.com/sparkslearn/console/internal/repository/dao"
	"github.com/sparkslearn/console/internal/repository/dao/fsdao"
	"github.com/sparkslearn/console/internal/service"
)

type Repositories struct {
	Students  *repository.StudentRepository
	Colleges  *repository.CollegeRepository
	Audit     *repository.AuditRepository
	Operators *repository.OperatorRepository
	Workshops *repository.WorkshopRepository
}

type Services struct {
	Audit        *service.AuditLog
	Auth         *service.AuthService
	Colleges     *service.CollegeService
	Students     *service.StudentService
	Registration *service.RegistrationService
	Import       *service.ImportService
	Workshops    *service.WorkshopService
}

// App holds every opened client. Close releases them.
type App struct {
	Config   *config.AppConfig
	DB       *gorm.DB
	Firebase *firebaseapp.Clients

	Repos    Repositories
	Services Services
}

// OpenDB connects to Postgres, preferring DATABASE_URL over the postgres config block.
func OpenDB(conf *config.AppConfig) (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		gdb, err := db.OpenPostgresWithURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("db.OpenPostgresWithURL -> %w", err)
		}
		return gdb, nil
	}

	gdb, err := db.OpenPostgres(conf.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db.OpenPostgres -> %w", err)
	}

	return gdb, nil
}

func New(ctx context.Context, conf *config.AppConfig) (*App, error) {
	gdb, err := OpenDB(conf)
	if err != nil {
		return nil, err
	}

	useFirestore := conf.Storage.Driver == config.StorageDriverFirestore
	clients, err := firebaseapp.New(ctx, conf.Firebase, useFirestore)
	if err != nil {
		return nil, fmt.Errorf("firebaseapp.New -> %w", err)
	}

	app := &App{
		Config:   conf,
		DB:       gdb,
		Firebase: clients,
		Repos:    NewRepositories(conf.Storage.Driver, gdb, clients),
	}
	app.Services = NewServices(app.Repos, identity.NewFirebaseProvider(clients.Auth))

	zap.L().Info("storage ready", zap.String("driver", conf.Storage.Driver))

	return app, nil
}

// NewRepositories binds student, college and audit data to driver. Operators, workshops and
// submissions always live in Postgres.
func NewRepositories(driver string, gdb *gorm.DB, clients *firebaseapp.Clients) Repositories {
	repos := Repositories{
		Operators: repository.NewOperatorRepository(dao.NewOperatorDAO(gdb)),
		Workshops: repository.NewWorkshopRepository(dao.NewWorkshopDAO(gdb), dao.NewSubmissionDAO(gdb)),
	}

	if driver == config.StorageDriverFirestore && clients != nil && clients.Firestore != nil {
		repos.Students = repository.NewStudentRepository(fsdao.NewStudentDAO(clients.Firestore))
		repos.Colleges = repository.NewCollegeRepository(fsdao.NewCollegeDAO(clients.Firestore))
		repos.Audit = repository.NewAuditRepository(fsdao.NewAuditDAO(clients.Firestore))

		return repos
	}

	repos.Students = repository.NewStudentRepository(dao.NewStudentDAO(gdb))
	repos.Colleges = repository.NewCollegeRepository(dao.NewCollegeDAO(gdb))
	repos.Audit = repository.NewAuditRepository(dao.NewAuditDAO(gdb))

	return repos
}

func NewServices(repos Repositories, provider identity.Provider) Services {
	audit := service.NewAuditLog(repos.Audit)
	registration := service.NewRegistrationService(provider, repos.Students, audit)
	students := service.NewStudentService(repos.Students, repos.Colleges, registration, audit)

	return Services{
		Audit:        audit,
		Auth:         service.NewAuthService(repos.Operators),
		Colleges:     service.NewCollegeService(repos.Colleges, repos.Students, audit),
		Students:     students,
		Registration: registration,
		Import:       service.NewImportService(repos.Colleges, repos.Students, registration, audit),
		Workshops:    service.NewWorkshopService(repos.Workshops, repos.Colleges, repos.Students, students, audit),
	}
}

func (a *App) Close() error {
	var errs []error
	if a.Firebase != nil {
		errs = append(errs, a.Firebase.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}

	return errors.Join(errs...)
}

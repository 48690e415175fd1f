//go:build integration

package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("dockertest.NewPool: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=sparks_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions: %v", err)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s/sparks_test?sslmode=disable", resource.GetHostPort("5432/tcp"))
	pool.MaxWait = 60 * time.Second
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("postgres never became ready: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("InitTables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("pool.Purge: %v", err)
	}
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	require.NoError(t, DropAllTables(testDB))
	require.NoError(t, InitTables(testDB))
}

func TestStudentDAO_UniqueEmail(t *testing.T) {
	resetTables(t)
	d := NewStudentDAO(testDB)
	ctx := context.Background()

	_, err := d.Insert(ctx, Student{ID: "uid-1", Name: "Asha", Email: "a@x.edu", CollegeID: "c-1", Badges: []string{}, CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Student{ID: "uid-2", Name: "Asha Again", Email: "a@x.edu", CollegeID: "c-1", Badges: []string{}, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrStudentEmailExists)
}

func TestStudentDAO_PointsAndSeason(t *testing.T) {
	resetTables(t)
	d := NewStudentDAO(testDB)
	ctx := context.Background()

	for i, name := range []string{"Asha", "Ravi"} {
		_, err := d.Insert(ctx, Student{
			ID:        fmt.Sprintf("uid-%d", i),
			Name:      name,
			Email:     fmt.Sprintf("%d@x.edu", i),
			CollegeID: "c-1",
			Badges:    []string{"starter"},
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	st, err := d.AddPoints(ctx, "uid-0", 15, 1)
	require.NoError(t, err)
	assert.Equal(t, 15, st.TotalPoints)
	assert.Equal(t, 1, st.TasksCompleted)

	_, err = d.AddPoints(ctx, "missing", 1, 0)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	counts, err := d.CountByCollege(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c-1": 2}, counts)

	n, err := d.ResetSeason(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	st, err = d.FindByID(ctx, "uid-0")
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalPoints)
	assert.Empty(t, st.Badges)
}

func TestStudentDAO_DeleteIsIdempotent(t *testing.T) {
	resetTables(t)
	d := NewStudentDAO(testDB)
	ctx := context.Background()

	_, err := d.Insert(ctx, Student{ID: "uid-1", Name: "Asha", Email: "a@x.edu", CollegeID: "c-1", Badges: []string{}, CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, d.Delete(ctx, "uid-1"))
	require.NoError(t, d.Delete(ctx, "uid-1"))

	_, err = d.FindByID(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestOperatorDAO_UniqueEmail(t *testing.T) {
	resetTables(t)
	d := NewOperatorDAO(testDB)
	ctx := context.Background()

	_, err := d.Insert(ctx, Operator{Email: "ops@x.edu", Password: "hash", Name: "Ops"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Operator{Email: "ops@x.edu", Password: "hash", Name: "Ops"})
	assert.ErrorIs(t, err, ErrOperatorEmailExists)
}

func TestAuditDAO_FindNewestFirst(t *testing.T) {
	resetTables(t)
	d := NewAuditDAO(testDB)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, action := range []string{"A", "B", "A"} {
		require.NoError(t, d.Insert(ctx, AuditEntry{
			ID:        fmt.Sprintf("a-%d", i),
			Action:    action,
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Details:   map[string]string{"i": fmt.Sprint(i)},
			Status:    "SUCCESS",
		}))
	}

	entries, err := d.Find(ctx, "A", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a-2", entries[0].ID)
	assert.Equal(t, "2", entries[0].Details["i"])
}

func TestSubmissionDAO_GradeOnlyOnce(t *testing.T) {
	ctx := context.Background()
	workshops := NewWorkshopDAO(testDB)
	submissions := NewSubmissionDAO(testDB)

	w, err := workshops.Insert(ctx, Workshop{ID: "w-it-1", Title: "Intro", CollegeID: "c-it", Status: "Upcoming", MaxPoints: 50, CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = submissions.Insert(ctx, Submission{ID: "s-it-1", WorkshopID: w.ID, StudentID: "uid-it", Status: "Pending", SubmittedAt: time.Now()})
	require.NoError(t, err)

	graded, err := submissions.Grade(ctx, "s-it-1", "Pending", "Approved", 40, "ok", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Approved", graded.Status)
	require.NotNil(t, graded.GradedAt)

	_, err = submissions.Grade(ctx, "s-it-1", "Pending", "Rejected", 0, "", time.Now())
	assert.ErrorIs(t, err, ErrSubmissionGraded)
	_, err = submissions.Grade(ctx, "s-missing", "Pending", "Rejected", 0, "", time.Now())
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	require.NoError(t, submissions.Reopen(ctx, "s-it-1", "Pending"))
	pending, err := submissions.FindByWorkshop(ctx, w.ID, "Pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Nil(t, pending[0].GradedAt)
}

package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const studentEmailIndex = "idx_students_email"

type Student struct {
	ID      string `gorm:"primaryKey" firestore:"-"`
	AuthUID string `firestore:"authUid"`

	Name        string `gorm:"not null" firestore:"name"`
	RollNumber  string `firestore:"roll_no"`
	Email       string `gorm:"not null;uniqueIndex:idx_students_email" firestore:"email"`
	DateOfBirth string `firestore:"dob"`
	CollegeID   string `gorm:"index;not null" firestore:"collegeId"`

	TotalPoints       int      `gorm:"not null;default:0" firestore:"totalPoints"`
	Badges            []string `gorm:"serializer:json" firestore:"badges"`
	TasksCompleted    int      `gorm:"not null;default:0" firestore:"tasksCompleted"`
	AttendancePercent int      `gorm:"not null;default:0" firestore:"attendancePercentage"`

	CreatedAt time.Time `gorm:"not null" firestore:"createdAt"`
}

type StudentDAO struct {
	db *gorm.DB
}

func NewStudentDAO(db *gorm.DB) *StudentDAO {
	return &StudentDAO{
		db: db,
	}
}

func (d *StudentDAO) Insert(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Create(&student)
	if result.Error != nil {
		if uniqueViolation(result.Error, studentEmailIndex) {
			return Student{}, ErrStudentEmailExists
		}

		return Student{}, mapError(result.Error)
	}

	return student, nil
}

func (d *StudentDAO) FindByID(ctx context.Context, id string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, mapError(result.Error)
	}

	return student, nil
}

func (d *StudentDAO) FindByEmail(ctx context.Context, email string) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).Where("email = ?", email).Find(&students)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return students, nil
}

func (d *StudentDAO) FindByCollege(ctx context.Context, collegeID string) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).Where("college_id = ?", collegeID).Order("name").Find(&students)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return students, nil
}

func (d *StudentDAO) FindAll(ctx context.Context) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).Order("name").Find(&students)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	return students, nil
}

// Delete removes the student with id. Deleting a missing student is not an error.
func (d *StudentDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Student{}, "id = ?", id)
	if result.Error != nil {
		return mapError(result.Error)
	}

	return nil
}

func (d *StudentDAO) AddPoints(ctx context.Context, id string, points, tasks int) (Student, error) {
	result := d.db.WithContext(ctx).Model(&Student{}).Where("id = ?", id).Updates(map[string]any{
		"total_points":    gorm.Expr("total_points + ?", points),
		"tasks_completed": gorm.Expr("tasks_completed + ?", tasks),
	})
	if result.Error != nil {
		return Student{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return Student{}, ErrStudentNotFound
	}

	return d.FindByID(ctx, id)
}

// ResetSeason clears points and badges of every student and returns how many were reset.
func (d *StudentDAO) ResetSeason(ctx context.Context) (int, error) {
	result := d.db.WithContext(ctx).Model(&Student{}).Where("1 = 1").Updates(map[string]any{
		"total_points": 0,
		"badges":       "[]",
	})
	if result.Error != nil {
		return 0, mapError(result.Error)
	}

	return int(result.RowsAffected), nil
}

func (d *StudentDAO) CountByCollege(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		CollegeID string
		Count     int
	}

	result := d.db.WithContext(ctx).Model(&Student{}).
		Select("college_id, count(*) as count").
		Group("college_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, mapError(result.Error)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.CollegeID] = r.Count
	}

	return counts, nil
}

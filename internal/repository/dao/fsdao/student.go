package fsdao

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"

	"github.com/sparkslearn/console/internal/repository/dao"
)

type StudentDAO struct {
	client *firestore.Client
}

func NewStudentDAO(client *firestore.Client) *StudentDAO {
	return &StudentDAO{
		client: client,
	}
}

func setStudentID(s *dao.Student, id string) { s.ID = id }

// Insert puts the student under its id. Firestore has no unique indexes,
// so two concurrent inserts with the same email both succeed.
func (d *StudentDAO) Insert(ctx context.Context, student dao.Student) (dao.Student, error) {
	if student.Badges == nil {
		student.Badges = []string{}
	}

	_, err := d.client.Collection(studentsCollection).Doc(student.ID).Set(ctx, student)
	if err != nil {
		return dao.Student{}, mapError(err, nil)
	}

	return student, nil
}

func (d *StudentDAO) FindByID(ctx context.Context, id string) (dao.Student, error) {
	snap, err := d.client.Collection(studentsCollection).Doc(id).Get(ctx)
	if err != nil {
		return dao.Student{}, mapError(err, dao.ErrStudentNotFound)
	}

	var student dao.Student
	if err = snap.DataTo(&student); err != nil {
		return dao.Student{}, fmt.Errorf("snap.DataTo -> %w", err)
	}
	student.ID = snap.Ref.ID

	return student, nil
}

func (d *StudentDAO) FindByEmail(ctx context.Context, email string) ([]dao.Student, error) {
	it := d.client.Collection(studentsCollection).Where("email", "==", email).Documents(ctx)

	return collect(it, setStudentID)
}

func (d *StudentDAO) FindByCollege(ctx context.Context, collegeID string) ([]dao.Student, error) {
	it := d.client.Collection(studentsCollection).Where("collegeId", "==", collegeID).Documents(ctx)

	students, err := collect(it, setStudentID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(students, func(i, j int) bool { return students[i].Name < students[j].Name })

	return students, nil
}

func (d *StudentDAO) FindAll(ctx context.Context) ([]dao.Student, error) {
	it := d.client.Collection(studentsCollection).OrderBy("name", firestore.Asc).Documents(ctx)

	return collect(it, setStudentID)
}

func (d *StudentDAO) Delete(ctx context.Context, id string) error {
	if _, err := d.client.Collection(studentsCollection).Doc(id).Delete(ctx); err != nil {
		return mapError(err, nil)
	}

	return nil
}

func (d *StudentDAO) AddPoints(ctx context.Context, id string, points, tasks int) (dao.Student, error) {
	_, err := d.client.Collection(studentsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "totalPoints", Value: firestore.Increment(points)},
		{Path: "tasksCompleted", Value: firestore.Increment(tasks)},
	})
	if err != nil {
		return dao.Student{}, mapError(err, dao.ErrStudentNotFound)
	}

	return d.FindByID(ctx, id)
}

func (d *StudentDAO) ResetSeason(ctx context.Context) (int, error) {
	refs, err := d.client.Collection(studentsCollection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return 0, mapError(err, nil)
	}

	bw := d.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Update(ref, []firestore.Update{
			{Path: "totalPoints", Value: 0},
			{Path: "badges", Value: []string{}},
		})
		if err != nil {
			bw.End()
			return 0, fmt.Errorf("bw.Update(%s) -> %w", ref.ID, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err = job.Results(); err != nil {
			return 0, mapError(err, nil)
		}
	}

	return len(refs), nil
}

func (d *StudentDAO) CountByCollege(ctx context.Context) (map[string]int, error) {
	it := d.client.Collection(studentsCollection).Select("collegeId").Documents(ctx)

	students, err := collect(it, setStudentID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, s := range students {
		counts[s.CollegeID]++
	}

	return counts, nil
}

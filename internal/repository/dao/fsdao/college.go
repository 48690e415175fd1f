package fsdao

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/sparkslearn/console/internal/repository/dao"
)

type CollegeDAO struct {
	client *firestore.Client
}

func NewCollegeDAO(client *firestore.Client) *CollegeDAO {
	return &CollegeDAO{
		client: client,
	}
}

func (d *CollegeDAO) Insert(ctx context.Context, college dao.College) (dao.College, error) {
	if _, err := d.client.Collection(collegesCollection).Doc(college.ID).Set(ctx, college); err != nil {
		return dao.College{}, mapError(err, nil)
	}

	return college, nil
}

func (d *CollegeDAO) FindByID(ctx context.Context, id string) (dao.College, error) {
	snap, err := d.client.Collection(collegesCollection).Doc(id).Get(ctx)
	if err != nil {
		return dao.College{}, mapError(err, dao.ErrCollegeNotFound)
	}

	var college dao.College
	if err = snap.DataTo(&college); err != nil {
		return dao.College{}, fmt.Errorf("snap.DataTo -> %w", err)
	}
	college.ID = snap.Ref.ID

	return college, nil
}

func (d *CollegeDAO) FindAll(ctx context.Context) ([]dao.College, error) {
	it := d.client.Collection(collegesCollection).OrderBy("name", firestore.Asc).Documents(ctx)

	return collect(it, func(c *dao.College, id string) { c.ID = id })
}

func (d *CollegeDAO) UpdateStatus(ctx context.Context, id, status string) (dao.College, error) {
	_, err := d.client.Collection(collegesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
	})
	if err != nil {
		return dao.College{}, mapError(err, dao.ErrCollegeNotFound)
	}

	return d.FindByID(ctx, id)
}

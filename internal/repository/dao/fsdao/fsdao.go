// Package fsdao stores students, colleges and audit entries in Cloud Firestore.
// Its DAOs satisfy the same repository interfaces as the Postgres ones in package dao.
package fsdao

import (
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sparkslearn/console/internal/repository/dao"
)

const (
	studentsCollection = "students"
	collegesCollection = "colleges"
	auditCollection    = "audit_logs"
)

// mapError converts Firestore status codes into dao sentinels.
func mapError(err error, notFound error) error {
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %s", dao.ErrPermissionDenied, status.Convert(err).Message())
	case codes.NotFound:
		if notFound != nil {
			return notFound
		}
	}

	return err
}

func collect[T any](it *firestore.DocumentIterator, setID func(*T, string)) ([]T, error) {
	defer it.Stop()

	var out []T
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, mapError(err, nil)
		}

		var v T
		if err = doc.DataTo(&v); err != nil {
			return nil, fmt.Errorf("doc.DataTo(%s) -> %w", doc.Ref.ID, err)
		}
		setID(&v, doc.Ref.ID)
		out = append(out, v)
	}

	return out, nil
}

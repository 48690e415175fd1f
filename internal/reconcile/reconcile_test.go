package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkslearn/console/internal/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("s-%d", n)
	}
}

var abc = domain.College{ID: "c-1", Name: "ABC Institute"}

func TestReconcile_MixedCaseHeaderAndCollegeNormalization(t *testing.T) {
	text := "Name,ROLL_NO,Email,DOB,College_Name\n" +
		"Asha,101,asha@example.com,2004-01-02,ABC Institute\n" +
		"Ravi,102,Ravi@Example.com,2004-03-04,abc institute \n"

	batch, err := Reconcile(text, abc, nil, sequentialIDs())
	require.NoError(t, err)

	require.Len(t, batch.Accepted, 2)
	assert.Empty(t, batch.Rejected)
	assert.Equal(t, "s-1", batch.Accepted[0].ID)
	assert.Equal(t, "ravi@example.com", batch.Accepted[1].Email)
	assert.Equal(t, "c-1", batch.Accepted[1].CollegeID)
	assert.Equal(t, 0, batch.Accepted[0].TotalPoints)
	assert.Empty(t, batch.Accepted[0].Badges)
}

func TestReconcile_DuplicateWithinBatch(t *testing.T) {
	text := "name,roll_no,email,dob,college_name\n" +
		"A,1,a@x.io,d,ABC Institute\n" +
		"B,2,A@X.io,d,ABC Institute\n" +
		"C,3,c@x.io,d,ABC Institute\n"

	batch, err := Reconcile(text, abc, nil, sequentialIDs())
	require.NoError(t, err)

	assert.Len(t, batch.Accepted, 2)
	require.Len(t, batch.Rejected, 1)
	assert.Equal(t, 3, batch.Rejected[0].Row)
	assert.Contains(t, batch.Rejected[0].Reason, "Duplicate")
	assert.Equal(t, "A", batch.Accepted[0].Name)
}

func TestReconcile_RowChecks(t *testing.T) {
	roster := []domain.Student{{ID: "uid-1", Email: "Existing@x.io"}}

	tests := []struct {
		name     string
		row      string
		accepted int
		skipped  int
		reason   string
	}{
		{name: "valid", row: "A,1,a@x.io,d,ABC Institute", accepted: 1},
		{name: "college mismatch", row: "A,1,a@x.io,d,XYZ College", reason: `College mismatch ("XYZ College" vs "ABC Institute")`},
		{name: "invalid email", row: "A,1,not-an-email,d,ABC Institute", reason: "Invalid email"},
		{name: "email without tld", row: "A,1,a@x,d,ABC Institute", reason: "Invalid email"},
		{name: "duplicate of roster", row: "A,1,existing@X.io,d,ABC Institute", reason: "Duplicate"},
		{name: "short row", row: "A,1,a@x.io", skipped: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := "name,roll_no,email,dob,college_name\n" + tc.row

			batch, err := Reconcile(text, abc, roster, sequentialIDs())
			require.NoError(t, err)

			assert.Len(t, batch.Accepted, tc.accepted)
			assert.Equal(t, tc.skipped, batch.Skipped)
			if tc.reason == "" {
				assert.Empty(t, batch.Rejected)
				return
			}
			require.Len(t, batch.Rejected, 1)
			assert.Equal(t, 2, batch.Rejected[0].Row)
			assert.Contains(t, batch.Rejected[0].Reason, tc.reason)
		})
	}
}

func TestReconcile_HeaderValidation(t *testing.T) {
	_, err := Reconcile("name,email,college_name\nA,a@x.io,ABC Institute", abc, nil, sequentialIDs())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, []string{"roll_no", "dob"}, verr.Missing)
	assert.Equal(t, "Missing columns: roll_no, dob", err.Error())
}

func TestReconcile_EmptyFile(t *testing.T) {
	for _, text := range []string{"", "\n\n", "name,roll_no,email,dob,college_name\n"} {
		_, err := Reconcile(text, abc, nil, sequentialIDs())
		assert.ErrorIs(t, err, ErrValidationFailed)
	}
}

func TestReconcile_BOMHeader(t *testing.T) {
	text := "\ufeffname,roll_no,email,dob,college_name\r\n" +
		"Ann,1,ann@x.io,2000-01-01,ABC Institute\r\n"

	batch, err := Reconcile(text, abc, nil, sequentialIDs())
	require.NoError(t, err)

	require.Len(t, batch.Accepted, 1)
	assert.Equal(t, "Ann", batch.Accepted[0].Name)
	assert.Empty(t, batch.Rejected)
}

func TestReconcile_ColumnOrderAndBlankLines(t *testing.T) {
	text := "college_name, email ,dob,name,roll_no\n\n" +
		"ABC   Institute,z@x.io,2001-01-01,Zed,9\n"

	batch, err := Reconcile(text, abc, nil, sequentialIDs())
	require.NoError(t, err)

	require.Len(t, batch.Accepted, 1)
	assert.Equal(t, "Zed", batch.Accepted[0].Name)
	assert.Equal(t, "9", batch.Accepted[0].RollNumber)
	assert.Equal(t, "2001-01-01", batch.Accepted[0].DateOfBirth)
}

func TestReconcile_Deterministic(t *testing.T) {
	text := "name,roll_no,email,dob,college_name\nA,1,a@x.io,d,ABC Institute\nB,2,a@x.io,d,ABC Institute\n"

	first, err := Reconcile(text, abc, nil, sequentialIDs())
	require.NoError(t, err)
	second, err := Reconcile(text, abc, nil, sequentialIDs())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

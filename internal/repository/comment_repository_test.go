package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentGetByIDNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.comment_id = $1`)).
		WithArgs("c-missing").
		WillReturnError(sql.ErrNoRows)

	comment, err := repo.GetByID(context.Background(), "c-missing")

	assert.Nil(t, comment)
	assert.True(t, errors.Is(err, errors.NotFound), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentUpdateVotes(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  errors.ConstError
	}{
		{"updated", 1, ""},
		{"missing comment", 0, errors.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewCommentRepository(db)

			mock.ExpectExec(regexp.QuoteMeta(`UPDATE comments SET vote_up = $1, vote_down = $2 WHERE comment_id = $3`)).
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "c-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.UpdateVotes(context.Background(), "c-1", []string{"cust-1"}, nil)

			if tt.wantErr != "" {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentAnswerCounters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) AS answers`)).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"answers", "expert"}).AddRow(4, true))

	answers, expert, err := repo.AnswerCounters(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, 4, answers)
	assert.True(t, expert)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentListReplies(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.parent_comment_id = $1 AND ($2::text = '' OR c.status = $2)`)).
		WithArgs("c-1", "approved").
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "post_id", "parent_comment_id", "account_id", "content", "status", "author_name"}).
			AddRow("c-2", "p-1", "c-1", "acc-2", "me too", "approved", "Mai"))

	replies, err := repo.ListReplies(context.Background(), "c-1", "approved")

	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "c-2", replies[0].CommentID)
	require.NotNil(t, replies[0].ParentCommentID)
	assert.Equal(t, "c-1", *replies[0].ParentCommentID)
	assert.Equal(t, "Mai", replies[0].AuthorName)
	require.NoError(t, mock.ExpectationsWereMet())
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskman/internal/model"
	"taskman/internal/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func taskColumns() []string {
	return []string{"id", "user_id", "title", "description", "completed", "category", "created_at", "updated_at"}
}

func TestTaskRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	task := &model.Task{
		UserID: "user_1",
		Title:  "Write a repository test",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Create(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(7), task.ID)
	assert.Equal(t, "user_1", task.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Create_DBError(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	err := taskRepo.Create(context.Background(), &model.Task{UserID: "user_1", Title: "x"})

	// Assert
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_CreateBatch_Empty(t *testing.T) {
	// Arrange
	gormDB, _ := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	// Act
	tasks, err := taskRepo.CreateBatch(context.Background(), nil)

	// Assert
	assert.ErrorIs(t, err, repository.ErrEmptyBatch)
	assert.Nil(t, tasks)
}

func TestTaskRepository_CreateBatch_PreservesOrder(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	batch := []model.Task{
		{UserID: "user_1", Title: "first"},
		{UserID: "user_1", Title: "second"},
		{UserID: "user_1", Title: "third"},
	}

	// A single multi-row INSERT, not one statement per task.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(int64(1)).
			AddRow(int64(2)).
			AddRow(int64(3)))
	mock.ExpectCommit()

	// Act
	created, err := taskRepo.CreateBatch(context.Background(), batch)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, created, 3)
	assert.Equal(t, "first", created[0].Title)
	assert.Equal(t, "second", created[1].Title)
	assert.Equal(t, "third", created[2].Title)
	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, int64(3), created[2].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetAllByUser(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE user_id = \$1`).
		WithArgs("user_1").
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow(int64(1), "user_1", "first", nil, false, nil, now, now).
			AddRow(int64(2), "user_1", "second", "details", true, "chores", now, now))

	// Act
	tasks, err := taskRepo.GetAllByUser(context.Background(), "user_1")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Nil(t, tasks[0].Description)
	assert.Equal(t, "second", tasks[1].Title)
	assert.True(t, tasks[1].Completed)
	assert.NotNil(t, tasks[1].Category)
	assert.Equal(t, "chores", *tasks[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetAllByUser_DBError(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE user_id = \$1`).
		WillReturnError(assert.AnError)

	// Act
	tasks, err := taskRepo.GetAllByUser(context.Background(), "user_1")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow(int64(5), "user_1", "found me", nil, false, nil, now, now))

	// Act
	task, err := taskRepo.GetByID(context.Background(), "user_1", 5)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, int64(5), task.ID)
	assert.Equal(t, "user_1", task.UserID)
	assert.Equal(t, "found me", task.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	// Zero matching rows covers both "no such task" and "someone else's
	// task"; the caller cannot tell them apart.
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.GetByID(context.Background(), "user_2", 5)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_Success(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows(taskColumns()).
			AddRow(int64(5), "user_1", "updated", nil, true, nil, now, now))

	// Act
	task, err := taskRepo.Update(context.Background(), "user_1", 5, map[string]any{"completed": true})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.True(t, task.Completed)
	assert.Equal(t, "updated", task.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	task, err := taskRepo.Update(context.Background(), "user_2", 5, map[string]any{"completed": true})

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_Success(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), "user_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), "user_1", 5)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(5), "user_2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), "user_2", 5)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

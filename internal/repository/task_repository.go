package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"taskman/internal/model"
)

type TaskRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	CreateBatch(ctx context.Context, tasks []model.Task) ([]model.Task, error)
	GetAllByUser(ctx context.Context, userID string) ([]model.Task, error)
	GetByID(ctx context.Context, userID string, id int64) (*model.Task, error)
	Update(ctx context.Context, userID string, id int64, fields map[string]any) (*model.Task, error)
	Delete(ctx context.Context, userID string, id int64) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB, log zerolog.Logger) *TaskRepository {
	return &TaskRepository{db: db, log: log}
}

// Create inserts a new task owned by task.UserID
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	err := r.db.WithContext(ctx).Create(task).Error
	if err != nil {
		r.log.Error().
			Err(err).
			Str("user_id", task.UserID).
			Msg("failed to insert task")
		return err
	}
	return nil
}

// CreateBatch inserts an ordered batch of tasks as a single statement.
// The returned slice keeps the input order, with ids and timestamps filled in.
func (r *TaskRepository) CreateBatch(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyBatch
	}

	err := r.db.WithContext(ctx).Create(&tasks).Error
	if err != nil {
		r.log.Error().
			Err(err).
			Int("count", len(tasks)).
			Msg("failed to insert task batch")
		return nil, err
	}
	return tasks, nil
}

// GetAllByUser retrieves every task owned by the given user
func (r *TaskRepository) GetAllByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tasks)
	if result.Error != nil {
		r.log.Error().
			Err(result.Error).
			Str("user_id", userID).
			Msg("failed to select tasks")
		return nil, result.Error
	}
	return tasks, nil
}

// GetByID retrieves the task matching both id and user id
func (r *TaskRepository) GetByID(ctx context.Context, userID string, id int64) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		r.log.Error().
			Err(result.Error).
			Str("user_id", userID).
			Int64("task_id", id).
			Msg("failed to select task")
		return nil, result.Error
	}
	return &task, nil
}

// Update applies the given fields to the task matching both id and user id
// and returns the updated row. The ownership filter and the mutation are one
// statement; a zero affected-row count means the task does not exist for
// this user.
func (r *TaskRepository) Update(ctx context.Context, userID string, id int64, fields map[string]any) (*model.Task, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		r.log.Error().
			Err(result.Error).
			Str("user_id", userID).
			Int64("task_id", id).
			Msg("failed to update task")
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	return r.GetByID(ctx, userID, id)
}

// Delete removes the task matching both id and user id
func (r *TaskRepository) Delete(ctx context.Context, userID string, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Task{})
	if result.Error != nil {
		r.log.Error().
			Err(result.Error).
			Str("user_id", userID).
			Int64("task_id", id).
			Msg("failed to delete task")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

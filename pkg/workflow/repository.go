package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrActionNotFound  = errors.New("action not found")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type requestModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PersonID uuid.UUID  `gorm:"type:uuid;index"`
	CenterID *uuid.UUID `gorm:"type:uuid;index"`

	StatusID        uuid.UUID  `gorm:"type:uuid;index"`
	CategoryID      *uuid.UUID `gorm:"type:uuid"`
	PrimaryCategory string     `gorm:"index"`

	CommunicationMethod string
	ContactPersonType   string

	SubmissionDate *time.Time
	UpdateDate     *time.Time
	DueDate        *time.Time `gorm:"index"`
	ExpiryDate     *time.Time
	ClosedDate     *time.Time

	Subject        string
	Priority       int
	IsAccepted     bool
	ProtocolNumber string
	AssignedTo     *uuid.UUID `gorm:"type:uuid;index"`
	Outcome        string
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`

	NumberOfActions int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (requestModel) TableName() string { return "requests" }

type requestTagAssignmentModel struct {
	RequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (requestTagAssignmentModel) TableName() string { return "request_tag_assignments" }

type actionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID `gorm:"type:uuid;index"`
	PersonID  uuid.UUID `gorm:"type:uuid;index"`

	ActionType   string `gorm:"not null"`
	Direction    string
	ContactType  string
	ReferralType string

	ActionDate    time.Time  `gorm:"index"`
	ExternalOrgID *uuid.UUID `gorm:"type:uuid"`
	ContactID     *uuid.UUID `gorm:"type:uuid"`

	ManualOrgName         string
	ManualContactName     string
	ManualContactPosition string
	ManualContactPhone    string
	ManualContactEmail    string

	Result string
	Notes  string

	RequiresFollowUp bool
	FollowUpDate     *time.Time
	IsCompleted      bool

	PerformedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (actionModel) TableName() string { return "actions" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&requestModel{}, &requestTagAssignmentModel{}, &actionModel{})
}

// CreateRequest inserts the request and its tag assignments in one
// transaction.
func (r *Repository) CreateRequest(ctx context.Context, req models.Request, tagIDs []uuid.UUID) (models.Request, error) {
	row := toRequestModel(req)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return replaceTagAssignments(tx, row.ID, tagIDs)
	})
	if err != nil {
		return models.Request{}, err
	}
	return r.GetRequest(ctx, row.ID)
}

// UpdateRequest replaces the request row and its tag set, preserving the
// action counter and creation metadata.
func (r *Repository) UpdateRequest(ctx context.Context, req models.Request, tagIDs []uuid.UUID) (models.Request, error) {
	var existing requestModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Request{}, ErrRequestNotFound
		}
		return models.Request{}, err
	}

	row := toRequestModel(req)
	row.PersonID = existing.PersonID
	row.NumberOfActions = existing.NumberOfActions
	row.CreatedBy = existing.CreatedBy
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		return replaceTagAssignments(tx, row.ID, tagIDs)
	})
	if err != nil {
		return models.Request{}, err
	}
	return r.GetRequest(ctx, row.ID)
}

func replaceTagAssignments(tx *gorm.DB, requestID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := tx.Delete(&requestTagAssignmentModel{}, "request_id = ?", requestID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		assignment := requestTagAssignmentModel{RequestID: requestID, TagID: tagID}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) GetRequest(ctx context.Context, id uuid.UUID) (models.Request, error) {
	var row requestModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Request{}, ErrRequestNotFound
		}
		return models.Request{}, err
	}
	req := mapRequestModel(row)

	tags, err := r.requestTags(ctx, id)
	if err != nil {
		return models.Request{}, err
	}
	req.Tags = tags
	return req, nil
}

func (r *Repository) requestTags(ctx context.Context, requestID uuid.UUID) ([]models.RequestTag, error) {
	var tags []models.RequestTag
	err := r.db.WithContext(ctx).
		Table("request_tags").
		Joins("JOIN request_tag_assignments ON request_tag_assignments.tag_id = request_tags.id").
		Where("request_tag_assignments.request_id = ?", requestID).
		Order("request_tags.category, request_tags.name").
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// RequestFilter narrows ListRequests.
type RequestFilter struct {
	PersonID   *uuid.UUID
	StatusID   *uuid.UUID
	AssignedTo *uuid.UUID
	Category   string
	Limit      int
}

func (r *Repository) ListRequests(ctx context.Context, filter RequestFilter) ([]models.Request, error) {
	query := r.db.WithContext(ctx).Model(&requestModel{})
	if filter.PersonID != nil {
		query = query.Where("person_id = ?", *filter.PersonID)
	}
	if filter.StatusID != nil {
		query = query.Where("status_id = ?", *filter.StatusID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Category != "" {
		query = query.Where("primary_category = ?", filter.Category)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []requestModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	requests := make([]models.Request, 0, len(rows))
	for _, row := range rows {
		req := mapRequestModel(row)
		tags, err := r.requestTags(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		req.Tags = tags
		requests = append(requests, req)
	}
	return requests, nil
}

// DeleteRequest removes the request and everything hanging off it.
func (r *Repository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM action_attachments WHERE action_id IN (SELECT id FROM actions WHERE request_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&actionModel{}, "request_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM request_attachments WHERE request_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&requestTagAssignmentModel{}, "request_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&requestModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRequestNotFound
		}
		return nil
	})
}

// CreateAction inserts the action and increments the request's counter
// atomically: if either statement fails the transaction rolls back and
// neither the row nor the increment survives.
func (r *Repository) CreateAction(ctx context.Context, a models.Action) (models.Action, error) {
	row := actionModel(a)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req requestModel
		if err := tx.First(&req, "id = ?", row.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		row.PersonID = req.PersonID
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&requestModel{}).
			Where("id = ?", row.RequestID).
			UpdateColumn("number_of_actions", gorm.Expr("number_of_actions + 1")).Error
	})
	if err != nil {
		return models.Action{}, err
	}
	return models.Action(row), nil
}

func (r *Repository) UpdateAction(ctx context.Context, a models.Action) (models.Action, error) {
	var existing actionModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", a.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Action{}, ErrActionNotFound
		}
		return models.Action{}, err
	}

	row := actionModel(a)
	row.RequestID = existing.RequestID
	row.PersonID = existing.PersonID
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Action{}, err
	}
	return models.Action(row), nil
}

func (r *Repository) GetAction(ctx context.Context, id uuid.UUID) (models.Action, error) {
	var row actionModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Action{}, ErrActionNotFound
		}
		return models.Action{}, err
	}
	return models.Action(row), nil
}

func (r *Repository) ListActions(ctx context.Context, requestID uuid.UUID) ([]models.Action, error) {
	var rows []actionModel
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).Order("action_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	actions := make([]models.Action, 0, len(rows))
	for _, row := range rows {
		actions = append(actions, models.Action(row))
	}
	return actions, nil
}

// DeleteAction removes the action and decrements the request counter in
// the same transaction.
func (r *Repository) DeleteAction(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row actionModel
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActionNotFound
			}
			return err
		}
		if err := tx.Exec("DELETE FROM action_attachments WHERE action_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&actionModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&requestModel{}).
			Where("id = ? AND number_of_actions > 0", row.RequestID).
			UpdateColumn("number_of_actions", gorm.Expr("number_of_actions - 1")).Error
	})
}

// Workload aggregates for the dashboard. Status flags live in the
// request_statuses lookup, so the counts join through it.
func (r *Repository) WorkloadStats(ctx context.Context, today time.Time) (models.WorkloadStats, error) {
	stats := models.WorkloadStats{ByCategory: map[string]int64{}}
	db := r.db.WithContext(ctx)

	openCond := "status_id NOT IN (SELECT id FROM request_statuses WHERE is_closed)"
	if err := db.Model(&requestModel{}).Where(openCond).Count(&stats.OpenRequests).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&requestModel{}).
		Where(openCond).
		Where("due_date IS NOT NULL AND due_date < ?", today).
		Count(&stats.OverdueRequests).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&requestModel{}).
		Where("status_id IN (SELECT id FROM request_statuses WHERE is_pending)").
		Count(&stats.PendingRequests).Error; err != nil {
		return stats, err
	}

	type categoryCount struct {
		PrimaryCategory string
		Total           int64
	}
	var counts []categoryCount
	if err := db.Model(&requestModel{}).
		Select("primary_category, COUNT(*) AS total").
		Where(openCond).
		Where("primary_category <> ''").
		Group("primary_category").
		Scan(&counts).Error; err != nil {
		return stats, err
	}
	for _, c := range counts {
		stats.ByCategory[c.PrimaryCategory] = c.Total
	}

	if err := db.Model(&actionModel{}).
		Where("action_date >= ?", today.AddDate(0, 0, -30)).
		Count(&stats.ActionsLast30d).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func toRequestModel(r models.Request) requestModel {
	return requestModel{
		ID:                  r.ID,
		PersonID:            r.PersonID,
		CenterID:            r.CenterID,
		StatusID:            r.StatusID,
		CategoryID:          r.CategoryID,
		PrimaryCategory:     r.PrimaryCategory,
		CommunicationMethod: r.CommunicationMethod,
		ContactPersonType:   r.ContactPersonType,
		SubmissionDate:      r.SubmissionDate,
		UpdateDate:          r.UpdateDate,
		DueDate:             r.DueDate,
		ExpiryDate:          r.ExpiryDate,
		ClosedDate:          r.ClosedDate,
		Subject:             r.Subject,
		Priority:            r.Priority,
		IsAccepted:          r.IsAccepted,
		ProtocolNumber:      r.ProtocolNumber,
		AssignedTo:          r.AssignedTo,
		Outcome:             r.Outcome,
		CreatedBy:           r.CreatedBy,
		NumberOfActions:     r.NumberOfActions,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func mapRequestModel(row requestModel) models.Request {
	return models.Request{
		ID:                  row.ID,
		PersonID:            row.PersonID,
		CenterID:            row.CenterID,
		StatusID:            row.StatusID,
		CategoryID:          row.CategoryID,
		PrimaryCategory:     row.PrimaryCategory,
		CommunicationMethod: row.CommunicationMethod,
		ContactPersonType:   row.ContactPersonType,
		SubmissionDate:      row.SubmissionDate,
		UpdateDate:          row.UpdateDate,
		DueDate:             row.DueDate,
		ExpiryDate:          row.ExpiryDate,
		ClosedDate:          row.ClosedDate,
		Subject:             row.Subject,
		Priority:            row.Priority,
		IsAccepted:          row.IsAccepted,
		ProtocolNumber:      row.ProtocolNumber,
		AssignedTo:          row.AssignedTo,
		Outcome:             row.Outcome,
		CreatedBy:           row.CreatedBy,
		NumberOfActions:     row.NumberOfActions,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

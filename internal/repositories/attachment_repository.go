package repositories

import (
	"recipehub_backend/internal/models"

	"gorm.io/gorm"
)

type AttachmentRepository struct {
	BaseRepository[models.Attachment]
}

func NewAttachmentRepository() *AttachmentRepository {
	return &AttachmentRepository{BaseRepository: NewBaseRepository[models.Attachment]("attachment")}
}

// ForOwner - вложения владельца, typeTag пустой => все типы. Старые первыми.
func (r *AttachmentRepository) ForOwner(db *gorm.DB, owner models.OwnerRef, typeTag string) ([]models.Attachment, error) {
	criteria := Criteria{
		"owner_type": owner.Type,
		"owner_id":   owner.ID,
	}
	if typeTag != "" {
		criteria["type"] = typeTag
	}
	return r.List(db, Where(criteria), ListOptions{OrderBy: "created_at", OrderDir: SortAsc})
}

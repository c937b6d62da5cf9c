package models

import (
	"strings"

	"gorm.io/datatypes"
)

// Типы вложений
const (
	AttachmentTypeImage = "image"
	AttachmentTypeFile  = "file"
)

// Attachment - файл, привязанный к любой сущности через OwnerType/OwnerID
type Attachment struct {
	BaseModel
	OwnerType    string            `gorm:"size:64;not null;index:idx_attachments_owner" json:"owner_type"`
	OwnerID      uint              `gorm:"not null;index:idx_attachments_owner" json:"owner_id"`
	OriginalName string            `gorm:"size:255;not null" json:"original_name"`
	FileName     string            `gorm:"size:255;not null" json:"file_name"`
	Disk         string            `gorm:"size:64;not null" json:"disk"`
	Path         string            `gorm:"size:1024;not null" json:"path"`
	MimeType     string            `gorm:"size:128" json:"mime_type"`
	Size         int64             `json:"size"`
	Type         string            `gorm:"size:64;index" json:"type"` // "image", "document", ...
	Metadata     datatypes.JSONMap `json:"metadata,omitempty"`
}

func (a *Attachment) Owner() OwnerRef {
	return OwnerRef{Type: a.OwnerType, ID: a.OwnerID}
}

func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

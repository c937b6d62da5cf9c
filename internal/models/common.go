package models

import (
	"time"
)

type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *uint     `json:"created_by,omitempty"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
}

// Auditable - сущности, у которых репозиторий проставляет created_by/updated_by
type Auditable interface {
	SetCreatedBy(id *uint)
	SetUpdatedBy(id *uint)
}

func (m *BaseModel) SetCreatedBy(id *uint) { m.CreatedBy = id }

func (m *BaseModel) SetUpdatedBy(id *uint) { m.UpdatedBy = id }

// OwnerRef - полиморфная ссылка на владельца вложений
type OwnerRef struct {
	Type string
	ID   uint
}

// AttachmentOwner - сущность, к которой можно прикреплять файлы
type AttachmentOwner interface {
	AttachmentOwner() OwnerRef
}

// OwnerRef сам по себе тоже владелец, когда сущность не загружена
func (o OwnerRef) AttachmentOwner() OwnerRef { return o }

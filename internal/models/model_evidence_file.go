package models

import "time"

// EvidenceFile 凭证文件元数据; bytes live in the blob store keyed by ID.
type EvidenceFile struct {
	ID          string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Filename    string    `gorm:"column:filename;type:varchar(512);not null" json:"filename"`
	ContentType string    `gorm:"column:content_type;type:varchar(128);not null" json:"content_type"`
	SizeBytes   int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (EvidenceFile) TableName() string {
	return "evidence_file"
}

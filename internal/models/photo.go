package models

type Photo struct {
	BaseModel
	UserID    uint      `gorm:"not null;index"`
	FilePath  string    `gorm:"size:500;not null"`
	PhotoType PhotoType `gorm:"type:varchar(20);default:'gallery'"`
}

// IsPublic сообщает, можно ли показывать фото в публичном профиле.
// Верификационные и ожидающие модерации снимки наружу не отдаются.
func (p *Photo) IsPublic() bool {
	return p.PhotoType != PhotoTypeVerification && p.PhotoType != PhotoTypePending
}

package models

// Status - статус учетной записи.
// Начальное значение pending; сменить его может только решение по верификации
// или административное действие.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBanned   Status = "banned"
	StatusRejected Status = "rejected"
	StatusDeleted  Status = "deleted"
)

type BodyType string

const (
	BodyTypeAverage  BodyType = "average"
	BodyTypeSlim     BodyType = "slim"
	BodyTypeAthletic BodyType = "athletic"
	BodyTypeFull     BodyType = "full"
	BodyTypeMuscular BodyType = "muscular"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type PhotoType string

const (
	PhotoTypeAvatar       PhotoType = "avatar"
	PhotoTypeGallery      PhotoType = "gallery"
	PhotoTypeVerification PhotoType = "verification"
	// PhotoTypePending - фото, ожидающее решения модерации
	PhotoTypePending PhotoType = "pending"
)

// AllowedPhotoExtensions - allow-list расширений загружаемых изображений
var AllowedPhotoExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

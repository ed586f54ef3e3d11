package model

// swagger:model Language
type Language struct {
	CatalogBase
	Name         string `gorm:"size:100;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Icon         string `gorm:"size:64" json:"icon"`
	Color        string `gorm:"size:16" json:"color"`
	Difficulty   string `gorm:"size:20;not null" json:"difficulty"` // beginner / intermediate / advanced
	Category     string `gorm:"size:32;not null" json:"category"`   // programming / web / database / dsa
	LessonsCount int    `gorm:"not null;default:0" json:"lessonsCount"`
}

func (Language) TableName() string {
	return "languages"
}

// swagger:model Lesson
type Lesson struct {
	CatalogBase
	LanguageID  string `gorm:"size:64;not null;index;uniqueIndex:idx_lesson_language_order" json:"languageId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Content     string `gorm:"type:text" json:"content"`
	Order       int    `gorm:"column:sort_order;not null;uniqueIndex:idx_lesson_language_order" json:"order"`
	Duration    int    `gorm:"not null;default:10" json:"duration"`
	XPReward    int    `gorm:"not null;default:50" json:"xpReward"`
}

func (Lesson) TableName() string {
	return "lessons"
}

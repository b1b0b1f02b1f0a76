package catalog

import "time"

// Category groups products. Unlike other entities it keeps the integer
// identifier supplied by partner feeds: feeds reference categories by that
// id and the id must survive re-imports unchanged.
type Category struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Shops     []Shop    `gorm:"many2many:shop_categories" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name
func (Category) TableName() string {
	return "categories"
}

package models

const (
	DefaultPlan     = "default_plan"
	DefaultStripeID = "default_stripe_id"
)

// User mirrors an identity managed by the auth provider.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Plan     string `gorm:"not null" json:"plan"`
	StripeID string `gorm:"column:stripe_id;not null" json:"stripe_id"`
}

func (User) TableName() string { return "users_table" }

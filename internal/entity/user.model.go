package entity

const RoleAdmin = "admin"

type User struct {
	Model
	Email          string          `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	Name           string          `json:"name" gorm:"type:varchar(100)"`
	ProfilePicture string          `json:"profile_picture" gorm:"type:varchar(255)"`
	Role           string          `json:"role" gorm:"type:varchar(100)"`
	Memberships    []UserToCompany `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

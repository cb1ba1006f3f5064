package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CanonicalPair orders two company ids smallest first. Every pair-keyed
// record uses this order.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

func RoomKey(a, b uuid.UUID) string {
	first, second := CanonicalPair(a, b)
	return fmt.Sprintf("chat_%s_%s", first, second)
}

// ChatRooms addresses the relay rooms shared by pairs of companies. The
// message transport itself lives elsewhere.
type ChatRooms struct {
	db *gorm.DB
}

func NewChatRooms(db *gorm.DB) *ChatRooms {
	return &ChatRooms{db: db}
}

// Open returns the room between companyID, which the user must act for, and
// otherID, creating it on first use.
func (r *ChatRooms) Open(ctx context.Context, userID, companyID, otherID uuid.UUID) (*entity.ChatRoom, error) {
	if companyID == otherID {
		return nil, ErrSameCompany
	}

	db := r.db.WithContext(ctx)
	if !utils.UserIsCompanyMember(db, userID, companyID) {
		return nil, ErrNotCompanyMember
	}
	if err := db.First(&entity.Company{}, "id = ?", otherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	first, second := CanonicalPair(companyID, otherID)
	room := entity.ChatRoom{Company1ID: first, Company2ID: second, RoomKey: RoomKey(first, second)}
	err := db.Where("company1_id = ? AND company2_id = ?", first, second).FirstOrCreate(&room).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = db.Where("company1_id = ? AND company2_id = ?", first, second).First(&room).Error
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns every room involving a company the user acts for.
func (r *ChatRooms) List(ctx context.Context, userID uuid.UUID) ([]entity.ChatRoom, error) {
	db := r.db.WithContext(ctx)
	mine := db.Model(&entity.UserToCompany{}).Select("company_id").Where("user_id = ?", userID)

	var rooms []entity.ChatRoom
	err := db.Where("company1_id IN (?) OR company2_id IN (?)", mine, mine).Order("room_key").Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

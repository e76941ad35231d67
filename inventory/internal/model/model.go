package model

import (
	"time"
)

type MembershipType string

const (
	MembershipFree    MembershipType = "free"
	MembershipPremium MembershipType = "premium"
)

func (t MembershipType) Valid() bool {
	return t == MembershipFree || t == MembershipPremium
}

type Student struct {
	ID        int64          `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Type      MembershipType `json:"type" db:"type"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}

type Item struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
)

type Borrow struct {
	ID         int64      `json:"id" db:"id"`
	StudentID  int64      `json:"studentId" db:"student_id"`
	ItemID     int64      `json:"itemId" db:"item_id"`
	BorrowedAt time.Time  `json:"borrowedAt" db:"borrowed_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
	Returned   bool       `json:"returned" db:"returned"`
}

func (b Borrow) Status() Status {
	if b.Returned {
		return StatusReturned
	}
	return StatusActive
}

// BorrowView is a Borrow joined with the student and item it references.
type BorrowView struct {
	Borrow      `json:",inline"`
	StudentName string         `json:"studentName" db:"student_name"`
	StudentType MembershipType `json:"studentType" db:"student_type"`
	ItemTitle   string         `json:"itemTitle" db:"item_title"`
}

type Board struct {
	Students []Student    `json:"students"`
	Items    []Item       `json:"items"`
	Borrows  []BorrowView `json:"borrows"`
}

type CreateStudentRequest struct {
	Name string         `json:"name" validate:"required,notblank"`
	Type MembershipType `json:"type" validate:"omitempty,oneof=free premium"`
}

type CreateItemRequest struct {
	Title string `json:"title" validate:"required,notblank"`
	// Qty defaults to 1 when omitted.
	Qty *int `json:"qty"`
}

type BorrowRequest struct {
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
	ItemID    int64 `json:"itemId" validate:"required,gt=0"`
}

type EventType string

const (
	EventBorrowed EventType = "borrowed"
	EventReturned EventType = "returned"
)

type LendingEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	BorrowID   int64     `json:"borrowId"`
	StudentID  int64     `json:"studentId"`
	ItemID     int64     `json:"itemId"`
	OccurredAt time.Time `json:"occurredAt"`
}

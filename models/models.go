package models

import (
	"encoding/base64"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Every uploaded image is served back as JPEG regardless of what was uploaded.
const imageDataURIPrefix = "data:image/jpeg;base64,"

type Event struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	EventName        string        `bson:"eventName"`
	EventDate        string        `bson:"eventDate"`
	EventTime        string        `bson:"eventTime"`
	EventLocation    string        `bson:"eventLocation"`
	EventDescription string        `bson:"eventDescription"`
	Image            []byte        `bson:"image,omitempty"`
}

type CarouselImage struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Image       []byte        `bson:"image"`
	Description string        `bson:"description"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

// Account is shared by regular users and admins; the collection decides which.
type Account struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Name     string        `bson:"name"`
	Email    string        `bson:"email"`
	Password string        `bson:"password"`
}

type EventResponse struct {
	ID               bson.ObjectID `json:"_id"`
	EventName        string        `json:"eventName"`
	EventDate        string        `json:"eventDate"`
	EventTime        string        `json:"eventTime"`
	EventLocation    string        `json:"eventLocation"`
	EventDescription string        `json:"eventDescription"`
	Image            string        `json:"image,omitempty"`
}

type CarouselImageResponse struct {
	ID          bson.ObjectID `json:"_id"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ImageDataURI renders raw image bytes for inline use in JSON. Empty input yields "".
func ImageDataURI(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return imageDataURIPrefix + base64.StdEncoding.EncodeToString(data)
}

func (e Event) Response() EventResponse {
	return EventResponse{
		ID:               e.ID,
		EventName:        e.EventName,
		EventDate:        e.EventDate,
		EventTime:        e.EventTime,
		EventLocation:    e.EventLocation,
		EventDescription: e.EventDescription,
		Image:            ImageDataURI(e.Image),
	}
}

func (c CarouselImage) Response() CarouselImageResponse {
	return CarouselImageResponse{
		ID:          c.ID,
		Image:       ImageDataURI(c.Image),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token  string        `json:"token"`
	UserID bson.ObjectID `json:"userId"`
	Name   string        `json:"name"`
}
